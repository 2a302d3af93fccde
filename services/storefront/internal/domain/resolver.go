package domain

// ResolutionKind tags a Resolution.
type ResolutionKind string

const (
	// KindViewingParent: the selection is the parent's own configuration,
	// or the product has no variants.
	KindViewingParent ResolutionKind = "viewing_parent"
	// KindMatchedVariant: the selection matches a variant's combination.
	KindMatchedVariant ResolutionKind = "matched_variant"
	// KindNoMatch: nothing satisfies the selection.
	KindNoMatch ResolutionKind = "no_match"
)

// NoMatchMessage is shown when a selection resolves to nothing.
const NoMatchMessage = "This combination is not available."

// Resolution is the outcome of Resolve. Variant is set only for
// KindMatchedVariant and points into the product's variant slice.
type Resolution struct {
	Kind    ResolutionKind
	Variant *Variant
}

// Resolve maps selected onto the product's variant catalog.
//
// Products without variants always resolve to the parent. A selection equal
// to the parent's attribute defaults resolves to the parent before any
// variant is considered. Otherwise the first variant whose combination holds
// every selected pair wins. Variants with a missing combination, or one
// lacking a variant axis, never match.
func Resolve(p *Product, selected Selection) Resolution {
	if p == nil {
		return Resolution{Kind: KindNoMatch}
	}
	if !p.HasVariants {
		return Resolution{Kind: KindViewingParent}
	}
	if selected.Equal(p.ParentDefaults()) {
		return Resolution{Kind: KindViewingParent}
	}

	for i := range p.Variants {
		v := &p.Variants[i]
		if !p.matchable(v) {
			continue
		}
		if combinationHolds(v.AttributeCombination, selected) {
			return Resolution{Kind: KindMatchedVariant, Variant: v}
		}
	}
	return Resolution{Kind: KindNoMatch}
}

func combinationHolds(combination map[string]string, selected Selection) bool {
	for name, value := range selected {
		if got, ok := combination[name]; !ok || got != value {
			return false
		}
	}
	return true
}

// Price returns the price to display. ok is false for KindNoMatch.
func (r Resolution) Price(p *Product) (price int64, ok bool) {
	switch r.Kind {
	case KindViewingParent:
		return p.DisplayPrice(), true
	case KindMatchedVariant:
		return r.Variant.EffectivePrice, true
	default:
		return 0, false
	}
}

// Stock returns the stock level to display. The parent falls back to its
// in-stock flag when no quantity is known; KindNoMatch is out of stock.
func (r Resolution) Stock(p *Product) StockLevel {
	switch r.Kind {
	case KindViewingParent:
		if p.StockQuantity != nil {
			return StockLevelFor(*p.StockQuantity)
		}
		return stockLevelFromFlag(p.IsInStock)
	case KindMatchedVariant:
		return StockLevelFor(r.Variant.StockQuantity)
	default:
		return StockLevelFor(0)
	}
}

// Media returns the variant's media, or the parent's when the variant has none.
func (r Resolution) Media(p *Product) []Media {
	if r.Kind == KindMatchedVariant && len(r.Variant.Media) > 0 {
		return r.Variant.Media
	}
	return p.Media
}

// ProductID is the orderable product id: the variant product for a match,
// the parent otherwise, 0 for no match.
func (r Resolution) ProductID(p *Product) int64 {
	switch r.Kind {
	case KindViewingParent:
		return p.ID
	case KindMatchedVariant:
		return r.Variant.VariantProductID
	default:
		return 0
	}
}

// Purchasable returns ErrCombinationUnavailable or ErrOutOfStock when the
// resolution cannot be added to a cart.
func (r Resolution) Purchasable(p *Product) error {
	if r.Kind == KindNoMatch {
		return ErrCombinationUnavailable
	}
	if !r.Stock(p).Available() {
		return ErrOutOfStock
	}
	return nil
}

// Message is the inline text for the resolution: the unavailable notice for
// KindNoMatch, otherwise the stock banner.
func (r Resolution) Message(p *Product) string {
	if r.Kind == KindNoMatch {
		return NoMatchMessage
	}
	return r.Stock(p).Message()
}
