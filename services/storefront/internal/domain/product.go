package domain

// Media types.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Attribute is one fixed name/value pair of the parent listing, e.g. Color=Blue.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// VariantAttribute is an axis of variation exposed to the buyer, e.g. Size ∈ {S,M,L}.
type VariantAttribute struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Media is an image or video attached to a product or variant.
type Media struct {
	URL       string `json:"url"`
	Type      string `json:"type"`
	AltText   string `json:"alt_text,omitempty"`
	SortOrder int    `json:"sort_order"`
}

// Variant is a concrete purchasable SKU under a parent product.
//
// A nil AttributeCombination means the catalog sent none; such a variant is
// never matchable.
type Variant struct {
	VariantID            int64             `json:"variant_id"`
	VariantProductID     int64             `json:"variant_product_id"`
	SKU                  string            `json:"sku,omitempty"`
	AttributeCombination map[string]string `json:"attribute_combination"`
	EffectivePrice       int64             `json:"effective_price"`
	StockQuantity        int               `json:"stock_quantity"`
	Media                []Media           `json:"media,omitempty"`
}

// IsInStock reports whether the variant has stock left.
func (v *Variant) IsInStock() bool {
	return v.StockQuantity > 0
}

// Product is a sellable item with its variant catalog. Prices are in minor
// units of Currency.
type Product struct {
	ID                int64              `json:"id"`
	Name              string             `json:"name"`
	Slug              string             `json:"slug,omitempty"`
	Attributes        []Attribute        `json:"attributes"`
	VariantAttributes []VariantAttribute `json:"variant_attributes"`
	HasVariants       bool               `json:"has_variants"`
	Variants          []Variant          `json:"variants"`
	Price             int64              `json:"price"`
	SpecialPrice      *int64             `json:"special_price,omitempty"`
	StockQuantity     *int               `json:"stock_quantity,omitempty"`
	IsInStock         bool               `json:"is_in_stock"`
	Currency          string             `json:"currency"`
	Media             []Media            `json:"media,omitempty"`
}

// ParentDefaults maps each parent attribute name to its value. A later
// duplicate name overwrites an earlier one.
func (p *Product) ParentDefaults() Selection {
	defaults := make(Selection, len(p.Attributes))
	for _, a := range p.Attributes {
		defaults[a.Name] = a.Value
	}
	return defaults
}

// DisplayPrice is the parent's price: the special price when set and strictly
// lower, else the regular price.
func (p *Product) DisplayPrice() int64 {
	if p.SpecialPrice != nil && *p.SpecialPrice < p.Price {
		return *p.SpecialPrice
	}
	return p.Price
}

// matchable reports whether v carries a value for every variant axis.
func (p *Product) matchable(v *Variant) bool {
	if v.AttributeCombination == nil {
		return false
	}
	for _, axis := range p.VariantAttributes {
		if _, ok := v.AttributeCombination[axis.Name]; !ok {
			return false
		}
	}
	return true
}

// Selection maps attribute name to the chosen value.
type Selection map[string]string

// Equal reports whether s and other hold exactly the same pairs.
func (s Selection) Equal(other Selection) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Clone returns a copy of s.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
