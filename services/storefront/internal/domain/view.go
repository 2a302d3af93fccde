package domain

// ProductView is everything a product page renders for the current selection.
type ProductView struct {
	Product          *Product        `json:"product"`
	Axes             []AttributeAxis `json:"axes"`
	Selected         Selection       `json:"selected"`
	Resolution       ResolutionKind  `json:"resolution"`
	VariantID        *int64          `json:"variant_id,omitempty"`
	VariantProductID int64           `json:"variant_product_id,omitempty"`
	SKU              string          `json:"sku,omitempty"`
	Price            *int64          `json:"price"`
	Currency         string          `json:"currency"`
	Stock            StockLevel      `json:"stock"`
	Media            []Media         `json:"media"`
	Purchasable      bool            `json:"purchasable"`
	Message          string          `json:"message,omitempty"`
	CanonicalPath    string          `json:"canonical_path,omitempty"`
}

// NewProductView resolves s and derives the price, stock and media to show.
func NewProductView(s *SelectionState) ProductView {
	return buildView(s.Product(), s.Axes(), s.Selected(), s.Resolve())
}

// ViewFor resolves selected against p as given. Unlike a SelectionState,
// values outside the product's axes are kept and may produce KindNoMatch.
func ViewFor(p *Product, selected Selection) ProductView {
	return buildView(p, BuildAxes(p), selected.Clone(), Resolve(p, selected))
}

func buildView(p *Product, axes []AttributeAxis, selected Selection, res Resolution) ProductView {
	view := ProductView{
		Product:          p,
		Axes:             axes,
		Selected:         selected,
		Resolution:       res.Kind,
		VariantProductID: res.ProductID(p),
		Currency:         p.Currency,
		Stock:            res.Stock(p),
		Media:            res.Media(p),
		Purchasable:      res.Purchasable(p) == nil,
		Message:          res.Message(p),
	}
	if view.Axes == nil {
		view.Axes = []AttributeAxis{}
	}
	if view.Selected == nil {
		view.Selected = Selection{}
	}
	if view.Media == nil {
		view.Media = []Media{}
	}
	if price, ok := res.Price(p); ok {
		view.Price = &price
	}
	if res.Variant != nil {
		id := res.Variant.VariantID
		view.VariantID = &id
		view.SKU = res.Variant.SKU
	}
	return view
}
