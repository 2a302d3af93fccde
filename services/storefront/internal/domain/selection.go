package domain

// SelectionState is the shopper's current attribute choice for one product.
// It is not safe for concurrent use.
type SelectionState struct {
	product  *Product
	axes     []AttributeAxis
	selected Selection
}

// NewSelectionState starts a selection on p initialised to its defaults.
func NewSelectionState(p *Product) *SelectionState {
	s := &SelectionState{}
	s.Navigate(p)
	return s
}

// Navigate binds the state to p and discards every previous choice, even
// when p is the product already shown.
func (s *SelectionState) Navigate(p *Product) {
	s.product = p
	s.axes = BuildAxes(p)
	s.selected = DefaultSelection(p, s.axes)
}

// Choose sets axis name to value. Choices on unknown or non-interactive axes,
// and values the axis does not offer, are ignored and reported as false.
func (s *SelectionState) Choose(name, value string) bool {
	for _, axis := range s.axes {
		if axis.Name != name {
			continue
		}
		if !axis.Interactive || !axis.HasValue(value) {
			return false
		}
		s.selected[name] = value
		return true
	}
	return false
}

// Resolve resolves the current selection.
func (s *SelectionState) Resolve() Resolution {
	return Resolve(s.product, s.selected)
}

// Product returns the bound product.
func (s *SelectionState) Product() *Product { return s.product }

// Axes returns the product's attribute axes.
func (s *SelectionState) Axes() []AttributeAxis { return s.axes }

// Selected returns a copy of the current selection.
func (s *SelectionState) Selected() Selection { return s.selected.Clone() }
