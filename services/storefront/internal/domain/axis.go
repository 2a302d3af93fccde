package domain

import "sort"

// AttributeAxis is a named dimension of variation with its available values.
// Only interactive axes are rendered as clickable options.
type AttributeAxis struct {
	Name        string   `json:"name"`
	Values      []string `json:"values"`
	Interactive bool     `json:"interactive"`
}

// BuildAxes combines parent attributes, variant attributes and variant
// combinations into axes ordered by first appearance. Values are
// de-duplicated and sorted; empty values are ignored and axes left without
// values are omitted. An axis is interactive only when the product has
// variants and the axis offers more than one value.
func BuildAxes(p *Product) []AttributeAxis {
	if p == nil {
		return nil
	}

	var order []string
	values := make(map[string]map[string]struct{})

	add := func(name, value string) {
		if name == "" {
			return
		}
		set, ok := values[name]
		if !ok {
			set = make(map[string]struct{})
			values[name] = set
			order = append(order, name)
		}
		if value != "" {
			set[value] = struct{}{}
		}
	}

	for _, a := range p.Attributes {
		add(a.Name, a.Value)
	}
	for _, va := range p.VariantAttributes {
		if len(va.Values) == 0 {
			add(va.Name, "")
		}
		for _, v := range va.Values {
			add(va.Name, v)
		}
	}
	for i := range p.Variants {
		for _, name := range sortedKeys(p.Variants[i].AttributeCombination) {
			add(name, p.Variants[i].AttributeCombination[name])
		}
	}

	axes := make([]AttributeAxis, 0, len(order))
	for _, name := range order {
		set := values[name]
		if len(set) == 0 {
			continue
		}
		vals := make([]string, 0, len(set))
		for v := range set {
			vals = append(vals, v)
		}
		sort.Strings(vals)
		axes = append(axes, AttributeAxis{
			Name:        name,
			Values:      vals,
			Interactive: p.HasVariants && len(vals) > 1,
		})
	}
	return axes
}

// DefaultSelection picks, per axis, the parent's own value when it has one,
// else the axis' first sorted value.
func DefaultSelection(p *Product, axes []AttributeAxis) Selection {
	var parent Selection
	if p != nil {
		parent = p.ParentDefaults()
	}
	selected := make(Selection, len(axes))
	for _, axis := range axes {
		if v, ok := parent[axis.Name]; ok && v != "" {
			selected[axis.Name] = v
			continue
		}
		selected[axis.Name] = axis.Values[0]
	}
	return selected
}

// HasValue reports whether value is offered on the axis.
func (a AttributeAxis) HasValue(value string) bool {
	i := sort.SearchStrings(a.Values, value)
	return i < len(a.Values) && a.Values[i] == value
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
