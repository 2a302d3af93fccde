package domain

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

// tshirt is the Color∈{Red,Blue} × Size∈{S,M} product with parent Red/S and a
// single Blue/M variant.
func tshirt() *Product {
	return &Product{
		ID:          100,
		Name:        "Classic T-Shirt",
		Attributes:  []Attribute{{Name: "Color", Value: "Red"}, {Name: "Size", Value: "S"}},
		HasVariants: true,
		VariantAttributes: []VariantAttribute{
			{Name: "Color", Values: []string{"Red", "Blue"}},
			{Name: "Size", Values: []string{"S", "M"}},
		},
		Variants: []Variant{
			{
				VariantID:            1,
				VariantProductID:     101,
				SKU:                  "TS-BLUE-M",
				AttributeCombination: map[string]string{"Color": "Blue", "Size": "M"},
				EffectivePrice:       2499,
				StockQuantity:        3,
				Media:                []Media{{URL: "https://cdn.example.com/ts-blue.jpg", Type: MediaTypeImage}},
			},
		},
		Price:         2999,
		SpecialPrice:  int64Ptr(1999),
		StockQuantity: intPtr(12),
		IsInStock:     true,
		Currency:      "USD",
		Media:         []Media{{URL: "https://cdn.example.com/ts-red.jpg", Type: MediaTypeImage}},
	}
}
