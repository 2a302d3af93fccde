package domain

import "fmt"

// LowStockThreshold is the highest quantity still reported as low stock.
const LowStockThreshold = 5

// StockStatus classifies a stock quantity.
type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockLowStock   StockStatus = "low_stock"
	StockOutOfStock StockStatus = "out_of_stock"
)

// StockLevel is a classified stock quantity. Known is false when the catalog
// only reported an in-stock flag.
type StockLevel struct {
	Status   StockStatus `json:"status"`
	Quantity int         `json:"quantity"`
	Known    bool        `json:"known"`
}

// StockLevelFor classifies qty: ≤0 out of stock, up to LowStockThreshold low
// stock, anything above in stock.
func StockLevelFor(qty int) StockLevel {
	level := StockLevel{Quantity: qty, Known: true}
	switch {
	case qty <= 0:
		level.Status = StockOutOfStock
	case qty <= LowStockThreshold:
		level.Status = StockLowStock
	default:
		level.Status = StockInStock
	}
	return level
}

// stockLevelFromFlag is used when only an in-stock flag is known.
func stockLevelFromFlag(inStock bool) StockLevel {
	if inStock {
		return StockLevel{Status: StockInStock}
	}
	return StockLevel{Status: StockOutOfStock}
}

// Available reports whether anything can be bought.
func (l StockLevel) Available() bool {
	return l.Status != StockOutOfStock
}

// Message is the shopper-facing banner text, empty for plain in-stock.
func (l StockLevel) Message() string {
	switch l.Status {
	case StockOutOfStock:
		return "Out of stock"
	case StockLowStock:
		return fmt.Sprintf("Only %d left!", l.Quantity)
	default:
		return ""
	}
}
