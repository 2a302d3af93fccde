package domain

import "errors"

var (
	// ErrCombinationUnavailable means no variant or parent configuration
	// satisfies the selected attributes.
	ErrCombinationUnavailable = errors.New("combination not available")

	// ErrOutOfStock means the resolved product or variant has no stock.
	ErrOutOfStock = errors.New("out of stock")

	// ErrInsufficientStock means the requested quantity exceeds known stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)
