package domain

import "time"

// WishlistItem is a product, or one of its variants, saved by a user.
// VariantProductID is 0 when the parent listing itself was saved.
type WishlistItem struct {
	UserID           string    `json:"user_id"`
	ProductID        int64     `json:"product_id"`
	VariantProductID int64     `json:"variant_product_id"`
	CreatedAt        time.Time `json:"created_at"`
}
