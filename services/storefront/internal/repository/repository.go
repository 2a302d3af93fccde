package repository

import (
	"context"

	"github.com/utafrali/storefront/services/storefront/internal/domain"
)

// ProductCache holds decoded catalog products between requests.
type ProductCache interface {
	// Get returns the cached product or an error wrapping apperrors.ErrNotFound.
	Get(ctx context.Context, productID int64) (*domain.Product, error)

	// Set stores the product under its ID for the cache lifetime.
	Set(ctx context.Context, product *domain.Product) error

	// Invalidate drops the cached product.
	Invalidate(ctx context.Context, productID int64) error
}

// WishlistRepository persists saved products per user.
type WishlistRepository interface {
	// Add saves the item. Saving an existing item is a no-op.
	Add(ctx context.Context, item *domain.WishlistItem) error

	// Remove deletes the item and reports whether it existed.
	Remove(ctx context.Context, userID string, productID, variantProductID int64) (bool, error)

	// Exists reports whether the item is saved.
	Exists(ctx context.Context, userID string, productID, variantProductID int64) (bool, error)

	// ListByUser returns one page of the user's items, newest first, and the
	// total item count.
	ListByUser(ctx context.Context, userID string, page, perPage int) ([]domain.WishlistItem, int, error)
}
