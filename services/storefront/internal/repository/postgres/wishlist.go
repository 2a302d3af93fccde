package postgres

import (
	"context"
	"fmt"

	"github.com/utafrali/storefront/pkg/database"
	"github.com/utafrali/storefront/services/storefront/internal/domain"
)

const defaultPerPage = 20

// WishlistRepository implements repository.WishlistRepository using PostgreSQL.
type WishlistRepository struct {
	pool database.DBTX
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(pool database.DBTX) *WishlistRepository {
	return &WishlistRepository{pool: pool}
}

// Add inserts the item, leaving an existing row untouched.
func (r *WishlistRepository) Add(ctx context.Context, item *domain.WishlistItem) (err error) {
	query := `
		INSERT INTO wishlist_items (user_id, product_id, variant_product_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id, variant_product_id) DO NOTHING`

	ctx, end := database.TraceQuery(ctx, "AddWishlistItem", query)
	defer func() { end(err) }()

	if _, err = r.pool.Exec(ctx, query,
		item.UserID,
		item.ProductID,
		item.VariantProductID,
		item.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert wishlist item: %w", err)
	}

	return nil
}

// Remove deletes the item and reports whether a row was removed.
func (r *WishlistRepository) Remove(ctx context.Context, userID string, productID, variantProductID int64) (removed bool, err error) {
	query := `
		DELETE FROM wishlist_items
		WHERE user_id = $1 AND product_id = $2 AND variant_product_id = $3`

	ctx, end := database.TraceQuery(ctx, "RemoveWishlistItem", query)
	defer func() { end(err) }()

	tag, err := r.pool.Exec(ctx, query, userID, productID, variantProductID)
	if err != nil {
		return false, fmt.Errorf("delete wishlist item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Exists reports whether the item is saved.
func (r *WishlistRepository) Exists(ctx context.Context, userID string, productID, variantProductID int64) (exists bool, err error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM wishlist_items
			WHERE user_id = $1 AND product_id = $2 AND variant_product_id = $3
		)`

	ctx, end := database.TraceQuery(ctx, "WishlistItemExists", query)
	defer func() { end(err) }()

	if err = r.pool.QueryRow(ctx, query, userID, productID, variantProductID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check wishlist item: %w", err)
	}

	return exists, nil
}

// ListByUser returns a page of the user's items, newest first, along with the
// total count.
func (r *WishlistRepository) ListByUser(ctx context.Context, userID string, page, perPage int) (items []domain.WishlistItem, totalCount int, err error) {
	limit := perPage
	if limit <= 0 {
		limit = defaultPerPage
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}

	query := `
		SELECT user_id, product_id, variant_product_id, created_at,
		       count(*) OVER() AS total_count
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY created_at DESC, product_id, variant_product_id
		LIMIT $2 OFFSET $3`

	ctx, end := database.TraceQuery(ctx, "ListWishlistItems", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list wishlist items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.WishlistItem
		if err = rows.Scan(
			&item.UserID,
			&item.ProductID,
			&item.VariantProductID,
			&item.CreatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan wishlist row: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate wishlist rows: %w", err)
	}

	if items == nil {
		items = []domain.WishlistItem{}
	}

	return items, totalCount, nil
}
