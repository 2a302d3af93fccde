package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/pagination"
	"github.com/utafrali/storefront/services/storefront/internal/domain"
	"github.com/utafrali/storefront/services/storefront/internal/event"
	"github.com/utafrali/storefront/services/storefront/internal/repository"
)

// WishlistService manages the products a shopper has saved.
type WishlistService struct {
	repo     repository.WishlistRepository
	products ProductLoader
	events   EventPublisher
	logger   *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(repo repository.WishlistRepository, products ProductLoader, events EventPublisher, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		repo:     repo,
		products: products,
		events:   events,
		logger:   logger,
	}
}

// Toggle saves the item when absent and removes it when present. It returns
// whether the item is saved afterwards. A variantProductID of 0, or the
// product's own ID, refers to the parent listing.
func (s *WishlistService) Toggle(ctx context.Context, userID string, productID, variantProductID int64) (bool, error) {
	if err := validateWishlistKey(userID, productID, variantProductID); err != nil {
		return false, err
	}
	if variantProductID == productID {
		variantProductID = 0
	}

	removed, err := s.repo.Remove(ctx, userID, productID, variantProductID)
	if err != nil {
		return false, fmt.Errorf("toggle wishlist item: %w", err)
	}

	wishlisted := !removed
	if wishlisted {
		if err := s.checkVariant(ctx, productID, variantProductID); err != nil {
			return false, err
		}
		item := &domain.WishlistItem{
			UserID:           userID,
			ProductID:        productID,
			VariantProductID: variantProductID,
			CreatedAt:        time.Now().UTC(),
		}
		if err := s.repo.Add(ctx, item); err != nil {
			return false, fmt.Errorf("toggle wishlist item: %w", err)
		}
	}

	if err := s.events.PublishWishlistToggled(ctx, event.WishlistToggledData{
		UserID:           userID,
		ProductID:        productID,
		VariantProductID: variantProductID,
		Wishlisted:       wishlisted,
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.toggled event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "wishlist item toggled",
		slog.String("user_id", userID),
		slog.Int64("product_id", productID),
		slog.Int64("variant_product_id", variantProductID),
		slog.Bool("wishlisted", wishlisted),
	)
	return wishlisted, nil
}

// List returns one page of the user's saved items, newest first.
func (s *WishlistService) List(ctx context.Context, userID string, params pagination.Params) (pagination.Result[domain.WishlistItem], error) {
	if userID == "" {
		return pagination.Result[domain.WishlistItem]{}, apperrors.InvalidInput("user id is required")
	}

	items, total, err := s.repo.ListByUser(ctx, userID, params.Page, params.PerPage)
	if err != nil {
		return pagination.Result[domain.WishlistItem]{}, fmt.Errorf("list wishlist: %w", err)
	}
	return pagination.NewResult(items, total, params), nil
}

// Contains reports whether the user saved the product or variant.
func (s *WishlistService) Contains(ctx context.Context, userID string, productID, variantProductID int64) (bool, error) {
	if err := validateWishlistKey(userID, productID, variantProductID); err != nil {
		return false, err
	}
	if variantProductID == productID {
		variantProductID = 0
	}

	exists, err := s.repo.Exists(ctx, userID, productID, variantProductID)
	if err != nil {
		return false, fmt.Errorf("check wishlist item: %w", err)
	}
	return exists, nil
}

// Remove deletes a saved item.
func (s *WishlistService) Remove(ctx context.Context, userID string, productID, variantProductID int64) error {
	if err := validateWishlistKey(userID, productID, variantProductID); err != nil {
		return err
	}
	if variantProductID == productID {
		variantProductID = 0
	}

	removed, err := s.repo.Remove(ctx, userID, productID, variantProductID)
	if err != nil {
		return fmt.Errorf("remove wishlist item: %w", err)
	}
	if !removed {
		return apperrors.NotFound("wishlist item", strconv.FormatInt(productID, 10))
	}

	s.logger.InfoContext(ctx, "wishlist item removed",
		slog.String("user_id", userID),
		slog.Int64("product_id", productID),
		slog.Int64("variant_product_id", variantProductID),
	)
	return nil
}

// checkVariant verifies that variantProductID is one of the product's variants.
func (s *WishlistService) checkVariant(ctx context.Context, productID, variantProductID int64) error {
	p, err := s.products.LoadProduct(ctx, productID)
	if err != nil {
		return err
	}
	if variantProductID == 0 {
		return nil
	}
	for _, v := range p.Variants {
		if v.VariantProductID == variantProductID {
			return nil
		}
	}
	return apperrors.InvalidInput(fmt.Sprintf("product %d has no variant %d", productID, variantProductID))
}

func validateWishlistKey(userID string, productID, variantProductID int64) error {
	switch {
	case userID == "":
		return apperrors.InvalidInput("user id is required")
	case productID <= 0:
		return apperrors.InvalidInput("product id must be positive")
	case variantProductID < 0:
		return apperrors.InvalidInput("variant product id must not be negative")
	}
	return nil
}
