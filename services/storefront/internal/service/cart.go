package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/services/storefront/internal/client"
	"github.com/utafrali/storefront/services/storefront/internal/domain"
	"github.com/utafrali/storefront/services/storefront/internal/event"
)

// MaxQuantityPerItem caps a single add-to-cart request.
const MaxQuantityPerItem = 100

// Rejection codes returned to the shopper and recorded on add_rejected events.
const (
	CodeCombinationUnavailable = "COMBINATION_UNAVAILABLE"
	CodeOutOfStock             = "OUT_OF_STOCK"
	CodeInsufficientStock      = "INSUFFICIENT_STOCK"
)

// CartBackend stores accepted cart lines.
type CartBackend interface {
	AddItem(ctx context.Context, item client.CartItem) (json.RawMessage, error)
}

// EventPublisher publishes storefront events.
type EventPublisher interface {
	PublishCartItemAdded(ctx context.Context, data event.CartItemAddedData) error
	PublishCartAddRejected(ctx context.Context, data event.CartAddRejectedData) error
	PublishWishlistToggled(ctx context.Context, data event.WishlistToggledData) error
}

// AddToCartInput is the shopper's current selection for a product.
type AddToCartInput struct {
	ProductID int64            `json:"product_id" validate:"required,gt=0"`
	Selected  domain.Selection `json:"selected" validate:"omitempty,max=50,dive,keys,required,max=100,endkeys,max=200"`
	Quantity  int              `json:"quantity" validate:"required,gte=1,lte=100"`
}

// AddToCartResult describes the line forwarded to the cart backend.
type AddToCartResult struct {
	ProductID        int64           `json:"product_id"`
	VariantProductID int64           `json:"variant_product_id"`
	Resolution       string          `json:"resolution"`
	Quantity         int             `json:"quantity"`
	UnitPrice        int64           `json:"unit_price"`
	Currency         string          `json:"currency"`
	Cart             json.RawMessage `json:"cart,omitempty"`
}

// CartService turns a resolved selection into a cart line.
type CartService struct {
	products ProductLoader
	cart     CartBackend
	events   EventPublisher
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(products ProductLoader, cart CartBackend, events EventPublisher, logger *slog.Logger) *CartService {
	return &CartService{
		products: products,
		cart:     cart,
		events:   events,
		logger:   logger,
	}
}

// AddToCart resolves input.Selected and forwards the chosen product to the
// cart backend. An empty selection means the product's default selection.
// No match, no stock, and a quantity above the known stock are rejected
// without calling the backend.
func (s *CartService) AddToCart(ctx context.Context, userID string, input AddToCartInput) (*AddToCartResult, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if input.ProductID <= 0 {
		return nil, apperrors.InvalidInput("product id must be positive")
	}
	if input.Quantity <= 0 {
		return nil, apperrors.InvalidInput("quantity must be greater than 0")
	}
	if input.Quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	p, err := s.products.LoadProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	selected := input.Selected
	if len(selected) == 0 {
		selected = domain.DefaultSelection(p, domain.BuildAxes(p))
	}
	res := domain.Resolve(p, selected)

	if err := res.Purchasable(p); err != nil {
		switch {
		case errors.Is(err, domain.ErrCombinationUnavailable):
			return nil, s.reject(ctx, userID, input, selected,
				apperrors.Unprocessable(CodeCombinationUnavailable, domain.NoMatchMessage, err))
		default:
			return nil, s.reject(ctx, userID, input, selected,
				apperrors.Conflict(CodeOutOfStock, "the selected item is out of stock", err))
		}
	}

	if stock := res.Stock(p); stock.Known && input.Quantity > stock.Quantity {
		return nil, s.reject(ctx, userID, input, selected, &apperrors.AppError{
			Code:    CodeInsufficientStock,
			Message: fmt.Sprintf("only %d left in stock", stock.Quantity),
			Status:  http.StatusBadRequest,
			Err:     domain.ErrInsufficientStock,
		})
	}

	price, _ := res.Price(p)
	orderable := res.ProductID(p)
	item := client.CartItem{
		ProductID: strconv.FormatInt(p.ID, 10),
		VariantID: strconv.FormatInt(orderable, 10),
		Name:      p.Name,
		SKU:       skuFor(p, res),
		Price:     price,
		Quantity:  input.Quantity,
	}
	if media := res.Media(p); len(media) > 0 {
		item.ImageURL = media[0].URL
	}

	cart, err := s.cart.AddItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("add item to cart: %w", err)
	}

	if err := s.events.PublishCartItemAdded(ctx, event.CartItemAddedData{
		UserID:           userID,
		ProductID:        p.ID,
		VariantProductID: orderable,
		SKU:              item.SKU,
		Selected:         selected,
		Quantity:         input.Quantity,
		UnitPrice:        price,
		Currency:         p.Currency,
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.item_added event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("user_id", userID),
		slog.Int64("product_id", p.ID),
		slog.Int64("variant_product_id", orderable),
		slog.Int("quantity", input.Quantity),
	)

	return &AddToCartResult{
		ProductID:        p.ID,
		VariantProductID: orderable,
		Resolution:       string(res.Kind),
		Quantity:         input.Quantity,
		UnitPrice:        price,
		Currency:         p.Currency,
		Cart:             cart,
	}, nil
}

func (s *CartService) reject(ctx context.Context, userID string, input AddToCartInput, selected domain.Selection, appErr *apperrors.AppError) error {
	cartAddRejections.WithLabelValues(appErr.Code).Inc()

	if err := s.events.PublishCartAddRejected(ctx, event.CartAddRejectedData{
		UserID:    userID,
		ProductID: input.ProductID,
		Selected:  selected,
		Quantity:  input.Quantity,
		Reason:    appErr.Code,
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.add_rejected event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "add to cart rejected",
		slog.String("user_id", userID),
		slog.Int64("product_id", input.ProductID),
		slog.String("reason", appErr.Code),
	)
	return appErr
}

// skuFor is the variant SKU, or a product-derived SKU for the parent.
func skuFor(p *domain.Product, res domain.Resolution) string {
	if res.Variant != nil && res.Variant.SKU != "" {
		return res.Variant.SKU
	}
	if p.Slug != "" {
		return p.Slug
	}
	return "P-" + strconv.FormatInt(res.ProductID(p), 10)
}
