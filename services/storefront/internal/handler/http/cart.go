package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
	"github.com/utafrali/storefront/services/storefront/internal/service"
)

// CartAdder adds resolved selections to the shopper's cart.
type CartAdder interface {
	AddToCart(ctx context.Context, userID string, input service.AddToCartInput) (*service.AddToCartResult, error)
}

// CartHandler handles HTTP requests for add-to-cart.
type CartHandler struct {
	service CartAdder
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc CartAdder, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req service.AddToCartInput
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.service.AddToCart(r.Context(), middleware.UserIDFromContext(r.Context()), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, res)
}
