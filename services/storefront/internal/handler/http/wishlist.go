package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
	"github.com/utafrali/storefront/pkg/pagination"
	"github.com/utafrali/storefront/services/storefront/internal/domain"
)

// WishlistManager manages the shopper's saved products.
type WishlistManager interface {
	Toggle(ctx context.Context, userID string, productID, variantProductID int64) (bool, error)
	List(ctx context.Context, userID string, params pagination.Params) (pagination.Result[domain.WishlistItem], error)
	Remove(ctx context.Context, userID string, productID, variantProductID int64) error
	Contains(ctx context.Context, userID string, productID, variantProductID int64) (bool, error)
}

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	service WishlistManager
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc WishlistManager, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: svc,
		logger:  logger,
	}
}

// ToggleRequest is the JSON body for POST /wishlist/toggle.
type ToggleRequest struct {
	ProductID        int64 `json:"product_id" validate:"required,gt=0"`
	VariantProductID int64 `json:"variant_product_id" validate:"gte=0"`
}

// ToggleResponse reports the item's state after a toggle.
type ToggleResponse struct {
	ProductID        int64 `json:"product_id"`
	VariantProductID int64 `json:"variant_product_id"`
	Wishlisted       bool  `json:"wishlisted"`
}

// List handles GET /api/v1/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.List(r.Context(), middleware.UserIDFromContext(r.Context()), pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, res)
}

// Toggle handles POST /api/v1/wishlist/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	wishlisted, err := h.service.Toggle(r.Context(), middleware.UserIDFromContext(r.Context()), req.ProductID, req.VariantProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, ToggleResponse{
		ProductID:        req.ProductID,
		VariantProductID: req.VariantProductID,
		Wishlisted:       wishlisted,
	})
}

// Status handles GET /api/v1/wishlist/{productId}?variant_product_id=
func (h *WishlistHandler) Status(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseID(w, "productId", chi.URLParam(r, "productId"))
	if !ok {
		return
	}
	variantProductID, ok := variantFromQuery(w, r)
	if !ok {
		return
	}

	wishlisted, err := h.service.Contains(r.Context(), middleware.UserIDFromContext(r.Context()), productID, variantProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, ToggleResponse{
		ProductID:        productID,
		VariantProductID: variantProductID,
		Wishlisted:       wishlisted,
	})
}

// Remove handles DELETE /api/v1/wishlist/{productId}?variant_product_id=
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseID(w, "productId", chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	variantProductID, ok := variantFromQuery(w, r)
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), middleware.UserIDFromContext(r.Context()), productID, variantProductID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// variantFromQuery reads the optional variant_product_id parameter; absent or
// 0 means the parent.
func variantFromQuery(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("variant_product_id")
	if raw == "" || raw == "0" {
		return 0, true
	}
	return httputil.ParseID(w, "variant_product_id", raw)
}
