package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/services/storefront/internal/domain"
)

// ProductViewer resolves selections into product views.
type ProductViewer interface {
	GetView(ctx context.Context, productID int64, choices domain.Selection) (*domain.ProductView, error)
	ResolveSelection(ctx context.Context, productID int64, selected domain.Selection) (*domain.ProductView, error)
	InvalidateProduct(ctx context.Context, productID int64) error
}

// ProductHandler handles HTTP requests for product views.
type ProductHandler struct {
	service ProductViewer
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc ProductViewer, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// ResolveRequest is the JSON body for POST /products/{productId}/resolve.
type ResolveRequest struct {
	Selected map[string]string `json:"selected" validate:"omitempty,max=50,dive,keys,required,max=100,endkeys,max=200"`
}

// GetProduct handles GET /api/v1/products/{productId}?attr[Color]=Blue
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseID(w, "productId", chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	view, err := h.service.GetView(r.Context(), productID, choicesFromQuery(r.URL.Query()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, view)
}

// Resolve handles POST /api/v1/products/{productId}/resolve
func (h *ProductHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseID(w, "productId", chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	var req ResolveRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	view, err := h.service.ResolveSelection(r.Context(), productID, domain.Selection(req.Selected))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, view)
}

// InvalidateCache handles DELETE /api/v1/admin/products/{productId}/cache
func (h *ProductHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseID(w, "productId", chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	if err := h.service.InvalidateProduct(r.Context(), productID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// choicesFromQuery collects attr[Name]=Value parameters. The first value of
// a repeated parameter wins.
func choicesFromQuery(q url.Values) domain.Selection {
	choices := domain.Selection{}
	for key, values := range q {
		if !strings.HasPrefix(key, "attr[") || !strings.HasSuffix(key, "]") || len(values) == 0 {
			continue
		}
		name := strings.TrimSpace(key[len("attr[") : len(key)-1])
		if name == "" {
			continue
		}
		choices[name] = values[0]
	}
	return choices
}
