package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httpclient"
	"github.com/utafrali/storefront/pkg/middleware"
)

const cartBackend = "cart"

// CartItem is the line the cart backend stores. ProductID is the parent
// listing, VariantID the orderable product id.
type CartItem struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
}

// CartClient forwards accepted add-to-cart requests to the cart backend on
// behalf of the caller.
type CartClient struct {
	http    httpclient.Doer
	baseURL string
	logger  *slog.Logger
}

// NewCartClient creates a cart client rooted at baseURL.
func NewCartClient(doer httpclient.Doer, baseURL string, logger *slog.Logger) *CartClient {
	return &CartClient{
		http:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// AddItem posts item to the caller's cart and returns the backend's cart
// document unchanged. The bearer token is taken from ctx.
func (c *CartClient) AddItem(ctx context.Context, item CartItem) (json.RawMessage, error) {
	token := middleware.TokenFromContext(ctx)
	if token == "" {
		return nil, apperrors.Unauthorized("missing bearer token for cart request")
	}

	req, err := newRequest(ctx, http.MethodPost, c.baseURL+"/cart/items", item)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, httpclient.AsUnavailable(err, cartBackend)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp, cartBackend)
	}

	var cart json.RawMessage
	if err := decodeBody(resp, &cart); err != nil {
		return nil, fmt.Errorf("cart add item: %w", err)
	}

	c.logger.DebugContext(ctx, "cart item forwarded",
		slog.String("product_id", item.ProductID),
		slog.String("variant_id", item.VariantID),
		slog.Int("quantity", item.Quantity),
	)
	return cart, nil
}
