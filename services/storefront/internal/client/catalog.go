package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/pkg/httpclient"
	"github.com/utafrali/storefront/services/storefront/internal/domain"
)

const catalogBackend = "catalog"

// minorUnitExponent converts major-unit prices to cents.
const minorUnitExponent = 2

type attributePayload struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type variantAttributePayload struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type mediaPayload struct {
	URL       string `json:"url"`
	Type      string `json:"type"`
	AltText   string `json:"alt_text"`
	SortOrder int    `json:"sort_order"`
}

type stockPayload struct {
	StockQty  *int `json:"stock_qty"`
	IsInStock bool `json:"is_in_stock"`
}

type variantPayload struct {
	VariantID            int64             `json:"variant_id"`
	VariantProductID     int64             `json:"variant_product_id"`
	SKU                  string            `json:"sku"`
	AttributeCombination map[string]string `json:"attribute_combination"`
	EffectivePrice       decimal.Decimal   `json:"effective_price"`
	StockQuantity        int               `json:"stock_quantity"`
	Media                []mediaPayload    `json:"media"`
}

// productPayload is the catalog's product shape. Prices are decimal numbers
// or strings in major units. Variants is nil when the payload does not
// embed them.
type productPayload struct {
	ID                int64                     `json:"id"`
	ProductID         int64                     `json:"product_id"`
	Name              string                    `json:"name"`
	Slug              string                    `json:"slug"`
	HasVariants       bool                      `json:"has_variants"`
	Attributes        []attributePayload        `json:"attributes"`
	VariantAttributes []variantAttributePayload `json:"variant_attributes"`
	Variants          *[]variantPayload         `json:"variants"`
	Price             decimal.Decimal           `json:"price"`
	SpecialPrice      decimal.NullDecimal       `json:"special_price"`
	Currency          string                    `json:"currency"`
	Stock             *stockPayload             `json:"stock"`
	Media             []mediaPayload            `json:"media"`
}

// CatalogClient reads products and their variants from the catalog backend.
type CatalogClient struct {
	http    httpclient.Doer
	baseURL string
	logger  *slog.Logger
}

// NewCatalogClient creates a catalog client rooted at baseURL.
func NewCatalogClient(doer httpclient.Doer, baseURL string, logger *slog.Logger) *CatalogClient {
	return &CatalogClient{
		http:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// GetProduct fetches product id. Variants are fetched separately only when
// the product has variants and the payload does not embed them.
func (c *CatalogClient) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var payload productPayload
	if err := c.get(ctx, fmt.Sprintf("%s/products/%d", c.baseURL, id), &payload); err != nil {
		return nil, err
	}
	if payload.ID == 0 {
		payload.ID = payload.ProductID
	}
	if payload.ID == 0 {
		payload.ID = id
	}

	var variants []variantPayload
	switch {
	case payload.Variants != nil:
		variants = *payload.Variants
	case payload.HasVariants:
		if err := c.get(ctx, fmt.Sprintf("%s/products/%d/variants", c.baseURL, id), &variants); err != nil {
			return nil, fmt.Errorf("get variants of product %d: %w", id, err)
		}
	}

	return c.toDomain(ctx, &payload, variants), nil
}

func (c *CatalogClient) get(ctx context.Context, url string, dst any) error {
	req, err := newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return httpclient.AsUnavailable(err, catalogBackend)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, catalogBackend)
	}
	if err := decodeBody(resp, dst); err != nil {
		return fmt.Errorf("catalog %s: %w", url, err)
	}
	return nil
}

func (c *CatalogClient) toDomain(ctx context.Context, p *productPayload, variants []variantPayload) *domain.Product {
	product := &domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		HasVariants: p.HasVariants,
		Price:       toMinor(p.Price),
		Currency:    strings.ToUpper(p.Currency),
		Media:       toMedia(p.Media),
	}
	if p.SpecialPrice.Valid {
		special := toMinor(p.SpecialPrice.Decimal)
		product.SpecialPrice = &special
	}
	if p.Stock != nil {
		product.StockQuantity = p.Stock.StockQty
		product.IsInStock = p.Stock.IsInStock
		if p.Stock.StockQty != nil && *p.Stock.StockQty > 0 {
			product.IsInStock = true
		}
	}

	for _, a := range p.Attributes {
		product.Attributes = append(product.Attributes, domain.Attribute{Name: a.Name, Value: a.Value})
	}
	for _, va := range p.VariantAttributes {
		product.VariantAttributes = append(product.VariantAttributes, domain.VariantAttribute{
			Name:   va.Name,
			Values: va.Values,
		})
	}

	for _, v := range variants {
		if v.AttributeCombination == nil {
			c.logger.DebugContext(ctx, "variant without attribute combination excluded from matching",
				slog.Int64("product_id", p.ID),
				slog.Int64("variant_id", v.VariantID),
			)
		}
		product.Variants = append(product.Variants, domain.Variant{
			VariantID:            v.VariantID,
			VariantProductID:     v.VariantProductID,
			SKU:                  v.SKU,
			AttributeCombination: v.AttributeCombination,
			EffectivePrice:       toMinor(v.EffectivePrice),
			StockQuantity:        v.StockQuantity,
			Media:                toMedia(v.Media),
		})
	}
	return product
}

func toMinor(d decimal.Decimal) int64 {
	return d.Shift(minorUnitExponent).Round(0).IntPart()
}

func toMedia(in []mediaPayload) []domain.Media {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.Media, 0, len(in))
	for _, m := range in {
		typ := m.Type
		if typ == "" {
			typ = domain.MediaTypeImage
		}
		out = append(out, domain.Media{URL: m.URL, Type: typ, AltText: m.AltText, SortOrder: m.SortOrder})
	}
	return out
}
