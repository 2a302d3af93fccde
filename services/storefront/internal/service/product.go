package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/slug"
	"github.com/utafrali/storefront/pkg/tracing"
	"github.com/utafrali/storefront/services/storefront/internal/domain"
	"github.com/utafrali/storefront/services/storefront/internal/repository"
)

const tracerName = "github.com/utafrali/storefront/services/storefront/internal/service"

// ProductSource fetches authoritative product payloads.
type ProductSource interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// ProductLoader returns a product by ID from whatever source is fastest.
type ProductLoader interface {
	LoadProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// ProductViewService resolves shopper selections against catalog products.
type ProductViewService struct {
	catalog ProductSource
	cache   repository.ProductCache
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewProductViewService creates a product view service. cache may be nil.
func NewProductViewService(catalog ProductSource, cache repository.ProductCache, logger *slog.Logger) *ProductViewService {
	return &ProductViewService{
		catalog: catalog,
		cache:   cache,
		logger:  logger,
		tracer:  tracing.Tracer(tracerName),
	}
}

// LoadProduct returns the cached product or fetches it from the catalog and
// caches it. Cache failures are logged and bypassed.
func (s *ProductViewService) LoadProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("product id must be positive")
	}

	if s.cache != nil {
		p, err := s.cache.Get(ctx, id)
		switch {
		case err == nil:
			productCacheLookups.WithLabelValues("hit").Inc()
			return p, nil
		case errors.Is(err, apperrors.ErrNotFound):
			productCacheLookups.WithLabelValues("miss").Inc()
		default:
			productCacheLookups.WithLabelValues("error").Inc()
			s.logger.WarnContext(ctx, "product cache read failed",
				slog.Int64("product_id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	p, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load product %d: %w", id, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, p); err != nil {
			s.logger.WarnContext(ctx, "product cache write failed",
				slog.Int64("product_id", id),
				slog.String("error", err.Error()),
			)
		}
	}
	return p, nil
}

// InvalidateProduct drops the cached payload so the next load refetches it
// from the catalog.
func (s *ProductViewService) InvalidateProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.InvalidInput("product id must be positive")
	}
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		return apperrors.Internal(fmt.Errorf("invalidate product %d: %w", id, err))
	}
	s.logger.InfoContext(ctx, "product cache invalidated", slog.Int64("product_id", id))
	return nil
}

// GetView starts from the product's default selection and applies choices
// axis by axis. Choices the product does not offer are ignored.
func (s *ProductViewService) GetView(ctx context.Context, productID int64, choices domain.Selection) (*domain.ProductView, error) {
	p, err := s.LoadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	ctx, span := s.startResolve(ctx, p)
	defer span.End()

	state := domain.NewSelectionState(p)
	for _, name := range sortedNames(choices) {
		if !state.Choose(name, choices[name]) {
			s.logger.DebugContext(ctx, "attribute choice ignored",
				slog.Int64("product_id", p.ID),
				slog.String("attribute", name),
				slog.String("value", choices[name]),
			)
		}
	}

	view := domain.NewProductView(state)
	s.finishResolve(span, p, &view)
	return &view, nil
}

// ResolveSelection resolves selected exactly as given, without applying
// defaults or dropping unknown values.
func (s *ProductViewService) ResolveSelection(ctx context.Context, productID int64, selected domain.Selection) (*domain.ProductView, error) {
	p, err := s.LoadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	_, span := s.startResolve(ctx, p)
	defer span.End()

	view := domain.ViewFor(p, selected)
	s.finishResolve(span, p, &view)
	return &view, nil
}

func (s *ProductViewService) startResolve(ctx context.Context, p *domain.Product) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "storefront.ResolveVariant",
		trace.WithAttributes(
			attribute.Int64("product.id", p.ID),
			attribute.Bool("product.has_variants", p.HasVariants),
			attribute.Int("product.variant_count", len(p.Variants)),
		),
	)
}

func (s *ProductViewService) finishResolve(span trace.Span, p *domain.Product, view *domain.ProductView) {
	view.CanonicalPath = canonicalPath(p, view)
	variantResolutions.WithLabelValues(string(view.Resolution)).Inc()
	span.SetAttributes(
		attribute.String("resolution.kind", string(view.Resolution)),
		attribute.Int64("resolution.variant_product_id", view.VariantProductID),
		attribute.Bool("resolution.purchasable", view.Purchasable),
	)
}

// canonicalPath is /products/{id}/{slug}, with ?variant= for a matched variant.
func canonicalPath(p *domain.Product, view *domain.ProductView) string {
	name := p.Slug
	if name == "" {
		name = slug.Generate(p.Name)
	}

	path := "/products/" + strconv.FormatInt(p.ID, 10)
	if name != "" {
		path += "/" + name
	}
	if view.Resolution == domain.KindMatchedVariant {
		path += "?variant=" + strconv.FormatInt(view.VariantProductID, 10)
	}
	return path
}

func sortedNames(sel domain.Selection) []string {
	names := make([]string, 0, len(sel))
	for name := range sel {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
