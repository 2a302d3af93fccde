package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

const serviceName = "storefront"

// RouterConfig carries the handlers' dependencies.
type RouterConfig struct {
	Products        ProductViewer
	Cart            CartAdder
	Wishlist        WishlistManager
	Health          *health.Handler
	ValidateToken   middleware.TokenValidator
	CORS            middleware.CORSConfig
	ProductCacheAge int
	RateLimit       middleware.RateLimitConfig
	Logger          *slog.Logger
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	logger := cfg.Logger

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))

	// Health check endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	productHandler := NewProductHandler(cfg.Products, logger)
	cartHandler := NewCartHandler(cfg.Cart, logger)
	wishlistHandler := NewWishlistHandler(cfg.Wishlist, logger)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimit.RPS > 0 {
			r.Use(middleware.RateLimit(cfg.RateLimit, logger))
		}
		r.Use(ContentTypeJSON)

		r.With(middleware.CacheControl(cfg.ProductCacheAge)).Get("/products/{productId}", productHandler.GetProduct)
		r.Post("/products/{productId}/resolve", productHandler.Resolve)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.ValidateToken))
			r.Use(middleware.RequestLogger(logger))

			r.Post("/cart/items", cartHandler.AddItem)

			r.Get("/wishlist", wishlistHandler.List)
			r.Post("/wishlist/toggle", wishlistHandler.Toggle)
			r.Get("/wishlist/{productId}", wishlistHandler.Status)
			r.Delete("/wishlist/{productId}", wishlistHandler.Remove)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.ValidateToken))
			r.Use(middleware.RequestLogger(logger))
			r.Use(middleware.RequireRole("admin"))

			r.Delete("/admin/products/{productId}/cache", productHandler.InvalidateCache)
		})
	})

	return r
}
