package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	variantResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_variant_resolutions_total",
			Help: "Variant resolutions by outcome.",
		},
		[]string{"outcome"},
	)

	productCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_product_cache_lookups_total",
			Help: "Product cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)

	cartAddRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_add_rejections_total",
			Help: "Add-to-cart requests rejected before reaching the cart backend, by reason.",
		},
		[]string{"reason"},
	)
)
