package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8020, cfg.HTTPPort)
	assert.Equal(t, "http://localhost:8001/api/v1", cfg.CatalogAPIURL)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
}

func TestLoad_InvalidHTTPPort(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_PORT", "70000")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "invalid HTTP port")
}

func TestLoad_RelativeCatalogURL(t *testing.T) {
	t.Setenv("CATALOG_API_URL", "/api/v1")

	_, err := Load()

	assert.ErrorContains(t, err, "CATALOG_API_URL must be an absolute URL")
}

func TestLoad_InvalidOTELSampleRate(t *testing.T) {
	t.Setenv("OTEL_SAMPLE_RATE", "1.5")

	_, err := Load()

	assert.ErrorContains(t, err, "OTEL_SAMPLE_RATE must be between 0.0 and 1.0")
}

func TestLoad_JWTSecretRequiredInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET is required")

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoad_NegativeCacheTTL(t *testing.T) {
	t.Setenv("PRODUCT_CACHE_TTL_SECONDS", "-1")

	_, err := Load()

	assert.ErrorContains(t, err, "PRODUCT_CACHE_TTL_SECONDS")
}

func TestConfig_Derived(t *testing.T) {
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "3")
	t.Setenv("BACKEND_MAX_RETRIES", "0")
	t.Setenv("STOREFRONT_DB_NAME", "wishlists")

	cfg, err := Load()
	require.NoError(t, err)

	httpCfg := cfg.HTTPClient()
	assert.Equal(t, 3*time.Second, httpCfg.Timeout)
	assert.Equal(t, 0, httpCfg.MaxRetries)

	pg := cfg.Postgres()
	assert.Equal(t, "wishlists", pg.DBName)
	assert.Equal(t, time.Hour, pg.MaxConnLifetime)

	tr := cfg.Tracing("storefront")
	assert.Equal(t, "storefront", tr.ServiceName)
	assert.False(t, tr.Enabled)
}

func TestLoad_InvalidRedisAddr(t *testing.T) {
	t.Setenv("REDIS_ADDR", "localhost")

	_, err := Load()

	assert.ErrorContains(t, err, "REDIS_ADDR")
}

func TestConfig_Redis(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache.internal:6380")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)

	r := cfg.Redis()
	assert.Equal(t, "cache.internal", r.Host)
	assert.Equal(t, 6380, r.Port)
	assert.Equal(t, 2, r.DB)
}

func TestLoad_RateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("RATE_LIMIT_BURST", "0")

	_, err := Load()
	assert.ErrorContains(t, err, "RATE_LIMIT_BURST")

	t.Setenv("RATE_LIMIT_BURST", "10")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5.0, cfg.RateLimit().RPS)
	assert.Equal(t, 10, cfg.RateLimit().Burst)
}
