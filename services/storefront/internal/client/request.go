package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/utafrali/storefront/pkg/logger"
	"github.com/utafrali/storefront/pkg/middleware"
)

// maxResponseBytes caps decoded backend bodies.
const maxResponseBytes = 4 << 20

// newRequest builds a backend request carrying the correlation ID and W3C
// trace context of ctx. body, when non-nil, is encoded as JSON.
func newRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.CorrelationIDHeader, id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	return req, nil
}

// envelope is the {"data": ...} wrapper some backends answer with.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// decodeBody reads resp and unmarshals it into dst, unwrapping a data
// envelope when present. The body is closed.
func decodeBody(resp *http.Response, dst any) error {
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	var env envelope
	if json.Unmarshal(raw, &env) == nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		raw = env.Data
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
