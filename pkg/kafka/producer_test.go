package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "storefront.cart.item_added", Topic("cart", "item_added"))
}

func TestNewEvent(t *testing.T) {
	event, err := NewEvent("cart.item_added", "42", "product", "storefront", map[string]int{"quantity": 2})
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, 1, event.Version)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, 2*time.Second)

	var data map[string]int
	require.NoError(t, event.UnmarshalData(&data))
	assert.Equal(t, 2, data["quantity"])

	event.WithCorrelationID("corr-1").WithMetadata("user_id", "u-1")
	raw, err := event.Marshal()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "corr-1", decoded["correlation_id"])
	assert.Equal(t, map[string]any{"user_id": "u-1"}, decoded["metadata"])
}

func TestNewEvent_UnserializableData(t *testing.T) {
	_, err := NewEvent("x", "1", "product", "storefront", make(chan int))
	require.Error(t, err)
}

func TestProducer_Publish(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	w := &fakeWriter{}
	p := NewProducerWithWriter(w, []string{"localhost:9092"}, discardLogger())

	event, err := NewEvent("cart.item_added", "42", "product", "storefront", map[string]string{"sku": "TS-R-S"})
	require.NoError(t, err)
	event.WithCorrelationID("corr-9")

	topic := Topic("cart", "item_added")
	before := testutil.ToFloat64(producerMessagesPublished.WithLabelValues(topic))
	require.NoError(t, p.Publish(ctx, topic, event))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, topic, msg.Topic)
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, "cart.item_added", headerValue(msg, "event_type"))
	assert.Equal(t, "corr-9", headerValue(msg, "correlation_id"))
	assert.Contains(t, headerValue(msg, "traceparent"), span.SpanContext().TraceID().String())
	assert.Equal(t, before+1, testutil.ToFloat64(producerMessagesPublished.WithLabelValues(topic)))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestProducer_PublishError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := NewProducerWithWriter(w, nil, discardLogger())

	event, err := NewEvent("cart.add_rejected", "7", "product", "storefront", struct{}{})
	require.NoError(t, err)

	topic := Topic("cart", "add_rejected")
	before := testutil.ToFloat64(producerPublishErrors.WithLabelValues(topic))

	err = p.Publish(context.Background(), topic, event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Equal(t, before+1, testutil.ToFloat64(producerPublishErrors.WithLabelValues(topic)))
}

func TestProducer_PingWithoutBrokers(t *testing.T) {
	p := NewProducerWithWriter(&fakeWriter{}, nil, discardLogger())
	assert.Error(t, p.Ping(context.Background()))
}

func TestHeaderCarrier(t *testing.T) {
	headers := []kafka.Header{{Key: "a", Value: []byte("1")}}
	c := NewHeaderCarrier(&headers)

	assert.Equal(t, "1", c.Get("a"))
	assert.Empty(t, c.Get("missing"))

	c.Set("a", "2")
	c.Set("b", "3")
	assert.Equal(t, "2", c.Get("a"))
	assert.ElementsMatch(t, []string{"a", "b"}, c.Keys())
	assert.Len(t, headers, 2)
}
