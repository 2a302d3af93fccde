package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/logger"
)

// Kafka topics for storefront events.
var (
	TopicCartItemAdded   = pkgkafka.Topic("cart", "item_added")
	TopicCartAddRejected = pkgkafka.Topic("cart", "add_rejected")
	TopicWishlistToggled = pkgkafka.Topic("wishlist", "toggled")
)

// Aggregate types.
const (
	AggregateTypeCart     = "cart"
	AggregateTypeWishlist = "wishlist"
)

// SourceStorefront identifies events originating from this service.
const SourceStorefront = "storefront-service"

// CartItemAddedData is the payload for a cart.item_added event.
type CartItemAddedData struct {
	UserID           string            `json:"user_id"`
	ProductID        int64             `json:"product_id"`
	VariantProductID int64             `json:"variant_product_id"`
	SKU              string            `json:"sku,omitempty"`
	Selected         map[string]string `json:"selected"`
	Quantity         int               `json:"quantity"`
	UnitPrice        int64             `json:"unit_price"`
	Currency         string            `json:"currency"`
}

// CartAddRejectedData is the payload for a cart.add_rejected event.
type CartAddRejectedData struct {
	UserID    string            `json:"user_id"`
	ProductID int64             `json:"product_id"`
	Selected  map[string]string `json:"selected"`
	Quantity  int               `json:"quantity"`
	Reason    string            `json:"reason"`
}

// WishlistToggledData is the payload for a wishlist.toggled event.
type WishlistToggledData struct {
	UserID           string `json:"user_id"`
	ProductID        int64  `json:"product_id"`
	VariantProductID int64  `json:"variant_product_id"`
	Wishlisted       bool   `json:"wishlisted"`
}

// Producer publishes storefront events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartItemAdded publishes a cart.item_added event keyed by the user.
func (p *Producer) PublishCartItemAdded(ctx context.Context, data CartItemAddedData) error {
	return p.publish(ctx, TopicCartItemAdded, data.UserID, AggregateTypeCart, data,
		slog.Int64("variant_product_id", data.VariantProductID),
	)
}

// PublishCartAddRejected publishes a cart.add_rejected event.
func (p *Producer) PublishCartAddRejected(ctx context.Context, data CartAddRejectedData) error {
	return p.publish(ctx, TopicCartAddRejected, data.UserID, AggregateTypeCart, data,
		slog.String("reason", data.Reason),
	)
}

// PublishWishlistToggled publishes a wishlist.toggled event.
func (p *Producer) PublishWishlistToggled(ctx context.Context, data WishlistToggledData) error {
	return p.publish(ctx, TopicWishlistToggled, data.UserID, AggregateTypeWishlist, data,
		slog.Int64("product_id", data.ProductID),
		slog.Bool("wishlisted", data.Wishlisted),
	)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any, attrs ...any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published "+topic+" event",
		append([]any{slog.String("user_id", aggregateID)}, attrs...)...,
	)
	return nil
}
