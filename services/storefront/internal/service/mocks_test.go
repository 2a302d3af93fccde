package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/utafrali/storefront/services/storefront/internal/client"
	"github.com/utafrali/storefront/services/storefront/internal/domain"
	"github.com/utafrali/storefront/services/storefront/internal/event"
)

// --- Mocks ---

type mockProductSource struct {
	mock.Mock
}

func (m *mockProductSource) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type mockProductCache struct {
	mock.Mock
}

func (m *mockProductCache) Get(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductCache) Set(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductCache) Invalidate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockProductLoader struct {
	mock.Mock
}

func (m *mockProductLoader) LoadProduct(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type mockCartBackend struct {
	mock.Mock
}

func (m *mockCartBackend) AddItem(ctx context.Context, item client.CartItem) (json.RawMessage, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishCartItemAdded(ctx context.Context, data event.CartItemAddedData) error {
	return m.Called(ctx, data).Error(0)
}

func (m *mockEventPublisher) PublishCartAddRejected(ctx context.Context, data event.CartAddRejectedData) error {
	return m.Called(ctx, data).Error(0)
}

func (m *mockEventPublisher) PublishWishlistToggled(ctx context.Context, data event.WishlistToggledData) error {
	return m.Called(ctx, data).Error(0)
}

type mockWishlistRepository struct {
	mock.Mock
}

func (m *mockWishlistRepository) Add(ctx context.Context, item *domain.WishlistItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockWishlistRepository) Remove(ctx context.Context, userID string, productID, variantProductID int64) (bool, error) {
	args := m.Called(ctx, userID, productID, variantProductID)
	return args.Bool(0), args.Error(1)
}

func (m *mockWishlistRepository) Exists(ctx context.Context, userID string, productID, variantProductID int64) (bool, error) {
	args := m.Called(ctx, userID, productID, variantProductID)
	return args.Bool(0), args.Error(1)
}

func (m *mockWishlistRepository) ListByUser(ctx context.Context, userID string, page, perPage int) ([]domain.WishlistItem, int, error) {
	args := m.Called(ctx, userID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.WishlistItem), args.Int(1), args.Error(2)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

// tshirt is Color∈{Red,Blue} × Size∈{S,M}: parent Red/S (12 in stock), one
// Blue/M variant (3 in stock) and one Blue/S variant that is sold out.
func tshirt() *domain.Product {
	return &domain.Product{
		ID:          100,
		Name:        "Classic T-Shirt",
		Attributes:  []domain.Attribute{{Name: "Color", Value: "Red"}, {Name: "Size", Value: "S"}},
		HasVariants: true,
		VariantAttributes: []domain.VariantAttribute{
			{Name: "Color", Values: []string{"Red", "Blue"}},
			{Name: "Size", Values: []string{"S", "M", "L"}},
		},
		Variants: []domain.Variant{
			{
				VariantID:            1,
				VariantProductID:     101,
				SKU:                  "TS-BLUE-M",
				AttributeCombination: map[string]string{"Color": "Blue", "Size": "M"},
				EffectivePrice:       2499,
				StockQuantity:        3,
				Media:                []domain.Media{{URL: "https://cdn.example.com/ts-blue.jpg", Type: domain.MediaTypeImage}},
			},
			{
				VariantID:            2,
				VariantProductID:     102,
				SKU:                  "TS-BLUE-S",
				AttributeCombination: map[string]string{"Color": "Blue", "Size": "S"},
				EffectivePrice:       2499,
				StockQuantity:        0,
			},
		},
		Price:         2999,
		SpecialPrice:  int64Ptr(1999),
		StockQuantity: intPtr(12),
		IsInStock:     true,
		Currency:      "USD",
		Media:         []domain.Media{{URL: "https://cdn.example.com/ts-red.jpg", Type: domain.MediaTypeImage}},
	}
}
