package service

import (
	"context"
	"sync"
	"time"

	"whatsmenu/internal/delivery"
	"whatsmenu/internal/domain"
	"whatsmenu/internal/microservices/storefront/repository"

	"github.com/rabbitmq/amqp091-go"
)

type mockCatalog struct {
	restaurant domain.Restaurant
	categories []domain.Category
	products   []domain.Product
	coupon     *domain.Coupon
	tiers      []domain.DeliveryTier
	err        error
}

func (m *mockCatalog) GetRestaurant(_ context.Context, slug string) (domain.Restaurant, error) {
	if m.err != nil {
		return domain.Restaurant{}, m.err
	}
	if slug != m.restaurant.Slug {
		return domain.Restaurant{}, repository.ErrRestaurantNotFound
	}
	return m.restaurant, nil
}

func (m *mockCatalog) ListCategories(context.Context, int) ([]domain.Category, error) {
	return m.categories, m.err
}

func (m *mockCatalog) ListProducts(context.Context, int) ([]domain.Product, error) {
	return m.products, m.err
}

func (m *mockCatalog) GetProduct(_ context.Context, _, productID int) (domain.Product, error) {
	for _, p := range m.products {
		if p.ID == productID {
			return p, nil
		}
	}
	return domain.Product{}, repository.ErrProductNotFound
}

func (m *mockCatalog) GetCoupon(_ context.Context, _ int, code string) (domain.Coupon, error) {
	if m.coupon != nil && m.coupon.Code == code {
		return *m.coupon, nil
	}
	return domain.Coupon{}, repository.ErrCouponNotFound
}

func (m *mockCatalog) ListDeliveryTiers(context.Context, int) ([]domain.DeliveryTier, error) {
	return m.tiers, nil
}

type mockOrders struct {
	mu    sync.Mutex
	count int
	saved []repository.OrderRecord
	err   error
}

func (m *mockOrders) CountOrdersSince(context.Context, time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count, m.err
}

func (m *mockOrders) AddOrder(_ context.Context, order repository.OrderRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, order)
	return nil
}

type mockQuoter struct {
	quote delivery.Quote
	err   error
}

func (m *mockQuoter) Quote(context.Context, string, domain.Coordinates, []domain.DeliveryTier) (delivery.Quote, error) {
	return m.quote, m.err
}

type published struct {
	exchange, key string
	body          []byte
}

type mockPublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (m *mockPublisher) Publish(_ context.Context, exchange, key string, body []byte,
	_ amqp091.Table, _ string, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.msgs = append(m.msgs, published{exchange: exchange, key: key, body: body})
	return nil
}
