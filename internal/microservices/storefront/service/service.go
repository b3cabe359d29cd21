package service

import (
	"context"
	"time"

	"whatsmenu/internal/cart"
	"whatsmenu/internal/common/logger"
	"whatsmenu/internal/delivery"
	"whatsmenu/internal/domain"
	"whatsmenu/internal/microservices/storefront/repository"

	"github.com/rabbitmq/amqp091-go"
)

// Publisher is the slice of the rabbitmq client the checkout flow needs.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, body []byte,
		headers amqp091.Table, contentType string, persistent bool) error
}

// FeeQuoter is satisfied by *delivery.Resolver.
type FeeQuoter interface {
	Quote(ctx context.Context, address string, origin domain.Coordinates,
		tiers []domain.DeliveryTier) (delivery.Quote, error)
}

type StorefrontServiceInterface interface {
	Menu(ctx context.Context, slug string) (domain.MenuResponse, error)
	DeliveryQuote(ctx context.Context, slug, address string) (domain.QuoteResponse, error)
	GetCart(ctx context.Context, sessionID string) domain.CartResponse
	AddItem(ctx context.Context, sessionID string, req domain.AddItemRequest) (domain.CartResponse, error)
	RemoveItem(ctx context.Context, sessionID, productID string) domain.CartResponse
	ClearCart(ctx context.Context, sessionID string)
	Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResponse, error)
}

type Service struct {
	Storefront StorefrontServiceInterface
}

func New(repo *repository.Repository, carts *cart.Store, quoter FeeQuoter, pub Publisher) *Service {
	return &Service{
		Storefront: NewStorefrontService(repo.Catalog, repo.Orders, carts, quoter, pub),
	}
}

type StorefrontService struct {
	catalog repository.CatalogRepositoryInterface
	orders  repository.OrderRepositoryInterface
	carts   *cart.Store
	quoter  FeeQuoter
	pub     Publisher
	lg      *logger.Logger

	now func() time.Time
}

func NewStorefrontService(
	catalog repository.CatalogRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	carts *cart.Store,
	quoter FeeQuoter,
	pub Publisher,
) *StorefrontService {
	return &StorefrontService{
		catalog: catalog,
		orders:  orders,
		carts:   carts,
		quoter:  quoter,
		pub:     pub,
		lg:      logger.New("storefront"),
		now:     time.Now,
	}
}
