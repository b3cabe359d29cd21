package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"whatsmenu/internal/domain"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrCouponNotFound     = errors.New("coupon not found")
)

type CatalogRepositoryInterface interface {
	GetRestaurant(ctx context.Context, slug string) (domain.Restaurant, error)
	ListCategories(ctx context.Context, restaurantID int) ([]domain.Category, error)
	ListProducts(ctx context.Context, restaurantID int) ([]domain.Product, error)
	GetProduct(ctx context.Context, restaurantID, productID int) (domain.Product, error)
	GetCoupon(ctx context.Context, restaurantID int, code string) (domain.Coupon, error)
	ListDeliveryTiers(ctx context.Context, restaurantID int) ([]domain.DeliveryTier, error)
}

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) CatalogRepositoryInterface {
	return &CatalogRepository{db: db}
}

func (cr *CatalogRepository) GetRestaurant(ctx context.Context, slug string) (domain.Restaurant, error) {
	var r domain.Restaurant
	err := cr.db.QueryRowContext(ctx, `
		SELECT id, slug, name, whatsapp_phone, origin_lat, origin_lon, open_time, close_time
		FROM restaurants WHERE slug = $1
	`, slug).Scan(&r.ID, &r.Slug, &r.Name, &r.WhatsappPhone, &r.Origin.Lat, &r.Origin.Lon, &r.OpenTime, &r.CloseTime)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Restaurant{}, ErrRestaurantNotFound
	}
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return r, nil
}

func (cr *CatalogRepository) ListCategories(ctx context.Context, restaurantID int) ([]domain.Category, error) {
	rows, err := cr.db.QueryContext(ctx, `
		SELECT id, restaurant_id, name, position
		FROM categories WHERE restaurant_id = $1
		ORDER BY position, id
	`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.Position); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (cr *CatalogRepository) ListProducts(ctx context.Context, restaurantID int) ([]domain.Product, error) {
	rows, err := cr.db.QueryContext(ctx, `
		SELECT id, restaurant_id, category_id, name, COALESCE(description, ''), price, COALESCE(image_ref, ''), available
		FROM products WHERE restaurant_id = $1
		ORDER BY category_id, id
	`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.RestaurantID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.ImageRef, &p.Available); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (cr *CatalogRepository) GetProduct(ctx context.Context, restaurantID, productID int) (domain.Product, error) {
	var p domain.Product
	err := cr.db.QueryRowContext(ctx, `
		SELECT id, restaurant_id, category_id, name, COALESCE(description, ''), price, COALESCE(image_ref, ''), available
		FROM products WHERE restaurant_id = $1 AND id = $2
	`, restaurantID, productID).Scan(&p.ID, &p.RestaurantID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.ImageRef, &p.Available)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

func (cr *CatalogRepository) GetCoupon(ctx context.Context, restaurantID int, code string) (domain.Coupon, error) {
	var c domain.Coupon
	err := cr.db.QueryRowContext(ctx, `
		SELECT id, restaurant_id, code, type, value, active, expires_at
		FROM coupons WHERE restaurant_id = $1 AND code = $2
	`, restaurantID, code).Scan(&c.ID, &c.RestaurantID, &c.Code, &c.Type, &c.Value, &c.Active, &c.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coupon{}, ErrCouponNotFound
	}
	if err != nil {
		return domain.Coupon{}, fmt.Errorf("failed to get coupon: %w", err)
	}
	return c, nil
}

func (cr *CatalogRepository) ListDeliveryTiers(ctx context.Context, restaurantID int) ([]domain.DeliveryTier, error) {
	rows, err := cr.db.QueryContext(ctx, `
		SELECT max_distance_km, price, eta_minutes
		FROM delivery_tiers WHERE restaurant_id = $1
		ORDER BY max_distance_km
	`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery tiers: %w", err)
	}
	defer rows.Close()

	var out []domain.DeliveryTier
	for rows.Next() {
		var t domain.DeliveryTier
		if err := rows.Scan(&t.MaxDistanceKm, &t.Price, &t.EtaMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan delivery tier: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
