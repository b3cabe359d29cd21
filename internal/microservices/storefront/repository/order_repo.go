package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type OrderRecord struct {
	Number        string
	RestaurantID  int
	CustomerName  string
	CustomerPhone string
	OrderType     string
	DeliveryAddr  *string
	DeliveryFee   float64
	Discount      float64
	TotalAmount   float64
	Status        string
	Items         []OrderItemRecord
}

type OrderItemRecord struct {
	Name     string
	Quantity int
	Price    float64
}

type OrderRepositoryInterface interface {
	CountOrdersSince(ctx context.Context, since time.Time) (int, error)
	AddOrder(ctx context.Context, order OrderRecord) error
}

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepositoryInterface {
	return &OrderRepository{db: db}
}

func (or *OrderRepository) CountOrdersSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := or.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE created_at >= $1`, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func (or *OrderRepository) AddOrder(ctx context.Context, order OrderRecord) error {
	tx, err := or.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// 1. Insert order
	var orderID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders
		    (order_number, restaurant_id, customer_name, customer_phone, order_type,
		     delivery_address, delivery_fee, discount, total_amount, status, created_at, updated_at)
		VALUES
		    ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id
	`,
		order.Number,
		order.RestaurantID,
		order.CustomerName,
		order.CustomerPhone,
		order.OrderType,
		order.DeliveryAddr,
		order.DeliveryFee,
		order.Discount,
		order.TotalAmount,
		order.Status,
	).Scan(&orderID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	// 2. Insert order items
	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, name, quantity, price, created_at)
			VALUES ($1, $2, $3, $4, NOW())
		`, orderID, item.Name, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("failed to insert order item %s: %w", item.Name, err)
		}
	}

	// Commit
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
