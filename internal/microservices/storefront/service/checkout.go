package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"whatsmenu/internal/connections/rabbitmq"
	"whatsmenu/internal/delivery"
	"whatsmenu/internal/domain"
	"whatsmenu/internal/microservices/storefront/repository"
	"whatsmenu/internal/whatsapp"

	"github.com/rabbitmq/amqp091-go"
)

// Checkout turns the session cart into a persisted order and hands the
// formatted summary to the WhatsApp channel. The cart is cleared only
// after the handoff succeeds.
func (s *StorefrontService) Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResponse, error) {
	// 1. Validation guards
	if req.SessionID == "" {
		return domain.CheckoutResponse{}, validationf("session id is required")
	}
	if req.Customer.Name == "" {
		return domain.CheckoutResponse{}, validationf("customer name is required")
	}
	if req.Customer.Phone == "" {
		return domain.CheckoutResponse{}, validationf("customer phone is required")
	}
	if req.OrderType != "delivery" && req.OrderType != "takeout" {
		return domain.CheckoutResponse{}, validationf("invalid order type %q", req.OrderType)
	}

	rest, err := s.catalog.GetRestaurant(ctx, req.Restaurant)
	if err != nil {
		return domain.CheckoutResponse{}, err
	}
	if !rest.IsOpenAt(s.now()) {
		return domain.CheckoutResponse{}, validationf("%s is closed right now", rest.Name)
	}

	lines := s.carts.Lines(ctx, req.SessionID)
	if len(lines) == 0 {
		return domain.CheckoutResponse{}, validationf("cart is empty")
	}

	// 2. Totals
	subtotal := 0.0
	for _, l := range lines {
		subtotal += float64(l.Quantity) * l.UnitPrice
	}

	discount, err := s.couponDiscount(ctx, rest.ID, req.CouponCode, subtotal)
	if err != nil {
		return domain.CheckoutResponse{}, err
	}

	// 3. Delivery fee
	var quote delivery.Quote
	var deliveryAddr *string
	if req.OrderType == "delivery" {
		if req.Customer.Address == "" {
			return domain.CheckoutResponse{}, validationf("delivery address is required")
		}
		tiers, err := s.catalog.ListDeliveryTiers(ctx, rest.ID)
		if err != nil {
			return domain.CheckoutResponse{}, fmt.Errorf("failed to load delivery tiers: %w", err)
		}
		quote, err = s.quoter.Quote(ctx, req.Customer.Address, rest.Origin, tiers)
		if err != nil {
			return domain.CheckoutResponse{}, err
		}
		if !quote.Deliverable {
			return domain.CheckoutResponse{}, fmt.Errorf("%w: %.1f km", ErrNotDeliverable, quote.DistanceKm)
		}
		addr := req.Customer.Address
		deliveryAddr = &addr
	}

	total := subtotal - discount + quote.Fee

	// 4. Order number (ORD_YYYYMMDD_NNN, per-day sequence)
	today := s.now().UTC()
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	seq, err := s.orders.CountOrdersSince(ctx, midnight)
	if err != nil {
		return domain.CheckoutResponse{}, fmt.Errorf("failed to get order count: %w", err)
	}
	orderNumber := fmt.Sprintf("ORD_%s_%03d", today.Format("20060102"), seq+1)

	// 5. Persist the order
	record := repository.OrderRecord{
		Number:        orderNumber,
		RestaurantID:  rest.ID,
		CustomerName:  req.Customer.Name,
		CustomerPhone: req.Customer.Phone,
		OrderType:     req.OrderType,
		DeliveryAddr:  deliveryAddr,
		DeliveryFee:   quote.Fee,
		Discount:      discount,
		TotalAmount:   total,
		Status:        "received",
	}
	items := make([]domain.OrderItemMsg, 0, len(lines))
	for _, l := range lines {
		record.Items = append(record.Items, repository.OrderItemRecord{
			Name: l.Name, Quantity: l.Quantity, Price: l.UnitPrice,
		})
		items = append(items, domain.OrderItemMsg{Name: l.Name, Quantity: l.Quantity, Price: l.UnitPrice})
	}
	if err := s.orders.AddOrder(ctx, record); err != nil {
		return domain.CheckoutResponse{}, fmt.Errorf("failed to save order: %w", err)
	}

	// 6. Hand off to the WhatsApp channel
	text := whatsapp.BuildOrderText(rest.Name, orderNumber, items, req.Customer, subtotal, discount, quote.Fee, quote.EtaMinutes)
	msg := domain.OrderMessage{
		OrderNumber:     orderNumber,
		Restaurant:      rest.Name,
		WhatsappPhone:   rest.WhatsappPhone,
		CustomerName:    req.Customer.Name,
		CustomerPhone:   req.Customer.Phone,
		OrderType:       req.OrderType,
		DeliveryAddress: deliveryAddr,
		Items:           items,
		Subtotal:        subtotal,
		Discount:        discount,
		DeliveryFee:     quote.Fee,
		TotalAmount:     total,
		Text:            text,
		Priority:        priorityFor(total),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return domain.CheckoutResponse{}, fmt.Errorf("failed to marshal order message: %w", err)
	}

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	routingKey := "orders." + req.OrderType
	if err := s.pub.Publish(pctx, rabbitmq.OrdersExchange, routingKey, body,
		amqp091.Table{"x-source": "storefront"}, "application/json", true); err != nil {
		return domain.CheckoutResponse{}, fmt.Errorf("failed to publish order: %w", err)
	}

	// 7. Cart is done for this session
	s.carts.Clear(ctx, req.SessionID)

	s.lg.Info("order_submitted", map[string]any{
		"order_number": orderNumber,
		"restaurant":   rest.Slug,
		"order_type":   req.OrderType,
		"total":        total,
	})

	return domain.CheckoutResponse{
		OrderNumber:  orderNumber,
		Status:       "received",
		Subtotal:     subtotal,
		Discount:     discount,
		DeliveryFee:  quote.Fee,
		EtaMinutes:   quote.EtaMinutes,
		TotalAmount:  total,
		WhatsappLink: whatsapp.Link(rest.WhatsappPhone, text),
	}, nil
}

func (s *StorefrontService) couponDiscount(ctx context.Context, restaurantID int, code string, subtotal float64) (float64, error) {
	if code == "" {
		return 0, nil
	}
	coupon, err := s.catalog.GetCoupon(ctx, restaurantID, code)
	if errors.Is(err, repository.ErrCouponNotFound) {
		return 0, validationf("unknown coupon code %q", code)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up coupon: %w", err)
	}
	if !coupon.Active {
		return 0, validationf("coupon %q is no longer active", code)
	}
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(s.now()) {
		return 0, validationf("coupon %q has expired", code)
	}

	var discount float64
	switch coupon.Type {
	case "percent":
		discount = subtotal * coupon.Value / 100
	case "fixed":
		discount = coupon.Value
	default:
		return 0, validationf("coupon %q has unsupported type %q", code, coupon.Type)
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount, nil
}

func priorityFor(total float64) int {
	switch {
	case total >= 100:
		return 10
	case total >= 50:
		return 5
	default:
		return 1
	}
}
