package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"whatsmenu/internal/cart"
	"whatsmenu/internal/delivery"
	"whatsmenu/internal/domain"
)

func (s *StorefrontService) Menu(ctx context.Context, slug string) (domain.MenuResponse, error) {
	rest, err := s.catalog.GetRestaurant(ctx, slug)
	if err != nil {
		return domain.MenuResponse{}, err
	}

	categories, err := s.catalog.ListCategories(ctx, rest.ID)
	if err != nil {
		return domain.MenuResponse{}, fmt.Errorf("failed to load menu: %w", err)
	}
	products, err := s.catalog.ListProducts(ctx, rest.ID)
	if err != nil {
		return domain.MenuResponse{}, fmt.Errorf("failed to load menu: %w", err)
	}

	byCategory := make(map[int][]domain.MenuProduct)
	for _, p := range products {
		if !p.Available {
			continue
		}
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], domain.MenuProduct{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			ImageRef:    p.ImageRef,
		})
	}

	resp := domain.MenuResponse{
		Restaurant: rest.Name,
		Whatsapp:   rest.WhatsappPhone,
		Open:       rest.IsOpenAt(s.now()),
	}
	for _, c := range categories {
		prods := byCategory[c.ID]
		if len(prods) == 0 {
			continue
		}
		resp.Categories = append(resp.Categories, domain.MenuCategory{Name: c.Name, Products: prods})
	}
	return resp, nil
}

func (s *StorefrontService) DeliveryQuote(ctx context.Context, slug, address string) (domain.QuoteResponse, error) {
	rest, err := s.catalog.GetRestaurant(ctx, slug)
	if err != nil {
		return domain.QuoteResponse{}, err
	}
	tiers, err := s.catalog.ListDeliveryTiers(ctx, rest.ID)
	if err != nil {
		return domain.QuoteResponse{}, fmt.Errorf("failed to load delivery tiers: %w", err)
	}

	quote, err := s.quoter.Quote(ctx, address, rest.Origin, tiers)
	if errors.Is(err, delivery.ErrAddressNotFound) {
		return domain.QuoteResponse{Deliverable: false, Reason: "address_not_found"}, nil
	}
	if err != nil {
		return domain.QuoteResponse{}, err
	}
	if !quote.Deliverable {
		return domain.QuoteResponse{
			Deliverable: false,
			Reason:      "out_of_range",
			DistanceKm:  quote.DistanceKm,
		}, nil
	}
	return domain.QuoteResponse{
		Deliverable: true,
		DistanceKm:  quote.DistanceKm,
		Fee:         quote.Fee,
		EtaMinutes:  quote.EtaMinutes,
	}, nil
}

func (s *StorefrontService) GetCart(ctx context.Context, sessionID string) domain.CartResponse {
	return s.cartResponse(ctx, sessionID)
}

func (s *StorefrontService) AddItem(ctx context.Context, sessionID string, req domain.AddItemRequest) (domain.CartResponse, error) {
	rest, err := s.catalog.GetRestaurant(ctx, req.Restaurant)
	if err != nil {
		return domain.CartResponse{}, err
	}
	product, err := s.catalog.GetProduct(ctx, rest.ID, req.ProductID)
	if err != nil {
		return domain.CartResponse{}, err
	}
	if !product.Available {
		return domain.CartResponse{}, validationf("product %q is not available", product.Name)
	}

	// price snapshot is taken here, not trusted from the client
	s.carts.Add(ctx, sessionID, cart.Item{
		ProductID: strconv.Itoa(product.ID),
		Name:      product.Name,
		UnitPrice: product.Price,
		ImageRef:  product.ImageRef,
	}, req.Quantity)

	return s.cartResponse(ctx, sessionID), nil
}

func (s *StorefrontService) RemoveItem(ctx context.Context, sessionID, productID string) domain.CartResponse {
	s.carts.Remove(ctx, sessionID, productID)
	return s.cartResponse(ctx, sessionID)
}

func (s *StorefrontService) ClearCart(ctx context.Context, sessionID string) {
	s.carts.Clear(ctx, sessionID)
}

func (s *StorefrontService) cartResponse(ctx context.Context, sessionID string) domain.CartResponse {
	lines := s.carts.Lines(ctx, sessionID)
	totals := s.carts.Totals(ctx, sessionID)
	return domain.CartResponse{
		SessionID:     sessionID,
		Lines:         lines,
		TotalQuantity: totals.Quantity,
		TotalPrice:    totals.Price,
	}
}
