package service

import (
	"context"
	"testing"

	"whatsmenu/internal/delivery"
	"whatsmenu/internal/domain"
	"whatsmenu/internal/microservices/storefront/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuGroupsAvailableProducts(t *testing.T) {
	f := newFixture()

	menu, err := f.svc.Menu(context.Background(), "bella")
	require.NoError(t, err)

	assert.Equal(t, "Pizzeria Bella", menu.Restaurant)
	assert.True(t, menu.Open)
	require.Len(t, menu.Categories, 2)

	// Calabresa is unavailable and stays off the menu
	require.Len(t, menu.Categories[0].Products, 1)
	assert.Equal(t, "Margherita", menu.Categories[0].Products[0].Name)
	assert.Equal(t, "Drinks", menu.Categories[1].Name)
}

func TestMenuUnknownRestaurant(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Menu(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrRestaurantNotFound)
}

func TestAddItemSnapshotsServerPrice(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.AddItem(context.Background(), "sess", domain.AddItemRequest{
		Restaurant: "bella", ProductID: 100, Quantity: 2,
	})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 12.5, resp.Lines[0].UnitPrice)
	assert.Equal(t, 25.0, resp.TotalPrice)
}

func TestAddItemUnavailableProduct(t *testing.T) {
	f := newFixture()

	_, err := f.svc.AddItem(context.Background(), "sess", domain.AddItemRequest{
		Restaurant: "bella", ProductID: 101, Quantity: 1,
	})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAddItemUnknownProduct(t *testing.T) {
	f := newFixture()

	_, err := f.svc.AddItem(context.Background(), "sess", domain.AddItemRequest{
		Restaurant: "bella", ProductID: 999, Quantity: 1,
	})
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestRemoveItemRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.AddItem(ctx, "sess", domain.AddItemRequest{Restaurant: "bella", ProductID: 100, Quantity: 2})
	require.NoError(t, err)

	resp := f.svc.RemoveItem(ctx, "sess", "100")
	assert.Equal(t, 1, resp.TotalQuantity)

	resp = f.svc.RemoveItem(ctx, "sess", "100")
	assert.Empty(t, resp.Lines)
}

func TestDeliveryQuoteOutcomes(t *testing.T) {
	t.Run("quoted", func(t *testing.T) {
		f := newFixture()
		resp, err := f.svc.DeliveryQuote(context.Background(), "bella", "Av. Paulista 1000")
		require.NoError(t, err)
		assert.True(t, resp.Deliverable)
		assert.Equal(t, 6.0, resp.Fee)
		assert.Equal(t, 20, resp.EtaMinutes)
	})

	t.Run("out of range", func(t *testing.T) {
		f := newFixture()
		f.quoter.quote = delivery.Quote{DistanceKm: 12, Deliverable: false}
		resp, err := f.svc.DeliveryQuote(context.Background(), "bella", "far away")
		require.NoError(t, err)
		assert.False(t, resp.Deliverable)
		assert.Equal(t, "out_of_range", resp.Reason)
		assert.Equal(t, 12.0, resp.DistanceKm)
	})

	t.Run("address not found", func(t *testing.T) {
		f := newFixture()
		f.quoter.err = delivery.ErrAddressNotFound
		resp, err := f.svc.DeliveryQuote(context.Background(), "bella", "gibberish")
		require.NoError(t, err)
		assert.False(t, resp.Deliverable)
		assert.Equal(t, "address_not_found", resp.Reason)
	})
}

