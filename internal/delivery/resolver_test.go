package delivery

import (
	"context"
	"errors"
	"math"
	"testing"

	"whatsmenu/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	coords *domain.Coordinates
	err    error
}

func (s *stubGeocoder) Resolve(context.Context, string) (*domain.Coordinates, error) {
	return s.coords, s.err
}

// pointAtKm returns coordinates exactly km north of the origin, so the
// haversine distance back to {0,0} is km.
func pointAtKm(km float64) *domain.Coordinates {
	return &domain.Coordinates{Lat: km / (earthRadiusKm * math.Pi / 180), Lon: 0}
}

var testTiers = []domain.DeliveryTier{
	{MaxDistanceKm: 1, Price: 0, EtaMinutes: 0},
	{MaxDistanceKm: 5, Price: 6, EtaMinutes: 20},
	{MaxDistanceKm: 10, Price: 10, EtaMinutes: 35},
}

func TestQuoteMidBand(t *testing.T) {
	r := NewResolver(&stubGeocoder{coords: pointAtKm(4.2)})

	q, err := r.Quote(context.Background(), "123 Main St", domain.Coordinates{}, testTiers)
	require.NoError(t, err)
	assert.True(t, q.Deliverable)
	assert.Equal(t, 4.2, q.DistanceKm)
	assert.Equal(t, 6.0, q.Fee)
	assert.Equal(t, 20, q.EtaMinutes)
}

func TestQuoteInclusiveBoundary(t *testing.T) {
	r := NewResolver(&stubGeocoder{coords: pointAtKm(5.0)})

	q, err := r.Quote(context.Background(), "123 Main St", domain.Coordinates{}, testTiers)
	require.NoError(t, err)
	assert.True(t, q.Deliverable)
	assert.Equal(t, 6.0, q.Fee)
	assert.Equal(t, 20, q.EtaMinutes)
}

func TestQuoteOutOfRange(t *testing.T) {
	r := NewResolver(&stubGeocoder{coords: pointAtKm(12)})

	q, err := r.Quote(context.Background(), "far away", domain.Coordinates{}, testTiers)
	require.NoError(t, err)
	assert.False(t, q.Deliverable)
	assert.Equal(t, 12.0, q.DistanceKm)
	assert.Equal(t, 0.0, q.Fee)
}

func TestQuoteEmptyTierTable(t *testing.T) {
	r := NewResolver(&stubGeocoder{coords: pointAtKm(42)})

	q, err := r.Quote(context.Background(), "anywhere", domain.Coordinates{}, nil)
	require.NoError(t, err)
	assert.True(t, q.Deliverable)
	assert.Equal(t, 0.0, q.Fee)
	assert.Equal(t, 0, q.EtaMinutes)
}

func TestQuoteUnresolvableAddress(t *testing.T) {
	r := NewResolver(&stubGeocoder{coords: nil})

	_, err := r.Quote(context.Background(), "gibberish", domain.Coordinates{}, testTiers)
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestQuoteGeocoderFailurePropagates(t *testing.T) {
	boom := errors.New("lookup timed out")
	r := NewResolver(&stubGeocoder{err: boom})

	_, err := r.Quote(context.Background(), "123 Main St", domain.Coordinates{}, testTiers)
	assert.ErrorIs(t, err, boom)
}

func TestMatchTierSortsDefensively(t *testing.T) {
	unsorted := []domain.DeliveryTier{
		{MaxDistanceKm: 10, Price: 10, EtaMinutes: 35},
		{MaxDistanceKm: 1, Price: 0, EtaMinutes: 0},
		{MaxDistanceKm: 5, Price: 6, EtaMinutes: 20},
	}

	tier, ok := MatchTier(unsorted, 4.2)
	require.True(t, ok)
	assert.Equal(t, 6.0, tier.Price)

	// caller's slice stays in its original order
	assert.Equal(t, 10.0, unsorted[0].MaxDistanceKm)
	assert.Equal(t, 1.0, unsorted[1].MaxDistanceKm)
}

func TestMatchTierStableOnEqualThresholds(t *testing.T) {
	tiers := []domain.DeliveryTier{
		{MaxDistanceKm: 5, Price: 6, EtaMinutes: 20},
		{MaxDistanceKm: 5, Price: 8, EtaMinutes: 25},
	}

	tier, ok := MatchTier(tiers, 3)
	require.True(t, ok)
	assert.Equal(t, 6.0, tier.Price)
}
