package delivery

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"whatsmenu/internal/domain"
)

// ErrAddressNotFound marks an address the geocoder could not resolve.
// Callers must not substitute a zero distance for it.
var ErrAddressNotFound = errors.New("address could not be resolved")

// Quote is the outcome of a delivery-fee lookup. Deliverable is false when
// the computed distance exceeds every configured tier; callers must branch
// on it before showing a price.
type Quote struct {
	DistanceKm  float64
	Fee         float64
	EtaMinutes  int
	Deliverable bool
}

type Resolver struct {
	geo Geocoder
}

func NewResolver(geo Geocoder) *Resolver { return &Resolver{geo: geo} }

// Quote geocodes the address, measures the great-circle distance from the
// restaurant origin and matches the tier table. Distances are rounded to
// one decimal before matching so boundary bands behave consistently.
//
// An empty tier table means the restaurant has not priced delivery bands
// and is treated as free/undetermined delivery, not as an error.
func (r *Resolver) Quote(ctx context.Context, address string, origin domain.Coordinates, tiers []domain.DeliveryTier) (Quote, error) {
	coords, err := r.geo.Resolve(ctx, address)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to geocode address: %w", err)
	}
	if coords == nil {
		return Quote{}, ErrAddressNotFound
	}

	dist := math.Round(HaversineKm(origin, *coords)*10) / 10

	if len(tiers) == 0 {
		return Quote{DistanceKm: dist, Deliverable: true}, nil
	}

	tier, ok := MatchTier(tiers, dist)
	if !ok {
		return Quote{DistanceKm: dist, Deliverable: false}, nil
	}
	return Quote{
		DistanceKm:  dist,
		Fee:         tier.Price,
		EtaMinutes:  tier.EtaMinutes,
		Deliverable: true,
	}, nil
}

// MatchTier selects the first tier whose MaxDistanceKm covers the distance
// (inclusive upper bound). The input is sorted on a copy so callers holding
// the original slice never see it reordered.
func MatchTier(tiers []domain.DeliveryTier, distanceKm float64) (domain.DeliveryTier, bool) {
	sorted := make([]domain.DeliveryTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MaxDistanceKm < sorted[j].MaxDistanceKm
	})

	for _, t := range sorted {
		if t.MaxDistanceKm >= distanceKm {
			return t, true
		}
	}
	return domain.DeliveryTier{}, false
}
