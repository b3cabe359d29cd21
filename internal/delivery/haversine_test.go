package delivery

import (
	"testing"

	"whatsmenu/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestHaversineZeroForSamePoint(t *testing.T) {
	p := domain.Coordinates{Lat: -23.5505, Lon: -46.6333}
	assert.Equal(t, 0.0, HaversineKm(p, p))
}

func TestHaversineIsSymmetric(t *testing.T) {
	a := domain.Coordinates{Lat: 48.8566, Lon: 2.3522}
	b := domain.Coordinates{Lat: 51.5074, Lon: -0.1278}
	assert.InDelta(t, HaversineKm(a, b), HaversineKm(b, a), 1e-9)
}

func TestHaversineKnownDistance(t *testing.T) {
	paris := domain.Coordinates{Lat: 48.8566, Lon: 2.3522}
	london := domain.Coordinates{Lat: 51.5074, Lon: -0.1278}
	// ~344 km between the city centers
	assert.InDelta(t, 344, HaversineKm(paris, london), 3)
}
