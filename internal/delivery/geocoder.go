package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"whatsmenu/internal/config"
	"whatsmenu/internal/domain"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
)

// Geocoder resolves a free-text address to coordinates. A nil result with
// a nil error means the address could not be resolved; transport failures
// come back as errors. No retries here — retry policy belongs to callers.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (*domain.Coordinates, error)
}

// HTTPGeocoder queries a Nominatim-style public lookup. The endpoint is
// unauthenticated and has no SLA, so calls go through a circuit breaker,
// and concurrent lookups for the same address are collapsed.
type HTTPGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker[*domain.Coordinates]
	sfg       singleflight.Group
}

func NewHTTPGeocoder(cfg config.GeocoderConfig) *HTTPGeocoder {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "whatsmenu/1.0"
	}
	breaker := gobreaker.NewCircuitBreaker[*domain.Coordinates](gobreaker.Settings{
		Name:    "geocoder",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &HTTPGeocoder{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
		breaker:   breaker,
	}
}

func (g *HTTPGeocoder) Resolve(ctx context.Context, address string) (*domain.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, nil
	}

	v, err, _ := g.sfg.Do(address, func() (any, error) {
		return g.breaker.Execute(func() (*domain.Coordinates, error) {
			return g.lookup(ctx, address)
		})
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Coordinates), nil
}

func (g *HTTPGeocoder) lookup(ctx context.Context, address string) (*domain.Coordinates, error) {
	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", g.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoder request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	// Nominatim encodes lat/lon as strings.
	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocoder response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder returned bad latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder returned bad longitude %q: %w", results[0].Lon, err)
	}
	return &domain.Coordinates{Lat: lat, Lon: lon}, nil
}
