package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"whatsmenu/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeocoderAgainst(url string) *HTTPGeocoder {
	return NewHTTPGeocoder(config.GeocoderConfig{BaseURL: url, UserAgent: "test"})
}

func TestHTTPGeocoderResolves(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test", r.Header.Get("User-Agent"))
		assert.Equal(t, "1 Main St", r.URL.Query().Get("q"))
		w.Write([]byte(`[{"lat":"-23.5505","lon":"-46.6333"}]`))
	}))
	defer srv.Close()

	coords, err := newGeocoderAgainst(srv.URL).Resolve(context.Background(), "1 Main St")
	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.Equal(t, -23.5505, coords.Lat)
	assert.Equal(t, -46.6333, coords.Lon)
}

func TestHTTPGeocoderNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	coords, err := newGeocoderAgainst(srv.URL).Resolve(context.Background(), "gibberish address")
	require.NoError(t, err)
	assert.Nil(t, coords)
}

func TestHTTPGeocoderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newGeocoderAgainst(srv.URL).Resolve(context.Background(), "1 Main St")
	assert.Error(t, err)
}

func TestHTTPGeocoderBlankAddress(t *testing.T) {
	coords, err := newGeocoderAgainst("http://unused.invalid").Resolve(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, coords)
}
