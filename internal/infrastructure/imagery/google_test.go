package imagery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"roadscan/config"
	"roadscan/internal/domain/entity"
)

func newTestProvider(t *testing.T, geocodeURL, streetViewURL string) *GoogleStreetView {
	t.Helper()
	provider, err := NewGoogleStreetView(config.GoogleConfig{
		APIKey:        "test-key",
		StreetViewURL: streetViewURL,
		GeocodeURL:    geocodeURL,
	}, zap.NewNop())
	require.NoError(t, err)
	return provider
}

func TestLocate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		require.Equal(t, "221B Baker Street, London", r.URL.Query().Get("address"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"geometry":{"location":{"lat":51.5238,"lng":-0.1586}}}],"status":"OK"}`))
	}))
	defer srv.Close()

	provider := newTestProvider(t, srv.URL, "")

	loc, err := provider.Locate(context.Background(), "221B Baker Street, London")
	require.NoError(t, err)
	require.InDelta(t, 51.5238, loc.Lat, 1e-6)
	require.InDelta(t, -0.1586, loc.Lng, 1e-6)
}

func TestLocateAddressNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[],"status":"ZERO_RESULTS"}`))
	}))
	defer srv.Close()

	provider := newTestProvider(t, srv.URL, "")

	_, err := provider.Locate(context.Background(), "несуществующий адрес")
	var retrieval *entity.RetrievalError
	require.ErrorAs(t, err, &retrieval)
	require.Contains(t, retrieval.Reason, "address not found")
}

func TestFetchImage(t *testing.T) {
	image := []byte("fake jpeg bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "640x640", q.Get("size"))
		require.Equal(t, "80", q.Get("fov"))
		require.Equal(t, "0", q.Get("heading"))
		require.Equal(t, "0", q.Get("pitch"))
		require.NotEmpty(t, q.Get("location"))
		w.Write(image)
	}))
	defer srv.Close()

	provider := newTestProvider(t, "", srv.URL)

	data, err := provider.FetchImage(context.Background(), entity.Coordinates{Lat: 51.5238, Lng: -0.1586})
	require.NoError(t, err)
	require.Equal(t, image, data)
}

func TestFetchImageNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no imagery", http.StatusNotFound)
	}))
	defer srv.Close()

	provider := newTestProvider(t, "", srv.URL)

	_, err := provider.FetchImage(context.Background(), entity.Coordinates{Lat: 1, Lng: 2})
	var retrieval *entity.RetrievalError
	require.ErrorAs(t, err, &retrieval)
	require.Equal(t, http.StatusNotFound, retrieval.Status)
}

func TestFetchImageNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // сервер уже остановлен, запрос не дойдёт

	provider := newTestProvider(t, "", srv.URL)

	_, err := provider.FetchImage(context.Background(), entity.Coordinates{Lat: 1, Lng: 2})
	var retrieval *entity.RetrievalError
	require.ErrorAs(t, err, &retrieval)
	require.Equal(t, 0, retrieval.Status)
}
