package rates

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ratesServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		fmt.Fprint(w, `{"success":true,"rates":{"USD":1,"EUR":0.5,"GBP":0.8,"JPY":100}}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetRatesFetchesAndCaches(t *testing.T) {
	hits := 0
	srv := ratesServer(t, &hits)
	svc := NewService(NewMemoryCache(), discardLogger(), Options{APIURL: srv.URL})

	first := svc.GetRates(context.Background())
	second := svc.GetRates(context.Background())

	assert.Equal(t, 1, hits, "second call should be served from cache")
	require.Equal(t, first, second)
	assert.InDelta(t, 0.5, first["EUR"], 0.001)
}

func TestGetRatesFallbackOnAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	svc := NewService(NewMemoryCache(), discardLogger(), Options{APIURL: srv.URL})

	rates := svc.GetRates(context.Background())

	assert.Equal(t, FallbackRates, rates)
}

func TestConvert(t *testing.T) {
	hits := 0
	srv := ratesServer(t, &hits)
	svc := NewService(NewMemoryCache(), discardLogger(), Options{APIURL: srv.URL})
	ctx := context.Background()

	tests := []struct {
		name     string
		amount   float64
		from, to string
		expected float64
	}{
		{"usd to eur", 100, "USD", "EUR", 50},
		{"eur to usd", 50, "EUR", "USD", 100},
		{"eur to gbp pivots through usd", 50, "EUR", "GBP", 80},
		{"same currency", 42.42, "EUR", "EUR", 42.42},
		{"zero amount", 0, "USD", "EUR", 0},
		{"unknown currency returns amount", 10, "XXX", "USD", 10},
		{"rounds to two decimals", 1, "JPY", "USD", 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, svc.Convert(ctx, tt.amount, tt.from, tt.to), 0.001)
		})
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_, err := cache.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, Table{"USD": 1}, 10*time.Millisecond))
	rates, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rates["USD"], 0.001)

	time.Sleep(20 * time.Millisecond)
	_, err = cache.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
