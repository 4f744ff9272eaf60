package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoppey/cart-scraper/internal/extractor"
	"github.com/shoppey/cart-scraper/internal/models"
	"github.com/shoppey/cart-scraper/internal/rates"
)

func testHandlers(t *testing.T) *Handlers {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ratesAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"rates":{"USD":1,"EUR":0.5,"GBP":0.8}}`)
	}))
	t.Cleanup(ratesAPI.Close)

	rateSvc := rates.NewService(rates.NewMemoryCache(), logger, rates.Options{APIURL: ratesAPI.URL})
	return NewHandlers(extractor.New(logger), nil, rateSvc, logger)
}

func testRouter(t *testing.T) *chi.Mux {
	t.Helper()
	r := chi.NewRouter()
	testHandlers(t).Routes(r)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestExtractEndpoint(t *testing.T) {
	router := testRouter(t)

	rec := postJSON(t, router, "/api/v1/extract", ExtractRequest{
		HTML: `<html><head><title>Wireless Widget | Acme</title></head>
			<body><h1>Wireless Widget</h1><span class="price">$25.00</span></body></html>`,
		URL: "https://shop.example.com/widget",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var result models.ExtractionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Empty(t, result.Error)
	assert.Equal(t, "Wireless Widget", result.Title)
	assert.InDelta(t, 25.00, result.Price, 0.001)
	assert.Equal(t, "USD", result.Currency)
}

func TestExtractEndpointReportsFailureInBody(t *testing.T) {
	router := testRouter(t)

	rec := postJSON(t, router, "/api/v1/extract", ExtractRequest{
		HTML: `<html><head><title>Business Consulting</title></head>
			<body>We offer expert consulting.</body></html>`,
		URL: "https://acme.example.com/consulting",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var result models.ExtractionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, models.ErrServicePage, result.Error)
}

func TestExtractEndpointValidatesInput(t *testing.T) {
	router := testRouter(t)

	rec := postJSON(t, router, "/api/v1/extract", ExtractRequest{HTML: "", URL: ""})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddToCartRejectsFailedExtractions(t *testing.T) {
	router := testRouter(t)

	rec := postJSON(t, router, "/api/v1/cart", models.ExtractionResult{
		Error: models.ErrNotProductPage,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestConvertCurrencyEndpoint(t *testing.T) {
	router := testRouter(t)

	rec := postJSON(t, router, "/api/v1/currency/convert", ConvertRequest{
		Amount: 100, From: "USD", To: "EUR",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 50.0, resp.ConvertedAmount, 0.001)
}

func TestExchangeRatesEndpoint(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/rates", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Rates rates.Table `json:"rates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 0.5, resp.Rates["EUR"], 0.001)
}
