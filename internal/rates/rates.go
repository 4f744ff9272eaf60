// Package rates converts cart prices between currencies using a cached
// exchange-rate table with USD as the pivot.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"
)

// Table maps currency codes to their rate against USD.
type Table map[string]float64

// Currencies is the fixed set the price parser understands; the rate
// table covers exactly these.
const Currencies = "USD,EUR,GBP,CAD,AUD,JPY,CHF,SEK,NOK,DKK,PLN,CZK,HUF"

const (
	DefaultAPIURL   = "https://api.exchangerate.host/latest"
	DefaultCacheTTL = time.Hour
)

// FallbackRates is used whenever the API and the cache both fail.
var FallbackRates = Table{
	"USD": 1,
	"EUR": 0.85,
	"GBP": 0.75,
	"CAD": 1.35,
	"AUD": 1.50,
	"JPY": 110,
	"CHF": 0.92,
	"SEK": 10.5,
	"NOK": 10.8,
	"DKK": 6.8,
	"PLN": 4.2,
	"CZK": 23.5,
	"HUF": 365,
}

// Service fetches, caches and applies exchange rates.
type Service struct {
	httpClient *http.Client
	cache      Cache
	apiURL     string
	cacheTTL   time.Duration
	logger     *slog.Logger
}

type Options struct {
	APIURL   string
	CacheTTL time.Duration
	Timeout  time.Duration
}

func NewService(cache Cache, logger *slog.Logger, opts Options) *Service {
	if opts.APIURL == "" {
		opts.APIURL = DefaultAPIURL
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Service{
		httpClient: &http.Client{Timeout: opts.Timeout},
		cache:      cache,
		apiURL:     opts.APIURL,
		cacheTTL:   opts.CacheTTL,
		logger:     logger.With("component", "rates"),
	}
}

type apiResponse struct {
	Success bool  `json:"success"`
	Rates   Table `json:"rates"`
}

// fetchRates pulls a fresh table from the exchange-rate API.
func (s *Service) fetchRates(ctx context.Context) (Table, error) {
	url := fmt.Sprintf("%s?base=USD&symbols=%s", s.apiURL, Currencies)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode rate API response: %w", err)
	}
	if !body.Success || len(body.Rates) == 0 {
		return nil, fmt.Errorf("invalid rate API response")
	}

	return body.Rates, nil
}

// GetRates returns the cached table when it is still fresh, otherwise
// fetches and re-caches. Falls back to the static table when both fail;
// it never returns an error to the caller.
func (s *Service) GetRates(ctx context.Context) Table {
	if rates, err := s.cache.Get(ctx); err == nil {
		return rates
	}

	rates, err := s.fetchRates(ctx)
	if err != nil {
		s.logger.Warn("exchange rate fetch failed, using fallback rates", "error", err)
		return FallbackRates
	}

	if err := s.cache.Set(ctx, rates, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache exchange rates", "error", err)
	}
	return rates
}

// Convert translates an amount between two currencies by pivoting through
// USD, rounded to 2 decimal places. Zero amounts and same-currency
// conversions return immediately; an unknown currency leaves the amount
// unchanged.
func (s *Service) Convert(ctx context.Context, amount float64, from, to string) float64 {
	if amount == 0 {
		return 0
	}
	if from == to {
		return amount
	}

	rates := s.GetRates(ctx)
	fromRate, okFrom := rates[from]
	toRate, okTo := rates[to]
	if (from != "USD" && (!okFrom || fromRate == 0)) || (to != "USD" && !okTo) {
		s.logger.Warn("unknown currency in conversion", "from", from, "to", to)
		return amount
	}

	inUSD := amount
	if from != "USD" {
		inUSD = amount / fromRate
	}
	converted := inUSD
	if to != "USD" {
		converted = inUSD * toRate
	}
	return math.Round(converted*100) / 100
}
