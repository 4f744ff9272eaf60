package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"

	"github.com/shoppey/cart-scraper/internal/database"
	"github.com/shoppey/cart-scraper/internal/extractor"
	"github.com/shoppey/cart-scraper/internal/models"
	"github.com/shoppey/cart-scraper/internal/rates"
)

type Handlers struct {
	extractor *extractor.Extractor
	db        *database.DB
	rates     *rates.Service
	logger    *slog.Logger
}

func NewHandlers(ext *extractor.Extractor, db *database.DB, rateSvc *rates.Service, logger *slog.Logger) *Handlers {
	return &Handlers{
		extractor: ext,
		db:        db,
		rates:     rateSvc,
		logger:    logger,
	}
}

// ExtractRequest carries a captured page for extraction.
type ExtractRequest struct {
	HTML string `json:"html"`
	URL  string `json:"url"`
}

// Extract parses the submitted HTML and runs the extraction pipeline.
// The response is always the extraction record; failures are encoded in
// its error field, not as HTTP errors.
func (h *Handlers) Extract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.HTML == "" || req.URL == "" {
		h.respondError(w, http.StatusBadRequest, "html and url are required")
		return
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(req.HTML))
	if err != nil {
		h.logger.Error("failed to parse submitted html", "error", err, "url", req.URL)
		h.respondJSON(w, http.StatusOK, &models.ExtractionResult{Error: models.ErrExtractionFailed})
		return
	}

	result := h.extractor.ExtractProductInfo(doc, req.URL)
	h.respondJSON(w, http.StatusOK, result)
}

// AddToCart turns an extraction result into a stored cart item. Partial
// price_undetected results are accepted with placeholder values; any
// other extraction error is rejected.
func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var result models.ExtractionResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !result.IsSuccess() && !result.IsPartial() {
		h.respondError(w, http.StatusUnprocessableEntity, "extraction result is not addable: "+result.Error)
		return
	}
	if result.Title == "" || result.URL == "" {
		h.respondError(w, http.StatusBadRequest, "title and url are required")
		return
	}

	item := models.NewCartItem(&result)
	if err := h.db.AddCartItem(r.Context(), item); err != nil {
		h.logger.Error("failed to add cart item", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to add cart item")
		return
	}

	h.respondJSON(w, http.StatusCreated, item)
}

func (h *Handlers) ListCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.db.GetCartItems(r.Context())
	if err != nil {
		h.logger.Error("failed to list cart items", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list cart items")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	removed, err := h.db.RemoveCartItem(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to remove cart item", "error", err, "id", id)
		h.respondError(w, http.StatusInternalServerError, "failed to remove cart item")
		return
	}
	if !removed {
		h.respondError(w, http.StatusNotFound, "cart item not found")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.db.ClearCart(r.Context()); err != nil {
		h.logger.Error("failed to clear cart", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handlers) CartStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.db.GetCartStats(r.Context())
	if err != nil {
		h.logger.Error("failed to get cart stats", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to get cart stats")
		return
	}
	h.respondJSON(w, http.StatusOK, stats)
}

// ConvertRequest asks for a currency conversion of a single amount.
type ConvertRequest struct {
	Amount float64 `json:"amount"`
	From   string  `json:"fromCurrency"`
	To     string  `json:"toCurrency"`
}

type ConvertResponse struct {
	ConvertedAmount float64 `json:"convertedAmount"`
}

func (h *Handlers) ConvertCurrency(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.From == "" || req.To == "" {
		h.respondError(w, http.StatusBadRequest, "fromCurrency and toCurrency are required")
		return
	}

	converted := h.rates.Convert(r.Context(), req.Amount, req.From, req.To)
	h.respondJSON(w, http.StatusOK, ConvertResponse{ConvertedAmount: converted})
}

func (h *Handlers) ExchangeRates(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"rates": h.rates.GetRates(r.Context())})
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
