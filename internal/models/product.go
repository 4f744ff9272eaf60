package models

import (
	"time"
)

// StockStatus describes the availability of a product at extraction time.
type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockOutOfStock StockStatus = "out_of_stock"
	StockUnknown    StockStatus = "unknown"
)

// Extraction error codes. ErrPriceUndetected is a partial success: the
// result still carries title, image, store name and URL, and the caller
// adds the item with a placeholder price.
const (
	ErrServicePage      = "service_page"
	ErrNoTitle          = "no_title"
	ErrPriceUndetected  = "price_undetected"
	ErrNotProductPage   = "not_product_page"
	ErrExtractionFailed = "extraction_failed"
)

// PriceInfo is a parsed price: a positive amount and an ISO-4217-like
// currency code.
type PriceInfo struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// ExtractionResult is the flat record an extraction produces. A non-empty
// Error field signals a failure or the price_undetected partial variant;
// an empty Error field signals a full success.
type ExtractionResult struct {
	Title       string      `json:"title,omitempty"`
	Price       float64     `json:"price,omitempty"`
	Currency    string      `json:"currency,omitempty"`
	Image       string      `json:"image,omitempty"`
	StoreName   string      `json:"storeName,omitempty"`
	StockStatus StockStatus `json:"stockStatus,omitempty"`
	URL         string      `json:"url,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// IsSuccess reports whether the extraction produced a full product record.
func (r *ExtractionResult) IsSuccess() bool {
	return r.Error == ""
}

// IsPartial reports whether the extraction produced usable data without a
// price.
func (r *ExtractionResult) IsPartial() bool {
	return r.Error == ErrPriceUndetected
}

// CartItem is a product stored in the persistent cart.
type CartItem struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Price       float64     `json:"price"`
	Currency    string      `json:"currency"`
	Image       string      `json:"image,omitempty"`
	StoreName   string      `json:"storeName,omitempty"`
	StockStatus StockStatus `json:"stockStatus"`
	URL         string      `json:"url"`
	AddedAt     time.Time   `json:"addedAt"`
}

// NewCartItem builds a cart item from an extraction result. Partial
// results get a zero price, USD currency and unknown stock status, so the
// cart can still hold the product while flagging the missing price.
func NewCartItem(r *ExtractionResult) *CartItem {
	item := &CartItem{
		Title:       r.Title,
		Price:       r.Price,
		Currency:    r.Currency,
		Image:       r.Image,
		StoreName:   r.StoreName,
		StockStatus: r.StockStatus,
		URL:         r.URL,
	}
	if r.IsPartial() {
		item.Price = 0
		item.Currency = "USD"
		item.StockStatus = StockUnknown
	}
	if item.StockStatus == "" {
		item.StockStatus = StockUnknown
	}
	return item
}
