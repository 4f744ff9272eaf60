package extractor

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shoppey/cart-scraper/internal/models"
)

// productOffers walks every application/ld+json script tag and yields the
// offers of each Product entry. Malformed JSON in one tag is skipped; the
// scan continues with the next tag.
func productOffers(doc *goquery.Document, visit func(offer map[string]any) bool) {
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, script *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(script.Text()), &data); err != nil {
			return true
		}
		entries, ok := data.([]any)
		if !ok {
			entries = []any{data}
		}
		for _, entry := range entries {
			product, ok := entry.(map[string]any)
			if !ok || product["@type"] != "Product" || product["offers"] == nil {
				continue
			}
			offers, ok := product["offers"].([]any)
			if !ok {
				offers = []any{product["offers"]}
			}
			for _, o := range offers {
				offer, ok := o.(map[string]any)
				if !ok {
					continue
				}
				if !visit(offer) {
					return false
				}
			}
		}
		return true
	})
}

// priceFromStructuredData returns the first positive offers[].price with
// a priceCurrency from the page's ld+json product entries.
func (e *Extractor) priceFromStructuredData(doc *goquery.Document) *models.PriceInfo {
	var found *models.PriceInfo
	productOffers(doc, func(offer map[string]any) bool {
		currency, _ := offer["priceCurrency"].(string)
		if currency == "" {
			return true
		}
		amount, ok := offerPrice(offer["price"])
		if !ok || amount <= 0 {
			return true
		}
		found = &models.PriceInfo{Amount: amount, Currency: currency}
		return false
	})
	return found
}

// stockFromStructuredData maps offers[].availability onto a stock status
// via case-sensitive substring checks on the schema.org value.
func (e *Extractor) stockFromStructuredData(doc *goquery.Document) models.StockStatus {
	status := models.StockUnknown
	productOffers(doc, func(offer map[string]any) bool {
		availability, _ := offer["availability"].(string)
		if availability == "" {
			return true
		}
		if strings.Contains(availability, "InStock") || strings.Contains(availability, "In stock") {
			status = models.StockInStock
			return false
		}
		if strings.Contains(availability, "OutOfStock") || strings.Contains(availability, "Out of stock") {
			status = models.StockOutOfStock
			return false
		}
		return true
	})
	return status
}

// offerPrice accepts the number and string forms schema.org prices show
// up in.
func offerPrice(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case string:
		amount, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, false
		}
		return amount, true
	default:
		return 0, false
	}
}
