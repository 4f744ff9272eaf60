package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shoppey/cart-scraper/internal/models"
)

// stockSelectors are scanned for availability keywords; the first element
// whose text matches either keyword set decides the status.
var stockSelectors = []string{
	".a-color-success",
	".availability",
	".u-flL",
	".notranslate",
	".vi-qtyS",
	".u-flL .notranslate",
	`[data-testid="out-of-stock"]`,
	".prod-ProductCTA--outOfStock",
	".stock-status",
	".in-stock",
	".out-of-stock",
	"[data-stock-status]",
}

var outOfStockPhrases = []string{"out of stock", "unavailable", "sold out", "discontinued"}
var inStockPhrases = []string{"in stock", "available", "ready to ship", "ships within"}

// extractStockStatus determines availability: the eBay-specific path when
// the host matches, then the keyword selector scan, then structured data.
func (e *Extractor) extractStockStatus(doc *goquery.Document, pageURL string) models.StockStatus {
	if strings.Contains(hostname(pageURL), "ebay") {
		if status := e.extractEbayStock(doc); status != models.StockUnknown {
			return status
		}
	}

	status := models.StockUnknown
	for _, selector := range stockSelectors {
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.ToLower(s.Text())
			if containsAny(text, outOfStockPhrases) {
				status = models.StockOutOfStock
				return false
			}
			if containsAny(text, inStockPhrases) {
				status = models.StockInStock
				return false
			}
			return true
		})
		if status != models.StockUnknown {
			return status
		}
	}

	return e.stockFromStructuredData(doc)
}

var ebayQtyRe = regexp.MustCompile(`\d+\s*(available|left)`)

// extractEbayStock reads eBay's listing chrome: sold-out banners first,
// then quantity hints, then the presence of buy controls.
func (e *Extractor) extractEbayStock(doc *goquery.Document) models.StockStatus {
	soldOut := models.StockUnknown
	for _, selector := range []string{".notranslate", ".u-flL", ".vi-qtyS", ".u-dspn"} {
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.ToLower(s.Text())
			if strings.Contains(text, "sold out") || strings.Contains(text, "out of stock") ||
				strings.Contains(text, "unavailable") || strings.Contains(text, "ended") {
				soldOut = models.StockOutOfStock
				return false
			}
			return true
		})
		if soldOut != models.StockUnknown {
			return soldOut
		}
	}

	qty := doc.Find(".vi-qtyS, .u-flL .notranslate").First()
	if qty.Length() > 0 {
		qtyText := strings.ToLower(qty.Text())
		if strings.Contains(qtyText, "available") || strings.Contains(qtyText, "left") ||
			ebayQtyRe.MatchString(qtyText) {
			return models.StockInStock
		}
	}

	if doc.Find(`[data-testid*="buy"], .vi-VR-btnWdth, .u-flL input[type="submit"]`).Length() > 0 {
		return models.StockInStock
	}
	return models.StockUnknown
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
