package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Title keyword sets for the second-pass product-page check. Each keyword
// counts once regardless of how often it appears.
var productIndicators = []string{
	"product", "item", "new", "brand", "size", "color",
	"model", "version", "edition", "pack", "set", "bundle",
	"wireless", "bluetooth", "usb", "hdmi", "4k", "1080p",
}

var serviceIndicators = []string{
	"service", "consulting", "training", "course", "coaching",
	"mentoring", "tutoring", "subscription", "membership",
}

var buyElementSelector = strings.Join([]string{
	`button[class*="buy"]`, `button[class*="cart"]`, `button[class*="purchase"]`,
	`a[class*="buy"]`, `a[class*="cart"]`, ".add-to-cart", "#add-to-cart",
	`input[value*="buy" i]`, `input[value*="cart" i]`,
}, ", ")

// isProductPage is the belt-and-suspenders gate run once a title and
// price are both in hand: it rejects implausible prices, rejects titles
// that score more service-like than product-like, and otherwise accepts
// when the page has any buy-styled control or the title scored at least
// one product keyword.
func (e *Extractor) isProductPage(doc *goquery.Document, title string, price float64) bool {
	if price < 0.01 || price > 1000000 {
		return false
	}

	titleLower := strings.ToLower(title)
	productScore := 0
	serviceScore := 0
	for _, indicator := range productIndicators {
		if strings.Contains(titleLower, indicator) {
			productScore++
		}
	}
	for _, indicator := range serviceIndicators {
		if strings.Contains(titleLower, indicator) {
			serviceScore++
		}
	}
	if serviceScore > productScore {
		return false
	}

	return doc.Find(buyElementSelector).Length() > 0 || productScore > 0
}
