package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// serviceURLSegments are unconditional rejects: a page whose URL carries
// one of these path segments is never treated as a product page.
var serviceURLSegments = []string{
	"/services",
	"/consulting",
	"/courses",
	"/training",
	"/coaching",
	"/mentoring",
}

// serviceKeywords mark service, subscription and digital-good pages. A
// single keyword is weak evidence on its own, so each hit is checked
// against the product-context keywords below before rejecting.
var serviceKeywords = []string{
	"service", "consulting", "consultation", "freelance", "gig",
	"tutoring", "coaching", "mentoring", "training", "course",
	"workshop", "webinar", "subscription", "membership",
	"software as a service", "saas", "platform", "app",
	"digital product", "download", "ebook", "guide",
	"template", "theme", "plugin", "extension",
}

// productContextKeywords act as a global override: their presence
// anywhere on the page neutralizes every service keyword hit. Ambiguous
// pages are deliberately treated as products.
var productContextKeywords = []string{"product", "item", "buy", "purchase", "cart", "shop"}

// isServicePage classifies a page as a non-product (service/content) page
// before any extraction runs. Single pass with early return: the first
// service keyword found without product context anywhere on the page
// short-circuits the scan.
func (e *Extractor) isServicePage(doc *goquery.Document, pageURL string) bool {
	pageText := strings.ToLower(bodyText(doc))
	title := strings.ToLower(pageTitle(doc))
	lowerURL := strings.ToLower(pageURL)

	for _, segment := range serviceURLSegments {
		if strings.Contains(lowerURL, segment) {
			return true
		}
	}

	for _, keyword := range serviceKeywords {
		if !strings.Contains(title, keyword) && !strings.Contains(pageText, keyword) {
			continue
		}
		hasProductContext := false
		for _, productKeyword := range productContextKeywords {
			if strings.Contains(title, productKeyword) || strings.Contains(pageText, productKeyword) {
				hasProductContext = true
				break
			}
		}
		if !hasProductContext {
			return true
		}
	}
	return false
}
