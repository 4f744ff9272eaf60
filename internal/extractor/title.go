package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// titleSelectors is tried in order; the first selector whose element has
// non-empty text wins. The ordering is part of the heuristic: platform
// specific classes first, generic headings later, <title> last.
var titleSelectors = []string{
	`[data-cy="title-recipe"]`,
	".product-title",
	".product-name",
	".item-title",
	".product-detail-title",
	".product__title",
	".product-title-text",
	".a-size-large.product-title-word-break",
	".productTitle",
	"#productTitle",
	"#title",
	"h1",
	".a-size-large.a-spacing-none",
	"#itemTitle",
	".it-ttl",
	`[data-automation-id="product-title"]`,
	".prod-ProductTitle",
	"h1:first-of-type",
	"title",
}

var (
	whitespaceRe     = regexp.MustCompile(`\s+`)
	leadingBulletRe  = regexp.MustCompile(`^\s*[-•*]\s*`)
	trailingBulletRe = regexp.MustCompile(`\s*[-•*]\s*$`)
)

func (e *Extractor) extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text != "" {
			return cleanTitle(text)
		}
	}
	if t := pageTitle(doc); t != "" {
		return cleanTitle(t)
	}
	return ""
}

// cleanTitle collapses whitespace runs into single spaces and strips
// leading/trailing bullet characters.
func cleanTitle(title string) string {
	title = whitespaceRe.ReplaceAllString(title, " ")
	title = leadingBulletRe.ReplaceAllString(title, "")
	title = trailingBulletRe.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}
