package extractor

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// productImageSelectors cover common gallery containers. Icon and logo
// URLs are rejected so a site chrome image never wins over the product
// photo.
var productImageSelectors = []string{
	".product-image img",
	".product-photo img",
	"#product-image img",
	".main-image img",
	`[data-testid="primary-image"]`,
	".zoom img",
}

// minProductImageSize is the side length below which an image is assumed
// to be decoration rather than a product photo.
const minProductImageSize = 150

// extractProductImage finds the most likely product image: Open Graph
// meta, Twitter card meta, the platform selectors, then the largest image
// on the page by declared dimensions. There is no layout engine here, so
// width/height attributes stand in for rendered size. Returns "" when
// nothing qualifies.
func (e *Extractor) extractProductImage(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok && content != "" {
		return content
	}
	if content, ok := doc.Find(`meta[name="twitter:image"]`).Attr("content"); ok && content != "" {
		return content
	}

	for _, selector := range productImageSelectors {
		src, ok := doc.Find(selector).First().Attr("src")
		if ok && strings.Contains(src, "http") &&
			!strings.Contains(src, "icon") && !strings.Contains(src, "logo") {
			return src
		}
	}

	largest := ""
	maxArea := 0
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok || !strings.Contains(src, "http") {
			return
		}
		width := attrInt(img, "width")
		height := attrInt(img, "height")
		if width <= minProductImageSize || height <= minProductImageSize {
			return
		}
		if area := width * height; area > maxArea {
			maxArea = area
			largest = src
		}
	})
	return largest
}

func attrInt(s *goquery.Selection, name string) int {
	value, ok := s.Attr(name)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(value), "px"))
	if err != nil {
		return 0
	}
	return n
}
