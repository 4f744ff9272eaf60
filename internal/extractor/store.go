package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractStoreName resolves the store behind the page: Open Graph site
// name, then the last "|"- or "-"-delimited segment of the page title,
// then the first DNS label of the hostname with its first letter
// capitalized. Returns "" only when even the URL gives nothing.
func (e *Extractor) extractStoreName(doc *goquery.Document, pageURL string) string {
	if content, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok && content != "" {
		return content
	}

	if title := pageTitle(doc); title != "" {
		if parts := splitTrimmed(title, "|"); len(parts) > 1 {
			return parts[len(parts)-1]
		}
		if parts := splitTrimmed(title, "-"); len(parts) > 1 {
			return parts[len(parts)-1]
		}
	}

	host := hostname(pageURL)
	if host == "" {
		return ""
	}
	host = strings.TrimPrefix(host, "www.")
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return ""
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

func splitTrimmed(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
