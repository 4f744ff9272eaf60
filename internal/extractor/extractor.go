package extractor

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shoppey/cart-scraper/internal/models"
)

// Extractor pulls product information out of arbitrary e-commerce pages
// using ordered heuristic cascades. It holds no per-page state; a single
// instance is safe for repeated use.
type Extractor struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Extractor {
	return &Extractor{
		logger: logger.With("component", "extractor"),
	}
}

// ExtractProductInfo runs the full extraction pipeline against a parsed
// document and its page URL. The decision order is terminal at the first
// applicable branch: service-page rejection, title, price, product-page
// validation, then the auxiliary fields. Any panic inside the pipeline is
// converted into an extraction_failed result rather than escaping.
func (e *Extractor) ExtractProductInfo(doc *goquery.Document, pageURL string) (result *models.ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("extraction panicked", "url", pageURL, "panic", r)
			result = &models.ExtractionResult{Error: models.ErrExtractionFailed}
		}
	}()

	if e.isServicePage(doc, pageURL) {
		e.logger.Debug("detected service/non-product page, skipping extraction", "url", pageURL)
		return &models.ExtractionResult{Error: models.ErrServicePage}
	}

	title := e.extractTitle(doc)
	if title == "" {
		e.logger.Debug("could not extract product title", "url", pageURL)
		return &models.ExtractionResult{Error: models.ErrNoTitle}
	}

	price := e.extractPrice(doc, pageURL)
	if price == nil {
		e.logger.Debug("could not extract product price", "url", pageURL)
		return &models.ExtractionResult{
			Title:     strings.TrimSpace(title),
			Image:     e.extractProductImage(doc),
			StoreName: e.extractStoreName(doc, pageURL),
			URL:       pageURL,
			Error:     models.ErrPriceUndetected,
		}
	}

	if !e.isProductPage(doc, title, price.Amount) {
		e.logger.Debug("page does not appear to be a viable product page", "url", pageURL)
		return &models.ExtractionResult{Error: models.ErrNotProductPage}
	}

	return &models.ExtractionResult{
		Title:       strings.TrimSpace(title),
		Price:       price.Amount,
		Currency:    price.Currency,
		Image:       e.extractProductImage(doc),
		StoreName:   e.extractStoreName(doc, pageURL),
		StockStatus: e.extractStockStatus(doc, pageURL),
		URL:         pageURL,
	}
}

// pageTitle returns the document <title> text.
func pageTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("head title").First().Text())
}

// bodyText returns the full visible text of the page body.
func bodyText(doc *goquery.Document) string {
	body := doc.Find("body")
	if body.Length() > 0 {
		return body.Text()
	}
	return doc.Text()
}

// hostname extracts the host part of a page URL without the port, or ""
// when the URL does not parse.
func hostname(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
