package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shoppey/cart-scraper/internal/models"
)

// priceSelectors is the first stage of the price cascade. Every matching
// element per selector is tried, selector order is priority order.
var priceSelectors = []string{
	".a-price .a-offscreen",
	".a-price-whole",
	".a-color-price",
	"#priceblock_ourprice",
	"#priceblock_dealprice",
	"#priceblock_saleprice",
	".notranslate",
	".u-flL",
	".vi-price",
	"#prcIsum",
	"#mm-saleDscPrc",
	".u-flL .notranslate",
	".vi-VR-cvipPrice",
	".u-flL .vi-price",
	`[data-testid="x-price-primary"]`,
	`[data-automation-id="product-price"]`,
	".prod-PriceHero",
	".price-characteristic",
	".price",
	".pricing",
	".kaina",
	".product-price",
	".item-price",
	".sale-price",
	".current-price",
	"[data-price]",
	`[data-testid*="price"]`,
	`[class*="price"]`,
	`[class*="pricing"]`,
	`[class*="kaina"]`,
	".product__price",
	".price--current",
	".price-current",
	".price-value",
	".price-amount",
	".cost",
	".amount",
	".u-flL .notranslate:first-child",
	".vi-binPrce .notranslate",
	".u-dspn .notranslate",
}

// buyButtonSelectors locate "buy/cart/purchase" controls for the ancestor
// proximity stage of the cascade.
var buyButtonSelectors = []string{
	`button[class*="buy"]`,
	`button[class*="cart"]`,
	`button[class*="purchase"]`,
	`button[class*="add-to-cart"]`,
	`a[class*="buy"]`,
	`a[class*="cart"]`,
	`input[type="submit"][value*="buy" i]`,
	`input[type="submit"][value*="cart" i]`,
	".buy-button",
	".cart-button",
	".add-to-cart",
	".purchase-button",
	"#buy-button",
	"#add-to-cart",
}

// pagePriceRe finds currency-symbol-prefixed numeric tokens anywhere in
// the page text for the last-resort scan.
var pagePriceRe = regexp.MustCompile(`[$€£]\s?\d[\d.,]*`)

// extractPrice runs the price cascade: selector list, eBay override,
// buy-button proximity, whole-page regex scan, then structured data. Each
// stage is tried only when the prior one yields nothing.
func (e *Extractor) extractPrice(doc *goquery.Document, pageURL string) *models.PriceInfo {
	for _, selector := range priceSelectors {
		var found *models.PriceInfo
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := s.Text()
			if text == "" {
				text, _ = s.Attr("data-price")
			}
			if info := ParsePriceString(text); info != nil {
				found = info
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}

	if strings.Contains(hostname(pageURL), "ebay") {
		if info := e.extractEbayPrice(doc); info != nil {
			return info
		}
	}

	if info := e.priceNearBuyButton(doc); info != nil {
		return info
	}

	for _, match := range pagePriceRe.FindAllString(bodyText(doc), -1) {
		info := ParsePriceString(match)
		if info != nil && info.Amount > 0 && info.Amount < 100000 {
			return info
		}
	}

	if info := e.priceFromStructuredData(doc); info != nil {
		return info
	}

	return nil
}

// priceNearBuyButton walks up to 3 ancestor levels of every buy-styled
// control and scans the descendants (excluding the control itself) for
// the first parseable price.
func (e *Extractor) priceNearBuyButton(doc *goquery.Document) *models.PriceInfo {
	for _, buttonSelector := range buyButtonSelectors {
		var found *models.PriceInfo
		doc.Find(buttonSelector).EachWithBreak(func(_ int, button *goquery.Selection) bool {
			buttonNode := button.Get(0)
			parent := button.Parent()
			for level := 0; level < 3 && parent.Length() > 0; level++ {
				parent.Find("*").EachWithBreak(func(_ int, elem *goquery.Selection) bool {
					if elem.Get(0) == buttonNode {
						return true
					}
					if info := ParsePriceString(elem.Text()); info != nil {
						found = info
						return false
					}
					return true
				})
				if found != nil {
					return false
				}
				parent = parent.Parent()
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// ebayPriceSelectors and the prefix strip handle eBay's habit of writing
// prices as "US $24.99" or "GBP 12.50".
var ebayPriceSelectors = []string{
	"#prcIsum",
	".notranslate.u-flL",
	".vi-price .notranslate",
	"#mm-saleDscPrc",
	".u-flL .notranslate:first-child",
	`[data-testid="x-price-primary"] .notranslate`,
	".vi-binPrce .notranslate",
}

var (
	ebayCurrencyPrefixRe = regexp.MustCompile(`(?i)^(US\s*|GBP\s*|EUR\s*|CAD\s*|AUD\s*)`)
	ebayPriceHintRe      = regexp.MustCompile(`[$£€]\s*\d|^\d`)
)

func (e *Extractor) extractEbayPrice(doc *goquery.Document) *models.PriceInfo {
	for _, selector := range ebayPriceSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := ebayCurrencyPrefixRe.ReplaceAllString(strings.TrimSpace(sel.Text()), "")
		if info := ParsePriceString(text); info != nil {
			return info
		}
	}

	var found *models.PriceInfo
	doc.Find(".u-flL, .vi-price, .notranslate").EachWithBreak(func(_ int, container *goquery.Selection) bool {
		text := strings.TrimSpace(container.Text())
		if !ebayPriceHintRe.MatchString(text) {
			return true
		}
		if info := ParsePriceString(text); info != nil {
			found = info
			return false
		}
		return true
	})
	return found
}
