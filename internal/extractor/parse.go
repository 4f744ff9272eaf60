package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shoppey/cart-scraper/internal/models"
)

// maxParsedPrice bounds what the parser accepts as a plausible amount.
// Both bounds are exclusive.
const maxParsedPrice = 10000000

type pricePattern struct {
	re       *regexp.Regexp
	currency string
}

// pricePatterns pairs a currency marker with a numeric capture group.
// Symbol patterns come before 3-letter-code patterns, so "$12.00 USD"
// resolves via the "$" pattern. Order is priority order.
var pricePatterns = []pricePattern{
	{regexp.MustCompile(`\$\s*([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{1,2})?)`), "USD"},
	{regexp.MustCompile(`€\s*([0-9]{1,3}(?:[.,][0-9]{3})*(?:[.,][0-9]{1,2})?)`), "EUR"},
	{regexp.MustCompile(`£\s*([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{1,2})?)`), "GBP"},
	{regexp.MustCompile(`(?i)USD\s*([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{1,2})?)`), "USD"},
	{regexp.MustCompile(`(?i)EUR\s*([0-9]{1,3}(?:[.,][0-9]{3})*(?:[.,][0-9]{1,2})?)`), "EUR"},
	{regexp.MustCompile(`(?i)GBP\s*([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{1,2})?)`), "GBP"},
	{regexp.MustCompile(`(?i)CAD\s*([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{1,2})?)`), "CAD"},
	{regexp.MustCompile(`(?i)AUD\s*([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{1,2})?)`), "AUD"},
	{regexp.MustCompile(`(?i)JPY\s*([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{1,2})?)`), "JPY"},
	{regexp.MustCompile(`(?i)CHF\s*([0-9]{1,3}(?:[.,][0-9]{3})*(?:[.,][0-9]{1,2})?)`), "CHF"},
	{regexp.MustCompile(`(?i)SEK\s*([0-9]{1,3}(?:[.,][0-9]{3})*(?:[.,][0-9]{1,2})?)`), "SEK"},
	{regexp.MustCompile(`(?i)NOK\s*([0-9]{1,3}(?:[.,][0-9]{3})*(?:[.,][0-9]{1,2})?)`), "NOK"},
	{regexp.MustCompile(`(?i)DKK\s*([0-9]{1,3}(?:[.,][0-9]{3})*(?:[.,][0-9]{1,2})?)`), "DKK"},
	{regexp.MustCompile(`(?i)PLN\s*([0-9]{1,3}(?:[.,][0-9]{3})*(?:[.,][0-9]{1,2})?)`), "PLN"},
	{regexp.MustCompile(`(?i)CZK\s*([0-9]{1,3}(?:[.,][0-9]{3})*(?:[.,][0-9]{1,2})?)`), "CZK"},
	{regexp.MustCompile(`(?i)HUF\s*([0-9]{1,3}(?:[.,][0-9]{3})*(?:[.,][0-9]{1,2})?)`), "HUF"},
}

// ParsePriceString normalizes heterogeneous price text into an amount and
// currency code. The first matching pattern wins. When the captured
// number carries both "." and ",", everything before the last comma is
// treated as thousands-grouped and the comma as the decimal separator;
// this is a heuristic for European formats, not locale detection, and a
// price like "1,234" with no dot is always read as 1234. Returns a nil
// result when nothing parses or the amount falls outside
// (0, 10,000,000).
func ParsePriceString(priceString string) *models.PriceInfo {
	clean := strings.TrimSpace(whitespaceRe.ReplaceAllString(priceString, " "))
	if clean == "" {
		return nil
	}

	for _, p := range pricePatterns {
		m := p.re.FindStringSubmatchIndex(clean)
		if m == nil || m[2] < 0 || m[2] == m[3] {
			continue
		}
		// A digit right after the capture means the grouping pattern
		// stopped partway through a longer run; the captured amount
		// would be a truncation, not the price.
		if m[3] < len(clean) && clean[m[3]] >= '0' && clean[m[3]] <= '9' {
			continue
		}
		amountStr := normalizeAmount(clean[m[2]:m[3]])
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			continue
		}
		if amount > 0 && amount < maxParsedPrice {
			return &models.PriceInfo{Amount: amount, Currency: p.currency}
		}
	}
	return nil
}

// normalizeAmount resolves the separator ambiguity of a captured number.
// "1.234,56" becomes "1234.56" (comma as decimal separator); in every
// other shape commas are thousands grouping and get stripped.
func normalizeAmount(s string) string {
	if strings.Contains(s, ".") && strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) == 2 && !strings.Contains(parts[1], ".") {
			return strings.ReplaceAll(parts[0], ".", "") + "." + parts[1]
		}
	}
	return strings.ReplaceAll(s, ",", "")
}
