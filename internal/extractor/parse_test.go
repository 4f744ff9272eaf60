package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		amount   float64
		currency string
		wantNil  bool
	}{
		{
			name:     "dollar symbol with decimals",
			input:    "$12.50",
			amount:   12.50,
			currency: "USD",
		},
		{
			name:     "dollar with thousands separator",
			input:    "$1,299.99",
			amount:   1299.99,
			currency: "USD",
		},
		{
			name:     "euro with european separators",
			input:    "€1.234,56",
			amount:   1234.56,
			currency: "EUR",
		},
		{
			name:     "pound symbol",
			input:    "£49.99",
			amount:   49.99,
			currency: "GBP",
		},
		{
			name:     "symbol wins over trailing code",
			input:    "$12.00 USD",
			amount:   12.00,
			currency: "USD",
		},
		{
			name:     "three letter code lowercase",
			input:    "eur 89.90",
			amount:   89.90,
			currency: "EUR",
		},
		{
			name:     "code with whitespace runs",
			input:    "CAD \t 199.00",
			amount:   199.00,
			currency: "CAD",
		},
		{
			name:    "zero amount rejected",
			input:   "$0",
			wantNil: true,
		},
		{
			name:    "amount above upper bound rejected",
			input:   "$20000000",
			wantNil: true,
		},
		{
			name:    "ungrouped digit run not truncated to a prefix",
			input:   "$12345",
			wantNil: true,
		},
		{
			name:     "grouped amount followed by text still parses",
			input:    "$1,299.99 incl. tax",
			amount:   1299.99,
			currency: "USD",
		},
		{
			name:    "no currency marker",
			input:   "25.00",
			wantNil: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantNil: true,
		},
		{
			name:    "plain text",
			input:   "free shipping",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParsePriceString(tt.input)

			if tt.wantNil {
				assert.Nil(t, info)
				return
			}
			require.NotNil(t, info)
			assert.InDelta(t, tt.amount, info.Amount, 0.001)
			assert.Equal(t, tt.currency, info.Currency)
		})
	}
}

func TestParsePriceStringCommaWithoutDot(t *testing.T) {
	// Inherited ambiguity: a lone comma is always read as a thousands
	// separator, so "1,234" parses as 1234 even in comma-decimal locales.
	info := ParsePriceString("$1,234")
	require.NotNil(t, info)
	assert.InDelta(t, 1234.0, info.Amount, 0.001)
}
