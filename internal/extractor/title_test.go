package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTitle(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "platform class beats h1",
			html:     `<html><body><h1>Generic Heading</h1><div class="product-title">Solid Oak Desk</div></body></html>`,
			expected: "Solid Oak Desk",
		},
		{
			name:     "amazon id selector",
			html:     `<html><body><span id="productTitle">  Trail Running Shoes  </span></body></html>`,
			expected: "Trail Running Shoes",
		},
		{
			name:     "h1 fallback",
			html:     `<html><body><h1>Great Widget</h1></body></html>`,
			expected: "Great Widget",
		},
		{
			name:     "page title fallback",
			html:     `<html><head><title>Ceramic Mug - Acme Store</title></head><body><p>no headings</p></body></html>`,
			expected: "Ceramic Mug - Acme Store",
		},
		{
			name:     "whitespace collapsed and bullets stripped",
			html:     "<html><body><h1>  - Wool\n\tBlanket • </h1></body></html>",
			expected: "Wool Blanket",
		},
		{
			name:     "no title anywhere",
			html:     `<html><body><p>nothing here</p></body></html>`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.extractTitle(docFromHTML(t, tt.html)))
		})
	}
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "USB Hub", cleanTitle("\n  *  USB   Hub  -  "))
	assert.Equal(t, "A B C", cleanTitle("A\tB\r\nC"))
}
