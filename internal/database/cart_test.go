package database

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoppey/cart-scraper/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}

	db, err := NewFromURL(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.EnsureSchema(context.Background()))
	require.NoError(t, db.ClearCart(context.Background()))
	return db
}

func TestCartAddAndList(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	item := &models.CartItem{
		Title:       "Wireless Widget",
		Price:       25.00,
		Currency:    "USD",
		Image:       "https://cdn.example.com/widget.jpg",
		StoreName:   "Acme",
		StockStatus: models.StockInStock,
		URL:         "https://shop.example.com/widget",
	}
	require.NoError(t, db.AddCartItem(ctx, item))
	assert.NotEmpty(t, item.ID)
	assert.False(t, item.AddedAt.IsZero())

	items, err := db.GetCartItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Wireless Widget", items[0].Title)
	assert.Equal(t, models.StockInStock, items[0].StockStatus)

	stats, err := db.GetCartStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ItemCount)
}

func TestCartAddPartialResultDefaults(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	result := &models.ExtractionResult{
		Title: "Handmade Vase",
		URL:   "https://shop.example.com/vase",
		Error: models.ErrPriceUndetected,
	}
	item := models.NewCartItem(result)
	require.NoError(t, db.AddCartItem(ctx, item))

	stored, err := db.GetCartItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Zero(t, stored.Price)
	assert.Equal(t, "USD", stored.Currency)
	assert.Equal(t, models.StockUnknown, stored.StockStatus)
}

func TestCartRemove(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	item := &models.CartItem{Title: "Widget", URL: "https://shop.example.com/widget"}
	require.NoError(t, db.AddCartItem(ctx, item))

	removed, err := db.RemoveCartItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = db.RemoveCartItem(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCartClear(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		require.NoError(t, db.AddCartItem(ctx, &models.CartItem{Title: title, URL: "https://shop.example.com/x"}))
	}
	require.NoError(t, db.ClearCart(ctx))

	stats, err := db.GetCartStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.ItemCount)
}
