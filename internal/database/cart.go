package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shoppey/cart-scraper/internal/models"
)

const cartSchema = `
CREATE TABLE IF NOT EXISTS cart_items (
	id           UUID PRIMARY KEY,
	title        TEXT NOT NULL,
	price        NUMERIC(12,2) NOT NULL DEFAULT 0,
	currency     TEXT NOT NULL DEFAULT 'USD',
	image        TEXT,
	store_name   TEXT,
	stock_status TEXT NOT NULL DEFAULT 'unknown',
	url          TEXT NOT NULL,
	added_at     TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// EnsureSchema creates the cart table when it does not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, cartSchema); err != nil {
		return fmt.Errorf("failed to ensure cart schema: %w", err)
	}
	return nil
}

// CartStats summarizes the cart contents.
type CartStats struct {
	ItemCount int                `json:"itemCount"`
	Items     []*models.CartItem `json:"items"`
}

// AddCartItem inserts a new cart item, assigning it an id and timestamp.
func (db *DB) AddCartItem(ctx context.Context, item *models.CartItem) error {
	item.ID = uuid.New().String()
	item.AddedAt = time.Now()
	if item.Currency == "" {
		item.Currency = "USD"
	}
	if item.StockStatus == "" {
		item.StockStatus = models.StockUnknown
	}

	query := `
		INSERT INTO cart_items (id, title, price, currency, image, store_name, stock_status, url, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := db.pool.Exec(ctx, query,
		item.ID, item.Title, item.Price, item.Currency,
		nullIfEmpty(item.Image), nullIfEmpty(item.StoreName),
		string(item.StockStatus), item.URL, item.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cart item: %w", err)
	}

	return nil
}

// GetCartItems returns all cart items, newest first.
func (db *DB) GetCartItems(ctx context.Context) ([]*models.CartItem, error) {
	query := `
		SELECT id, title, price, currency, image, store_name, stock_status, url, added_at
		FROM cart_items
		ORDER BY added_at DESC`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	items := make([]*models.CartItem, 0)
	for rows.Next() {
		item := &models.CartItem{}
		var image, storeName sql.NullString
		var status string
		err := rows.Scan(
			&item.ID, &item.Title, &item.Price, &item.Currency,
			&image, &storeName, &status, &item.URL, &item.AddedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		item.Image = image.String
		item.StoreName = storeName.String
		item.StockStatus = models.StockStatus(status)
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetCartItem retrieves a single cart item by id. Returns nil when the id
// is unknown.
func (db *DB) GetCartItem(ctx context.Context, id string) (*models.CartItem, error) {
	query := `
		SELECT id, title, price, currency, image, store_name, stock_status, url, added_at
		FROM cart_items
		WHERE id = $1`

	item := &models.CartItem{}
	var image, storeName sql.NullString
	var status string
	err := db.pool.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.Title, &item.Price, &item.Currency,
		&image, &storeName, &status, &item.URL, &item.AddedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}

	item.Image = image.String
	item.StoreName = storeName.String
	item.StockStatus = models.StockStatus(status)
	return item, nil
}

// RemoveCartItem deletes a cart item. The boolean reports whether the id
// existed.
func (db *DB) RemoveCartItem(ctx context.Context, id string) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to remove cart item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ClearCart removes every item from the cart.
func (db *DB) ClearCart(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM cart_items`); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// GetCartStats returns the item count together with the items themselves.
func (db *DB) GetCartStats(ctx context.Context) (*CartStats, error) {
	items, err := db.GetCartItems(ctx)
	if err != nil {
		return nil, err
	}
	return &CartStats{ItemCount: len(items), Items: items}, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
