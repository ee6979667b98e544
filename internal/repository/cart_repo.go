package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CartRepository keeps one cart row per customer: the item list is a single
// JSONB value, mirroring how the storefront persists the cart as one blob.
type CartRepository struct {
	DB *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{DB: db}
}

// GetItems returns the customer's cart. A missing row or a malformed blob
// both read as an empty cart.
func (r *CartRepository) GetItems(ctx context.Context, customerID int64) ([]model.CartItem, error) {
	var raw []byte
	query := `SELECT items FROM carts WHERE customerid=$1`
	err := r.DB.QueryRow(ctx, query, customerID).Scan(&raw)
	if err == pgx.ErrNoRows {
		return []model.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	items := []model.CartItem{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return []model.CartItem{}, nil
	}
	return items, nil
}

func (r *CartRepository) SaveItems(ctx context.Context, customerID int64, items []model.CartItem) error {
	if items == nil {
		items = []model.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO carts (customerid, items, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (customerid)
		DO UPDATE SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at
	`
	_, err = r.DB.Exec(ctx, query, customerID, raw, time.Now())
	return err
}

func (r *CartRepository) Clear(ctx context.Context, customerID int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM carts WHERE customerid=$1`, customerID)
	return err
}
