package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PromoRepository struct {
	DB *pgxpool.Pool
}

func NewPromoRepository(db *pgxpool.Pool) *PromoRepository {
	return &PromoRepository{DB: db}
}

const promoColumns = `code, type, value, minorder, maxuses, usedcount, startdate, expirydate, status, created_at`

// GetByCode looks a code up case-insensitively. Returns (nil, nil) when the
// code doesn't exist; validation owns the user-facing message.
func (r *PromoRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	var p model.PromoCode
	query := `SELECT ` + promoColumns + ` FROM promocodes WHERE code=$1`
	err := r.DB.QueryRow(ctx, query, strings.ToUpper(strings.TrimSpace(code))).
		Scan(&p.Code, &p.Type, &p.Value, &p.MinOrder, &p.MaxUses, &p.UsedCount,
			&p.StartDate, &p.ExpiryDate, &p.Status, &p.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromoRepository) List(ctx context.Context) ([]model.PromoCode, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+promoColumns+` FROM promocodes ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.PromoCode{}
	for rows.Next() {
		var p model.PromoCode
		if err := rows.Scan(&p.Code, &p.Type, &p.Value, &p.MinOrder, &p.MaxUses, &p.UsedCount,
			&p.StartDate, &p.ExpiryDate, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PromoRepository) Create(ctx context.Context, p *model.PromoCode) error {
	query := `
		INSERT INTO promocodes (code, type, value, minorder, maxuses, usedcount, startdate, expirydate, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.Exec(ctx, query, p.Code, p.Type, p.Value, p.MinOrder, p.MaxUses,
		p.UsedCount, p.StartDate, p.ExpiryDate, p.Status, time.Now())
	return err
}

func (r *PromoRepository) Update(ctx context.Context, p *model.PromoCode) error {
	query := `
		UPDATE promocodes
		SET type=$1, value=$2, minorder=$3, maxuses=$4, startdate=$5, expirydate=$6, status=$7
		WHERE code=$8
	`
	tag, err := r.DB.Exec(ctx, query, p.Type, p.Value, p.MinOrder, p.MaxUses,
		p.StartDate, p.ExpiryDate, p.Status, p.Code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("promo code not found")
	}
	return nil
}

func (r *PromoRepository) Delete(ctx context.Context, code string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM promocodes WHERE code=$1`, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("promo code not found")
	}
	return nil
}

// Redeem bumps usedcount by one, guarded so concurrent checkouts can't push
// an exhausted code past its cap. maxuses=0 means unlimited.
func (r *PromoRepository) Redeem(ctx context.Context, code string) error {
	query := `
		UPDATE promocodes
		SET usedcount = usedcount + 1
		WHERE code=$1 AND status='active' AND (maxuses = 0 OR usedcount < maxuses)
	`
	tag, err := r.DB.Exec(ctx, query, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("promo code can no longer be used")
	}
	return nil
}

// Unredeem gives one use back after a checkout that failed past the redeem.
func (r *PromoRepository) Unredeem(ctx context.Context, code string) error {
	query := `UPDATE promocodes SET usedcount = GREATEST(usedcount - 1, 0) WHERE code=$1`
	_, err := r.DB.Exec(ctx, query, strings.ToUpper(strings.TrimSpace(code)))
	return err
}
