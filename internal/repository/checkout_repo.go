package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CheckoutRepository persists the per-customer wizard state between steps.
type CheckoutRepository struct {
	DB *pgxpool.Pool
}

func NewCheckoutRepository(db *pgxpool.Pool) *CheckoutRepository {
	return &CheckoutRepository{DB: db}
}

// Get returns the customer's checkout state; absent or unreadable state
// starts the wizard over at the payment step.
func (r *CheckoutRepository) Get(ctx context.Context, customerID int64) (*model.CheckoutState, error) {
	var raw []byte
	err := r.DB.QueryRow(ctx, `SELECT state FROM checkoutstate WHERE customerid=$1`, customerID).Scan(&raw)
	if err == pgx.ErrNoRows {
		return &model.CheckoutState{Step: model.StepPayment}, nil
	}
	if err != nil {
		return nil, err
	}

	var st model.CheckoutState
	if err := json.Unmarshal(raw, &st); err != nil || st.Step < model.StepPayment {
		return &model.CheckoutState{Step: model.StepPayment}, nil
	}
	return &st, nil
}

func (r *CheckoutRepository) Save(ctx context.Context, customerID int64, st *model.CheckoutState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO checkoutstate (customerid, state, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (customerid)
		DO UPDATE SET state = EXCLUDED.state, updated_at = EXCLUDED.updated_at
	`
	_, err = r.DB.Exec(ctx, query, customerID, raw, time.Now())
	return err
}

func (r *CheckoutRepository) Clear(ctx context.Context, customerID int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM checkoutstate WHERE customerid=$1`, customerID)
	return err
}
