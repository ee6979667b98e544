package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderRepository is append-only: orders are inserted once at checkout and
// never deleted; only the status column moves afterwards.
type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

const orderColumns = `orderid, customerid, customeremail, orderdate, items, paymentmethod, delivery, totals, promocode, status, created_at, updated_at`

func scanOrder(row interface {
	Scan(dest ...any) error
}) (*model.Order, error) {
	var o model.Order
	var items, delivery, totals []byte
	if err := row.Scan(&o.OrderID, &o.CustomerID, &o.Delivery.Location.Email, &o.Date,
		&items, &o.PaymentMethod, &delivery, &totals, &o.PromoCode, &o.Status,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	// snapshots are JSON blobs; a malformed one reads as empty, not as an error
	_ = json.Unmarshal(items, &o.Items)
	_ = json.Unmarshal(delivery, &o.Delivery)
	_ = json.Unmarshal(totals, &o.Totals)
	if o.Items == nil {
		o.Items = []model.CartItem{}
	}
	return &o, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *model.Order) error {
	items, _ := json.Marshal(o.Items)
	delivery, _ := json.Marshal(o.Delivery)
	totals, _ := json.Marshal(o.Totals)
	query := `
		INSERT INTO orders (orderid, customerid, customeremail, orderdate, items, paymentmethod, delivery, totals, promocode, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.DB.Exec(ctx, query, o.OrderID, o.CustomerID, o.Delivery.Location.Email,
		o.Date, items, o.PaymentMethod, delivery, totals, o.PromoCode, o.Status, time.Now())
	return err
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE orderid=$1`
	o, err := scanOrder(r.DB.QueryRow(ctx, query, orderID))
	if err != nil {
		return nil, errors.New("order not found")
	}
	return o, nil
}

func (r *OrderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *o)
	}
	return list, rows.Err()
}

// List returns all orders, newest first.
func (r *OrderRepository) List(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY orderdate DESC`)
}

func (r *OrderRepository) ListByStatus(ctx context.Context, status string) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE status=$1 ORDER BY orderdate DESC`, status)
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE customerid=$1 ORDER BY orderdate DESC`, customerID)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID, status string) error {
	query := `UPDATE orders SET status=$1, updated_at=$2 WHERE orderid=$3`
	tag, err := r.DB.Exec(ctx, query, status, time.Now(), orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("order not found")
	}
	return nil
}

// Stats recomputes the admin dashboard numbers on demand; nothing is
// incrementally maintained.
func (r *OrderRepository) Stats(ctx context.Context) (*model.OrderStats, error) {
	var s model.OrderStats
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status IN ('pending', 'confirmed')),
		       COUNT(*) FILTER (WHERE status = 'delivered'),
		       COALESCE(SUM((totals->>'total')::DOUBLE PRECISION) FILTER (WHERE status <> 'cancelled'), 0),
		       COUNT(DISTINCT customeremail)
		FROM orders
	`
	if err := r.DB.QueryRow(ctx, query).Scan(&s.TotalOrders, &s.PendingOrders,
		&s.CompletedOrders, &s.TotalRevenue, &s.UniqueCustomers); err != nil {
		return nil, err
	}
	return &s, nil
}
