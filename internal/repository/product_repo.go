package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

const productColumns = `id, name, category, price, images, description, status, organic, details, shelflife, features, created_at, updated_at`

func scanProduct(row interface {
	Scan(dest ...any) error
}) (*model.Product, error) {
	var p model.Product
	var images, details, features []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &images, &p.Description,
		&p.Status, &p.Organic, &details, &p.ShelfLife, &features, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	// malformed blobs degrade to empty defaults instead of failing the read
	_ = json.Unmarshal(images, &p.Images)
	_ = json.Unmarshal(details, &p.Details)
	_ = json.Unmarshal(features, &p.Features)
	return &p, nil
}

// List returns products, optionally restricted to active ones.
func (r *ProductRepository) List(ctx context.Context, onlyActive bool) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM farmproducts ORDER BY created_at, id`
	if onlyActive {
		query = `SELECT ` + productColumns + ` FROM farmproducts WHERE status='active' ORDER BY created_at, id`
	}
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM farmproducts WHERE id=$1`
	p, err := scanProduct(r.DB.QueryRow(ctx, query, id))
	if err != nil {
		return nil, errors.New("product not found")
	}
	return p, nil
}

func (r *ProductRepository) ExistsID(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM farmproducts WHERE id=$1)`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) error {
	images, _ := json.Marshal(p.Images)
	details, _ := json.Marshal(p.Details)
	features, _ := json.Marshal(p.Features)
	query := `
		INSERT INTO farmproducts (id, name, category, price, images, description, status, organic, details, shelflife, features, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.DB.Exec(ctx, query, p.ID, p.Name, p.Category, p.Price, images, p.Description,
		p.Status, p.Organic, details, p.ShelfLife, features, time.Now())
	return err
}

func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	images, _ := json.Marshal(p.Images)
	details, _ := json.Marshal(p.Details)
	features, _ := json.Marshal(p.Features)
	query := `
		UPDATE farmproducts
		SET name=$1, category=$2, price=$3, images=$4, description=$5, status=$6,
		    organic=$7, details=$8, shelflife=$9, features=$10, updated_at=$11
		WHERE id=$12
	`
	tag, err := r.DB.Exec(ctx, query, p.Name, p.Category, p.Price, images, p.Description,
		p.Status, p.Organic, details, p.ShelfLife, features, time.Now(), p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("product not found")
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM farmproducts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("product not found")
	}
	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM farmproducts`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
