package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"
)

type ProductStore interface {
	List(ctx context.Context, onlyActive bool) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	ExistsID(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type ProductService struct {
	Repo ProductStore
}

func NewProductService(r ProductStore) *ProductService {
	return &ProductService{Repo: r}
}

var slugRegex = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateProductID turns a display name into a url-safe slug id.
func GenerateProductID(name string) string {
	slug := slugRegex.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func (s *ProductService) List(ctx context.Context, onlyActive bool) ([]model.Product, error) {
	return s.Repo.List(ctx, onlyActive)
}

func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *ProductService) Count(ctx context.Context) (int, error) {
	return s.Repo.Count(ctx)
}

// Create validates the record, assigns a unique slug id and stores it.
func (s *ProductService) Create(ctx context.Context, p *model.Product) (string, error) {
	if err := validateProduct(p); err != nil {
		return "", err
	}

	base := GenerateProductID(p.Name)
	if base == "" {
		return "", errors.New("name is required")
	}
	id := base
	for i := 2; ; i++ {
		exists, err := s.Repo.ExistsID(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
		id = fmt.Sprintf("%s-%d", base, i)
	}
	p.ID = id

	if err := s.Repo.Create(ctx, p); err != nil {
		return "", err
	}
	return id, nil
}

func (s *ProductService) Update(ctx context.Context, p *model.Product) error {
	if p.ID == "" {
		return errors.New("product id is required")
	}
	if err := validateProduct(p); err != nil {
		return err
	}
	return s.Repo.Update(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func validateProduct(p *model.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if !model.ValidCategory(p.Category) {
		return errors.New("invalid category")
	}
	if p.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if len(p.Images) == 0 {
		return errors.New("at least one product image is required")
	}
	if p.Status == "" {
		p.Status = model.ProductActive
	}
	if p.Status != model.ProductActive && p.Status != model.ProductInactive {
		return errors.New("invalid product status")
	}
	return nil
}

// SeedDefaults installs the starter catalog on an empty table, so a fresh
// install has something to sell.
func (s *ProductService) SeedDefaults(ctx context.Context) error {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	defaults := []model.Product{
		{
			ID:          "fresh-apples",
			Name:        "Fresh Organic Apples",
			Category:    "fruit",
			Price:       12.00,
			Images:      []string{"assets/img/products/product-1.jpg"},
			Description: "Fresh, crisp organic apples grown locally with no pesticides.",
			Status:      model.ProductActive,
			Organic:     true,
			Details:     model.ProductDetails{Weight: "1kg", Origin: "Local"},
			ShelfLife:   "2-3 weeks",
			Features:    []string{"100% Organic Certified", "Locally Grown", "No Artificial Preservatives", "Rich in Fiber and Vitamins"},
		},
		{
			ID:          "organic-carrots",
			Name:        "Organic Carrots",
			Category:    "vegetable",
			Price:       8.50,
			Images:      []string{"assets/img/products/product-2.jpg"},
			Description: "Fresh organic carrots, rich in beta-carotene and vitamins.",
			Status:      model.ProductActive,
			Organic:     true,
			Details:     model.ProductDetails{Weight: "500g", Origin: "Local Farm"},
			ShelfLife:   "3-4 weeks",
			Features:    []string{"100% Organic", "Rich in Vitamin A", "Freshly Harvested", "No Chemicals"},
		},
		{
			ID:          "tomato-seeds",
			Name:        "Heirloom Tomato Seeds",
			Category:    "seed",
			Price:       4.99,
			Images:      []string{"assets/img/products/seeds-1.jpg"},
			Description: "Premium heirloom tomato seeds for your home garden. Non-GMO and organic.",
			Status:      model.ProductActive,
			Organic:     true,
			Details:     model.ProductDetails{Weight: "50 seeds", Origin: "Certified Organic"},
			ShelfLife:   "2 years",
			Features:    []string{"Non-GMO Heirloom Variety", "95% Germination Rate", "Organic Certified", "Open Pollinated"},
		},
	}

	for i := range defaults {
		if err := s.Repo.Create(ctx, &defaults[i]); err != nil {
			return err
		}
	}
	return nil
}
