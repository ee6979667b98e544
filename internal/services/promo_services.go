package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"
)

var ErrInvalidPromo = errors.New("invalid promo code")

type PromoStore interface {
	GetByCode(ctx context.Context, code string) (*model.PromoCode, error)
	List(ctx context.Context) ([]model.PromoCode, error)
	Create(ctx context.Context, p *model.PromoCode) error
	Update(ctx context.Context, p *model.PromoCode) error
	Delete(ctx context.Context, code string) error
	Redeem(ctx context.Context, code string) error
	Unredeem(ctx context.Context, code string) error
}

type PromoService struct {
	Repo PromoStore
}

func NewPromoService(r PromoStore) *PromoService {
	return &PromoService{Repo: r}
}

// ValidatePromo decides whether a code is usable against a subtotal at a
// given instant. Pure: no storage access, never mutates the record. The
// first failing check wins.
func ValidatePromo(p *model.PromoCode, subtotal float64, now time.Time) error {
	if p == nil || p.Status != model.PromoActive {
		if p == nil {
			return ErrInvalidPromo
		}
		return errors.New("promo code is not active")
	}
	if p.StartDate != nil && now.Before(*p.StartDate) {
		return errors.New("promo code is not active yet")
	}
	if p.ExpiryDate != nil && !now.Before(*p.ExpiryDate) {
		return errors.New("promo code has expired")
	}
	if p.MinOrder > 0 && subtotal < p.MinOrder {
		return fmt.Errorf("minimum order of $%.2f required for this promo", p.MinOrder)
	}
	if p.MaxUses > 0 && p.UsedCount >= p.MaxUses {
		return errors.New("promo code usage limit reached")
	}
	return nil
}

// PromoDiscount computes the effect of a valid code: the discount on the
// subtotal, and whether the delivery fee is waived instead.
func PromoDiscount(p *model.PromoCode, subtotal float64) (discount float64, freeShipping bool) {
	switch p.Type {
	case model.PromoPercentage:
		return subtotal * p.Value / 100, false
	case model.PromoFixed:
		if p.Value > subtotal {
			return subtotal, false // never exceed subtotal; totals can't go negative
		}
		return p.Value, false
	case model.PromoFreeShipping:
		return 0, true
	}
	return 0, false
}

// Check fetches the code and validates it against the subtotal. Read-only;
// the usage counter moves only at order time, via Redeem.
func (s *PromoService) Check(ctx context.Context, code string, subtotal float64, now time.Time) (*model.PromoCode, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidPromo
	}
	p, err := s.Repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := ValidatePromo(p, subtotal, now); err != nil {
		return nil, err
	}
	return p, nil
}

// Redeem counts one completed order against the code.
func (s *PromoService) Redeem(ctx context.Context, code string) error {
	return s.Repo.Redeem(ctx, code)
}

// Release gives a use back when the order it was counted for never
// completed. Usage only ever reflects completed orders.
func (s *PromoService) Release(ctx context.Context, code string) error {
	return s.Repo.Unredeem(ctx, code)
}

func (s *PromoService) List(ctx context.Context) ([]model.PromoCode, error) {
	return s.Repo.List(ctx)
}

func (s *PromoService) Create(ctx context.Context, p *model.PromoCode) error {
	if err := validatePromoRecord(p); err != nil {
		return err
	}
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	if p.Status == "" {
		p.Status = model.PromoActive
	}
	existing, err := s.Repo.GetByCode(ctx, p.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("promo code already exists")
	}
	return s.Repo.Create(ctx, p)
}

func (s *PromoService) Update(ctx context.Context, p *model.PromoCode) error {
	if err := validatePromoRecord(p); err != nil {
		return err
	}
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	return s.Repo.Update(ctx, p)
}

func (s *PromoService) Delete(ctx context.Context, code string) error {
	return s.Repo.Delete(ctx, code)
}

func validatePromoRecord(p *model.PromoCode) error {
	if strings.TrimSpace(p.Code) == "" {
		return errors.New("code is required")
	}
	if !model.ValidPromoType(p.Type) {
		return errors.New("invalid promo type")
	}
	if p.Type != model.PromoFreeShipping && p.Value <= 0 {
		return errors.New("value must be greater than zero")
	}
	if p.Type == model.PromoPercentage && p.Value > 100 {
		return errors.New("percentage cannot exceed 100")
	}
	if p.MinOrder < 0 || p.MaxUses < 0 {
		return errors.New("minOrder and maxUses cannot be negative")
	}
	if p.Status != "" && p.Status != model.PromoActive && p.Status != model.PromoExpired {
		return errors.New("invalid promo status")
	}
	return nil
}

// SeedDefaults installs the storefront's starter codes on an empty table.
func (s *PromoService) SeedDefaults(ctx context.Context) error {
	existing, err := s.Repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	defaults := []model.PromoCode{
		{Code: "WELCOME10", Type: model.PromoPercentage, Value: 10, Status: model.PromoActive},
		{Code: "FARMER15", Type: model.PromoPercentage, Value: 15, MinOrder: 30, Status: model.PromoActive},
		{Code: "FIRST5", Type: model.PromoFixed, Value: 5, Status: model.PromoActive},
	}
	for i := range defaults {
		if err := s.Repo.Create(ctx, &defaults[i]); err != nil {
			return err
		}
	}
	return nil
}
