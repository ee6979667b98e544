package services

import (
	"context"
	"testing"
	"time"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activePercent(code string, value, minOrder float64) model.PromoCode {
	return model.PromoCode{
		Code:     code,
		Type:     model.PromoPercentage,
		Value:    value,
		MinOrder: minOrder,
		Status:   model.PromoActive,
	}
}

func TestValidatePromo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name     string
		promo    *model.PromoCode
		subtotal float64
		wantErr  string
	}{
		{"nil promo", nil, 100, "invalid promo code"},
		{
			"inactive",
			&model.PromoCode{Code: "X", Type: model.PromoPercentage, Value: 10, Status: model.PromoExpired},
			100, "promo code is not active",
		},
		{
			"not started",
			&model.PromoCode{Code: "X", Type: model.PromoPercentage, Value: 10, Status: model.PromoActive, StartDate: &future},
			100, "promo code is not active yet",
		},
		{
			"expired",
			&model.PromoCode{Code: "X", Type: model.PromoPercentage, Value: 10, Status: model.PromoActive, ExpiryDate: &past},
			100, "promo code has expired",
		},
		{
			"below minimum order",
			&model.PromoCode{Code: "FARMER15", Type: model.PromoPercentage, Value: 15, MinOrder: 30, Status: model.PromoActive},
			20, "minimum order of $30.00 required for this promo",
		},
		{
			"usage limit reached",
			&model.PromoCode{Code: "X", Type: model.PromoPercentage, Value: 10, Status: model.PromoActive, MaxUses: 5, UsedCount: 5},
			100, "promo code usage limit reached",
		},
		{
			"valid at exact minimum",
			&model.PromoCode{Code: "FARMER15", Type: model.PromoPercentage, Value: 15, MinOrder: 30, Status: model.PromoActive},
			30, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePromo(tt.promo, tt.subtotal, now)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
			}
		})
	}
}

func TestPromoDiscount(t *testing.T) {
	t.Run("percentage on the sample cart", func(t *testing.T) {
		// 2x12.00 + 1x8.50 = 32.50; 15% of that
		promo := activePercent("FARMER15", 15, 30)
		discount, freeShipping := PromoDiscount(&promo, 32.50)
		assert.InDelta(t, 4.875, discount, 1e-9)
		assert.False(t, freeShipping)
	})

	t.Run("fixed never exceeds subtotal", func(t *testing.T) {
		promo := model.PromoCode{Code: "FIRST5", Type: model.PromoFixed, Value: 5, Status: model.PromoActive}
		discount, _ := PromoDiscount(&promo, 3.20)
		assert.InDelta(t, 3.20, discount, 1e-9)

		discount, _ = PromoDiscount(&promo, 40)
		assert.InDelta(t, 5, discount, 1e-9)
	})

	t.Run("free shipping waives the fee only", func(t *testing.T) {
		promo := model.PromoCode{Code: "SHIPFREE", Type: model.PromoFreeShipping, Status: model.PromoActive}
		discount, freeShipping := PromoDiscount(&promo, 60)
		assert.Zero(t, discount)
		assert.True(t, freeShipping)
	})
}

func TestPromoServiceCheckIsReadOnly(t *testing.T) {
	ctx := context.Background()
	store := newMemPromoStore(activePercent("WELCOME10", 10, 0))
	svc := NewPromoService(store)

	for i := 0; i < 3; i++ {
		promo, err := svc.Check(ctx, "welcome10", 100, time.Now())
		require.NoError(t, err)
		assert.Equal(t, "WELCOME10", promo.Code)
	}
	assert.Zero(t, store.byCode["WELCOME10"].UsedCount, "Check must not count usage")

	require.NoError(t, svc.Redeem(ctx, "WELCOME10"))
	assert.Equal(t, 1, store.byCode["WELCOME10"].UsedCount)
}

func TestPromoServiceCheckUnknownCode(t *testing.T) {
	svc := NewPromoService(newMemPromoStore())

	_, err := svc.Check(context.Background(), "NOPE", 100, time.Now())
	assert.ErrorIs(t, err, ErrInvalidPromo)

	_, err = svc.Check(context.Background(), "   ", 100, time.Now())
	assert.ErrorIs(t, err, ErrInvalidPromo)
}

func TestPromoServiceCreate(t *testing.T) {
	ctx := context.Background()
	store := newMemPromoStore(activePercent("WELCOME10", 10, 0))
	svc := NewPromoService(store)

	t.Run("duplicate code", func(t *testing.T) {
		p := activePercent("welcome10", 10, 0)
		err := svc.Create(ctx, &p)
		require.Error(t, err)
		assert.Equal(t, "promo code already exists", err.Error())
	})

	t.Run("uppercases and defaults status", func(t *testing.T) {
		p := model.PromoCode{Code: "spring20", Type: model.PromoPercentage, Value: 20}
		require.NoError(t, svc.Create(ctx, &p))
		assert.Equal(t, "SPRING20", p.Code)
		assert.Equal(t, model.PromoActive, p.Status)
	})

	t.Run("rejects bad records", func(t *testing.T) {
		bad := []model.PromoCode{
			{Code: "", Type: model.PromoPercentage, Value: 10},
			{Code: "X", Type: "bogus", Value: 10},
			{Code: "X", Type: model.PromoPercentage, Value: 0},
			{Code: "X", Type: model.PromoPercentage, Value: 150},
			{Code: "X", Type: model.PromoFixed, Value: 5, MinOrder: -1},
		}
		for _, p := range bad {
			p := p
			assert.Error(t, svc.Create(ctx, &p))
		}
	})
}

func TestPromoServiceSeedDefaults(t *testing.T) {
	ctx := context.Background()
	store := newMemPromoStore()
	svc := NewPromoService(store)

	require.NoError(t, svc.SeedDefaults(ctx))
	assert.Len(t, store.byCode, 3)
	assert.Contains(t, store.byCode, "WELCOME10")
	assert.Contains(t, store.byCode, "FARMER15")
	assert.Contains(t, store.byCode, "FIRST5")

	// seeding is idempotent
	require.NoError(t, svc.SeedDefaults(ctx))
	assert.Len(t, store.byCode, 3)
}
