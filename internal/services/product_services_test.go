package services

import (
	"context"
	"testing"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProductID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Fresh Organic Apples", "fresh-organic-apples"},
		{"Heirloom Tomato Seeds", "heirloom-tomato-seeds"},
		{"  Spaced   Out!!  ", "spaced-out"},
		{"100% Honey", "100-honey"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GenerateProductID(tt.name))
	}
}

func validProduct(name string) *model.Product {
	return &model.Product{
		Name:     name,
		Category: "fruit",
		Price:    3.50,
		Images:   []string{"img.jpg"},
	}
}

func TestProductCreateAssignsUniqueSlug(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(newMemProductStore())

	id, err := svc.Create(ctx, validProduct("Fresh Apples"))
	require.NoError(t, err)
	assert.Equal(t, "fresh-apples", id)

	id, err = svc.Create(ctx, validProduct("Fresh Apples"))
	require.NoError(t, err)
	assert.Equal(t, "fresh-apples-2", id)

	id, err = svc.Create(ctx, validProduct("Fresh Apples"))
	require.NoError(t, err)
	assert.Equal(t, "fresh-apples-3", id)
}

func TestProductCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(newMemProductStore())

	t.Run("defaults status to active", func(t *testing.T) {
		p := validProduct("Carrots")
		_, err := svc.Create(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, model.ProductActive, p.Status)
	})

	t.Run("rejections", func(t *testing.T) {
		missingName := validProduct(" ")
		badCategory := validProduct("X")
		badCategory.Category = "gadget"
		negativePrice := validProduct("Y")
		negativePrice.Price = -1
		noImages := validProduct("Z")
		noImages.Images = nil

		for _, p := range []*model.Product{missingName, badCategory, negativePrice, noImages} {
			_, err := svc.Create(ctx, p)
			assert.Error(t, err)
		}
	})
}

func TestProductSeedDefaults(t *testing.T) {
	ctx := context.Background()
	store := newMemProductStore()
	svc := NewProductService(store)

	require.NoError(t, svc.SeedDefaults(ctx))
	list, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, list, 3)

	apples, err := svc.Get(ctx, "fresh-apples")
	require.NoError(t, err)
	assert.InDelta(t, 12.00, apples.Price, 1e-9)

	// a populated catalog is left alone
	require.NoError(t, svc.SeedDefaults(ctx))
	n, _ := store.Count(ctx)
	assert.Equal(t, 3, n)
}

func TestProductListFiltersInactive(t *testing.T) {
	ctx := context.Background()
	store := newMemProductStore()
	svc := NewProductService(store)

	_, err := svc.Create(ctx, validProduct("Visible"))
	require.NoError(t, err)
	hidden := validProduct("Hidden")
	hidden.Status = model.ProductInactive
	_, err = svc.Create(ctx, hidden)
	require.NoError(t, err)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
