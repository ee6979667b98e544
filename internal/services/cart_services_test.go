package services

import (
	"context"
	"testing"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() *memProducts {
	return newMemProducts(
		model.Product{
			ID: "fresh-apples", Name: "Fresh Organic Apples", Category: "fruit",
			Price: 12.00, Images: []string{"apples.jpg"}, Status: model.ProductActive,
			Details: model.ProductDetails{Weight: "1kg"},
		},
		model.Product{
			ID: "organic-carrots", Name: "Organic Carrots", Category: "vegetable",
			Price: 8.50, Images: []string{"carrots.jpg"}, Status: model.ProductActive,
			Details: model.ProductDetails{Weight: "500g"},
		},
		model.Product{
			ID: "old-stock", Name: "Old Stock", Category: "fruit",
			Price: 1.00, Images: []string{"old.jpg"}, Status: model.ProductInactive,
		},
	)
}

func newTestCart(t *testing.T) (*CartService, *memCartStore, *recordingNotifier) {
	t.Helper()
	store := newMemCartStore()
	notifier := &recordingNotifier{}
	promos := NewPromoService(newMemPromoStore(
		activePercent("WELCOME10", 10, 0),
		activePercent("FARMER15", 15, 30),
	))
	return NewCartService(store, sampleCatalog(), promos, notifier), store, notifier
}

const customerID = int64(7)

func TestCartAddAccumulates(t *testing.T) {
	ctx := context.Background()
	cart, _, notifier := newTestCart(t)

	require.NoError(t, cart.Add(ctx, customerID, "fresh-apples", 1))
	require.NoError(t, cart.Add(ctx, customerID, "fresh-apples", 2))

	resp, err := cart.Get(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantity)
	assert.Equal(t, 3, resp.TotalItems)
	assert.InDelta(t, 36.00, resp.Subtotal, 1e-9)

	// each mutation broadcast once
	require.Len(t, notifier.events, 2)
	assert.Equal(t, 3, notifier.events[1].TotalItems)
}

func TestCartAddSnapshotsProduct(t *testing.T) {
	ctx := context.Background()
	cart, store, _ := newTestCart(t)

	require.NoError(t, cart.Add(ctx, customerID, "organic-carrots", 1))

	items := store.items[customerID]
	require.Len(t, items, 1)
	assert.Equal(t, "Organic Carrots", items[0].Name)
	assert.InDelta(t, 8.50, items[0].Price, 1e-9)
	assert.Equal(t, "carrots.jpg", items[0].Image)
	assert.Equal(t, "500g", items[0].Weight)
}

func TestCartAddRejections(t *testing.T) {
	ctx := context.Background()
	cart, _, _ := newTestCart(t)

	err := cart.Add(ctx, customerID, "no-such-product", 1)
	require.Error(t, err)
	assert.Equal(t, "product not found", err.Error())

	err = cart.Add(ctx, customerID, "old-stock", 1)
	require.Error(t, err)
	assert.Equal(t, "product is currently unavailable", err.Error())
}

func TestCartUpdateQuantityRemovesAtZero(t *testing.T) {
	ctx := context.Background()
	cart, _, _ := newTestCart(t)

	require.NoError(t, cart.Add(ctx, customerID, "fresh-apples", 3))

	// dropping below zero removes the line entirely
	require.NoError(t, cart.UpdateQuantity(ctx, customerID, 0, -5))

	resp, err := cart.Get(ctx, customerID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)

	err = cart.UpdateQuantity(ctx, customerID, 0, 1)
	require.Error(t, err)
	assert.Equal(t, "cart item not found", err.Error())
}

func TestCartRemoveReturnsLine(t *testing.T) {
	ctx := context.Background()
	cart, _, _ := newTestCart(t)

	require.NoError(t, cart.Add(ctx, customerID, "fresh-apples", 1))
	require.NoError(t, cart.Add(ctx, customerID, "organic-carrots", 2))

	removed, err := cart.Remove(ctx, customerID, 0)
	require.NoError(t, err)
	assert.Equal(t, "fresh-apples", removed.ProductID)

	resp, err := cart.Get(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "organic-carrots", resp.Items[0].ProductID)
}

func TestCartLoadPurgesStaleLines(t *testing.T) {
	ctx := context.Background()
	cart, store, _ := newTestCart(t)

	// one good line, one inactive product, one vanished product, one zero qty
	store.items[customerID] = []model.CartItem{
		{ProductID: "fresh-apples", Name: "Fresh Organic Apples", Price: 12.00, Quantity: 1},
		{ProductID: "old-stock", Name: "Old Stock", Price: 1.00, Quantity: 2},
		{ProductID: "gone", Name: "Gone", Price: 9.99, Quantity: 1},
		{ProductID: "organic-carrots", Name: "Organic Carrots", Price: 8.50, Quantity: 0},
	}

	resp, err := cart.Get(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "fresh-apples", resp.Items[0].ProductID)
	assert.Equal(t, 3, resp.Purged)

	// the cleaned cart was re-persisted
	assert.Len(t, store.items[customerID], 1)
}

func TestDeliveryFee(t *testing.T) {
	tests := []struct {
		option   string
		subtotal float64
		want     float64
	}{
		{model.DeliveryStandard, 20, 5.00},
		{model.DeliveryExpress, 20, 12.00},
		{model.DeliveryFree, 49.99, 5.00},
		{model.DeliveryFree, 50.00, 0},
		{"unknown", 20, 5.00},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, DeliveryFee(tt.option, tt.subtotal), 1e-9,
			"option=%s subtotal=%.2f", tt.option, tt.subtotal)
	}
}

func TestCartSummary(t *testing.T) {
	ctx := context.Background()
	cart, _, _ := newTestCart(t)

	// 2x12.00 + 1x8.50 = 32.50
	require.NoError(t, cart.Add(ctx, customerID, "fresh-apples", 2))
	require.NoError(t, cart.Add(ctx, customerID, "organic-carrots", 1))

	t.Run("with percentage promo", func(t *testing.T) {
		sum, err := cart.Summary(ctx, customerID, model.DeliveryStandard, "FARMER15")
		require.NoError(t, err)
		assert.InDelta(t, 32.50, sum.Subtotal, 1e-9)
		assert.InDelta(t, 5.00, sum.DeliveryFee, 1e-9)
		assert.InDelta(t, 4.875, sum.Discount, 1e-9)
		assert.InDelta(t, 32.625, sum.Total, 1e-9)
		assert.Equal(t, 3, sum.TotalItems)
	})

	t.Run("promo below minimum order rejected", func(t *testing.T) {
		small, _, _ := newTestCart(t)
		require.NoError(t, small.Add(ctx, customerID, "organic-carrots", 2)) // 17.00

		_, err := small.Summary(ctx, customerID, model.DeliveryStandard, "FARMER15")
		require.Error(t, err)
		assert.Equal(t, "minimum order of $30.00 required for this promo", err.Error())
	})

	t.Run("unknown delivery option falls back to standard", func(t *testing.T) {
		sum, err := cart.Summary(ctx, customerID, "teleport", "")
		require.NoError(t, err)
		assert.Equal(t, model.DeliveryStandard, sum.DeliveryOption)
		assert.InDelta(t, 5.00, sum.DeliveryFee, 1e-9)
	})
}

func TestCartSummaryFreeShippingPromo(t *testing.T) {
	ctx := context.Background()
	store := newMemCartStore()
	promos := NewPromoService(newMemPromoStore(
		model.PromoCode{Code: "SHIPFREE", Type: model.PromoFreeShipping, Status: model.PromoActive},
	))
	cart := NewCartService(store, sampleCatalog(), promos, nil)

	require.NoError(t, cart.Add(ctx, customerID, "fresh-apples", 1))

	sum, err := cart.Summary(ctx, customerID, model.DeliveryExpress, "SHIPFREE")
	require.NoError(t, err)
	assert.True(t, sum.FreeShipping)
	assert.Zero(t, sum.DeliveryFee)
	assert.Zero(t, sum.Discount)
	assert.InDelta(t, 12.00, sum.Total, 1e-9)
}
