package services

import (
	"context"
	"errors"
	"time"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"
)

const freeDeliveryThreshold = 50.00

type CartStore interface {
	GetItems(ctx context.Context, customerID int64) ([]model.CartItem, error)
	SaveItems(ctx context.Context, customerID int64, items []model.CartItem) error
	Clear(ctx context.Context, customerID int64) error
}

type ProductReader interface {
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

type CartService struct {
	Repo     CartStore
	Products ProductReader
	Promos   *PromoService
	Notify   Notifier
}

func NewCartService(r CartStore, pr ProductReader, ps *PromoService, n Notifier) *CartService {
	if n == nil {
		n = NopNotifier{}
	}
	return &CartService{
		Repo:     r,
		Products: pr,
		Promos:   ps,
		Notify:   n,
	}
}

// Load returns the validated cart. Lines whose product no longer exists or
// went inactive are purged and the cleaned cart re-persisted; the caller gets
// the purge count so the response can mention the drop.
func (s *CartService) Load(ctx context.Context, customerID int64) ([]model.CartItem, int, error) {
	items, err := s.Repo.GetItems(ctx, customerID)
	if err != nil {
		return nil, 0, err
	}

	valid := make([]model.CartItem, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		p, err := s.Products.GetByID(ctx, it.ProductID)
		if err != nil || p.Status != model.ProductActive {
			continue
		}
		valid = append(valid, it)
	}

	purged := len(items) - len(valid)
	if purged > 0 {
		if err := s.Repo.SaveItems(ctx, customerID, valid); err != nil {
			return nil, 0, err
		}
	}
	return valid, purged, nil
}

// Add puts a product in the cart. Re-adding the same product accumulates
// quantity on the existing line; the line keeps its add-time snapshot.
func (s *CartService) Add(ctx context.Context, customerID int64, productID string, qty int) error {
	if qty <= 0 {
		qty = 1
	}

	p, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		return errors.New("product not found")
	}
	if p.Status != model.ProductActive {
		return errors.New("product is currently unavailable")
	}

	items, _, err := s.Load(ctx, customerID)
	if err != nil {
		return err
	}

	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		items = append(items, model.CartItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Category:  p.Category,
			Image:     p.PrimaryImage(),
			Weight:    p.Details.Weight,
			Quantity:  qty,
		})
	}

	if err := s.Repo.SaveItems(ctx, customerID, items); err != nil {
		return err
	}
	s.notify(ctx, customerID, items)
	return nil
}

// UpdateQuantity adds delta to the line at position index; a quantity
// dropping to zero or below removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, customerID int64, index, delta int) error {
	items, _, err := s.Load(ctx, customerID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(items) {
		return errors.New("cart item not found")
	}

	items[index].Quantity += delta
	if items[index].Quantity <= 0 {
		items = append(items[:index], items[index+1:]...)
	}

	if err := s.Repo.SaveItems(ctx, customerID, items); err != nil {
		return err
	}
	s.notify(ctx, customerID, items)
	return nil
}

// Remove deletes and returns the line at position index.
func (s *CartService) Remove(ctx context.Context, customerID int64, index int) (*model.CartItem, error) {
	items, _, err := s.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(items) {
		return nil, errors.New("cart item not found")
	}

	removed := items[index]
	items = append(items[:index], items[index+1:]...)

	if err := s.Repo.SaveItems(ctx, customerID, items); err != nil {
		return nil, err
	}
	s.notify(ctx, customerID, items)
	return &removed, nil
}

func (s *CartService) Clear(ctx context.Context, customerID int64) error {
	if err := s.Repo.Clear(ctx, customerID); err != nil {
		return err
	}
	s.notify(ctx, customerID, nil)
	return nil
}

// Get returns the validated cart with its aggregates.
func (s *CartService) Get(ctx context.Context, customerID int64) (*model.CartResponse, error) {
	items, purged, err := s.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &model.CartResponse{
		Items:      items,
		TotalItems: TotalItems(items),
		Subtotal:   Subtotal(items),
		Purged:     purged,
	}, nil
}

// Summary computes the order-summary box: subtotal + delivery fee - discount.
// A free_shipping promo zeroes the fee instead of discounting the subtotal.
func (s *CartService) Summary(ctx context.Context, customerID int64, deliveryOption, promoCode string) (*model.CartSummary, error) {
	items, _, err := s.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if !model.ValidDeliveryOption(deliveryOption) {
		deliveryOption = model.DeliveryStandard
	}

	subtotal := Subtotal(items)
	fee := DeliveryFee(deliveryOption, subtotal)

	var discount float64
	var freeShipping bool
	if promoCode != "" {
		promo, err := s.Promos.Check(ctx, promoCode, subtotal, time.Now())
		if err != nil {
			return nil, err
		}
		discount, freeShipping = PromoDiscount(promo, subtotal)
		promoCode = promo.Code
	}
	if freeShipping {
		fee = 0
	}

	return &model.CartSummary{
		Subtotal:       subtotal,
		DeliveryFee:    fee,
		Discount:       discount,
		Total:          subtotal + fee - discount,
		TotalItems:     TotalItems(items),
		DeliveryOption: deliveryOption,
		PromoCode:      promoCode,
		FreeShipping:   freeShipping,
	}, nil
}

func (s *CartService) notify(ctx context.Context, customerID int64, items []model.CartItem) {
	s.Notify.CartUpdated(ctx, CartEvent{
		CustomerID: customerID,
		TotalItems: TotalItems(items),
		Subtotal:   Subtotal(items),
	})
}

// Subtotal is the sum of price x quantity over the items.
func Subtotal(items []model.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// TotalItems is the sum of quantities, the number the cart counter shows.
func TotalItems(items []model.CartItem) int {
	var n int
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// DeliveryFee prices the selected option: standard 5.00, express 12.00, free
// only once the subtotal qualifies. Unknown options fall back to standard.
func DeliveryFee(option string, subtotal float64) float64 {
	switch option {
	case model.DeliveryFree:
		if subtotal >= freeDeliveryThreshold {
			return 0
		}
		return 5.00
	case model.DeliveryExpress:
		return 12.00
	default:
		return 5.00
	}
}
