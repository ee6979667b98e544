package services

import (
	"context"
	"fmt"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"
)

type OrderStore interface {
	Create(ctx context.Context, o *model.Order) error
	GetByID(ctx context.Context, orderID string) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	ListByStatus(ctx context.Context, status string) ([]model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
	Stats(ctx context.Context) (*model.OrderStats, error)
}

type OrderService struct {
	Repo OrderStore
}

func NewOrderService(r OrderStore) *OrderService {
	return &OrderService{Repo: r}
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*model.Order, error) {
	return s.Repo.GetByID(ctx, orderID)
}

func (s *OrderService) List(ctx context.Context, status string) ([]model.Order, error) {
	if status == "" || status == "all" {
		return s.Repo.List(ctx)
	}
	if !model.ValidOrderStatus(status) {
		return nil, fmt.Errorf("unknown order status %q", status)
	}
	return s.Repo.ListByStatus(ctx, status)
}

func (s *OrderService) ListForCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return s.Repo.ListByCustomer(ctx, customerID)
}

func (s *OrderService) Stats(ctx context.Context) (*model.OrderStats, error) {
	return s.Repo.Stats(ctx)
}

var statusRank = map[string]int{
	model.OrderPending:   0,
	model.OrderConfirmed: 1,
	model.OrderShipped:   2,
	model.OrderDelivered: 3,
}

// CanTransition says whether an order may move from one status to the next.
// Fulfilment only moves forward; cancellation is allowed from any state that
// isn't already terminal.
func CanTransition(from, to string) bool {
	if from == model.OrderDelivered || from == model.OrderCancelled {
		return false
	}
	if to == model.OrderCancelled {
		return true
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// UpdateStatus moves an order along the fulfilment pipeline.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, fmt.Errorf("unknown order status %q", status)
	}

	order, err := s.Repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, status) {
		return nil, fmt.Errorf("cannot change order status from %s to %s", order.Status, status)
	}

	if err := s.Repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}

// Cancel is the customer-facing status change; everything else is admin-only.
func (s *OrderService) Cancel(ctx context.Context, customerID int64, orderID string) (*model.Order, error) {
	order, err := s.Repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, fmt.Errorf("order not found")
	}
	if !CanTransition(order.Status, model.OrderCancelled) {
		return nil, fmt.Errorf("order can no longer be cancelled")
	}
	if err := s.Repo.UpdateStatus(ctx, orderID, model.OrderCancelled); err != nil {
		return nil, err
	}
	order.Status = model.OrderCancelled
	return order, nil
}
