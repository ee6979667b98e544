package services

import "context"

// CartEvent is published whenever a cart changes, so other consumers (counter
// widgets, other sessions) can re-render.
type CartEvent struct {
	CustomerID int64   `json:"customerId"`
	TotalItems int     `json:"totalItems"`
	Subtotal   float64 `json:"subtotal"`
}

type Notifier interface {
	CartUpdated(ctx context.Context, ev CartEvent)
}

// NopNotifier is used when no broker is configured.
type NopNotifier struct{}

func (NopNotifier) CartUpdated(context.Context, CartEvent) {}
