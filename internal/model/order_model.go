package model

import "time"

const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// CustomerInfo is the contact/address block collected during checkout.
type CustomerInfo struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country"`
	Instructions string `json:"instructions,omitempty"`
}

type OrderDelivery struct {
	Location CustomerInfo `json:"location"`
	Option   string       `json:"option"`
	Fee      float64      `json:"fee"`
}

type OrderTotals struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

// Order is an immutable-once-created snapshot of a completed checkout,
// subject only to status updates. Items is the cart copy at checkout time.
type Order struct {
	OrderID       string        `json:"id"`
	CustomerID    int64         `json:"customerId"`
	Date          time.Time     `json:"date"`
	Items         []CartItem    `json:"items"`
	PaymentMethod string        `json:"paymentMethod"`
	Delivery      OrderDelivery `json:"delivery"`
	Totals        OrderTotals   `json:"totals"`
	PromoCode     string        `json:"promoCode,omitempty"`
	Status        string        `json:"status"`
	CreatedAt     *time.Time    `json:"created_at,omitempty"`
	UpdatedAt     *time.Time    `json:"updated_at,omitempty"`
}

type OrderStats struct {
	TotalOrders     int     `json:"totalOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	CompletedOrders int     `json:"completedOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	UniqueCustomers int     `json:"uniqueCustomers"`
}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}
