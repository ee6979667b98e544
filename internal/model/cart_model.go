package model

// CartItem is a denormalized snapshot of the product at add-time, so later
// catalog edits don't retroactively change carts or orders.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Image     string  `json:"image"`
	Weight    string  `json:"weight,omitempty"`
	Quantity  int     `json:"quantity"`
}

// CartResponse is returned when calling GET /cart
type CartResponse struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	Subtotal   float64    `json:"subtotal"`
	Purged     int        `json:"purged,omitempty"` // lines dropped because the product vanished or went inactive
}

// CartSummary is the order-summary box: subtotal + delivery fee - discount.
type CartSummary struct {
	Subtotal       float64 `json:"subtotal"`
	DeliveryFee    float64 `json:"deliveryFee"`
	Discount       float64 `json:"discount"`
	Total          float64 `json:"total"`
	TotalItems     int     `json:"totalItems"`
	DeliveryOption string  `json:"deliveryOption"`
	PromoCode      string  `json:"promoCode,omitempty"`
	FreeShipping   bool    `json:"freeShipping,omitempty"`
}
