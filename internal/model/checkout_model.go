package model

const (
	StepPayment  = 1
	StepLocation = 2
	StepReview   = 3

	PaymentCash    = "cash"
	PaymentDigital = "digital"
	PaymentCard    = "card"

	DeliveryStandard = "standard"
	DeliveryExpress  = "express"
	DeliveryFree     = "free"
)

// CardDetails is kept only inside the checkout state row and never copied
// onto orders; the order records just the payment method.
type CardDetails struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"` // MM/YY
	CVV    string `json:"cvv"`
	Holder string `json:"holder"`
}

// CheckoutState is the per-customer wizard state:
// PaymentMethod -> ShippingLocation -> Review, forward/back only.
type CheckoutState struct {
	Step           int           `json:"step"`
	PaymentMethod  string        `json:"paymentMethod,omitempty"`
	Wallet         string        `json:"wallet,omitempty"`
	Card           *CardDetails  `json:"card,omitempty"`
	Location       *CustomerInfo `json:"location,omitempty"`
	DeliveryOption string        `json:"deliveryOption,omitempty"`
	PromoCode      string        `json:"promoCode,omitempty"`
}

func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentDigital || m == PaymentCard
}

func ValidDeliveryOption(o string) bool {
	return o == DeliveryStandard || o == DeliveryExpress || o == DeliveryFree
}
