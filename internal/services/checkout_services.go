package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type CheckoutStore interface {
	Get(ctx context.Context, customerID int64) (*model.CheckoutState, error)
	Save(ctx context.Context, customerID int64, st *model.CheckoutState) error
	Clear(ctx context.Context, customerID int64) error
}

type OrderWriter interface {
	Create(ctx context.Context, o *model.Order) error
}

// CheckoutService drives the 3-step wizard: payment method -> shipping
// location -> review. Steps only move one forward on valid input, or back.
type CheckoutService struct {
	State  CheckoutStore
	Cart   *CartService
	Orders OrderWriter
	Promos *PromoService
	Snap   *snap.Client // optional card gateway
	Mailer EmailSender  // optional confirmation mail
}

func NewCheckoutService(st CheckoutStore, cart *CartService, orders OrderWriter, promos *PromoService, snapClient *snap.Client, mailer EmailSender) *CheckoutService {
	return &CheckoutService{
		State:  st,
		Cart:   cart,
		Orders: orders,
		Promos: promos,
		Snap:   snapClient,
		Mailer: mailer,
	}
}

var (
	cardNumberRegex = regexp.MustCompile(`^\d{16}$`)
	cardExpiryRegex = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cardCVVRegex    = regexp.MustCompile(`^\d{3}$`)
)

type PlaceOrderResult struct {
	Order      *model.Order `json:"order"`
	PaymentURL string       `json:"payment_url,omitempty"`
}

func (s *CheckoutService) GetState(ctx context.Context, customerID int64) (*model.CheckoutState, error) {
	return s.State.Get(ctx, customerID)
}

// SubmitPaymentMethod validates step 1 and advances to the shipping step.
func (s *CheckoutService) SubmitPaymentMethod(ctx context.Context, customerID int64, method, wallet string, card *model.CardDetails) error {
	if !model.ValidPaymentMethod(method) {
		return errors.New("please select a payment method")
	}
	if method == model.PaymentDigital && strings.TrimSpace(wallet) == "" {
		return errors.New("please select a digital wallet")
	}
	if method == model.PaymentCard {
		if err := validateCard(card); err != nil {
			return err
		}
	}

	st, err := s.State.Get(ctx, customerID)
	if err != nil {
		return err
	}
	st.PaymentMethod = method
	st.Wallet = ""
	st.Card = nil
	switch method {
	case model.PaymentDigital:
		st.Wallet = wallet
	case model.PaymentCard:
		st.Card = card
	}
	st.Step = model.StepLocation
	return s.State.Save(ctx, customerID, st)
}

// SubmitLocation validates step 2 and advances to the review step.
func (s *CheckoutService) SubmitLocation(ctx context.Context, customerID int64, loc model.CustomerInfo) error {
	st, err := s.State.Get(ctx, customerID)
	if err != nil {
		return err
	}
	if st.Step < model.StepLocation {
		return errors.New("please select a payment method first")
	}
	if err := validateLocation(&loc); err != nil {
		return err
	}

	st.Location = &loc
	st.Step = model.StepReview
	return s.State.Save(ctx, customerID, st)
}

// Back moves one step towards the payment step; there is no skipping in
// either direction.
func (s *CheckoutService) Back(ctx context.Context, customerID int64) (*model.CheckoutState, error) {
	st, err := s.State.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if st.Step > model.StepPayment {
		st.Step--
		if err := s.State.Save(ctx, customerID, st); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// SelectDelivery records the delivery option. The free option only holds
// once the cart qualifies.
func (s *CheckoutService) SelectDelivery(ctx context.Context, customerID int64, option string) error {
	if !model.ValidDeliveryOption(option) {
		return errors.New("invalid delivery option")
	}
	if option == model.DeliveryFree {
		items, _, err := s.Cart.Load(ctx, customerID)
		if err != nil {
			return err
		}
		if subtotal := Subtotal(items); subtotal < freeDeliveryThreshold {
			return fmt.Errorf("add $%.2f more to qualify for free delivery", freeDeliveryThreshold-subtotal)
		}
	}

	st, err := s.State.Get(ctx, customerID)
	if err != nil {
		return err
	}
	st.DeliveryOption = option
	return s.State.Save(ctx, customerID, st)
}

// ApplyPromo validates the code against the current subtotal and remembers
// it as the currently applied code. Usage is not counted here.
func (s *CheckoutService) ApplyPromo(ctx context.Context, customerID int64, code string) (*model.PromoCode, error) {
	items, _, err := s.Cart.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	promo, err := s.Promos.Check(ctx, code, Subtotal(items), time.Now())
	if err != nil {
		return nil, err
	}

	st, err := s.State.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	st.PromoCode = promo.Code
	if err := s.State.Save(ctx, customerID, st); err != nil {
		return nil, err
	}
	return promo, nil
}

func (s *CheckoutService) RemovePromo(ctx context.Context, customerID int64) error {
	st, err := s.State.Get(ctx, customerID)
	if err != nil {
		return err
	}
	st.PromoCode = ""
	return s.State.Save(ctx, customerID, st)
}

// PlaceOrder is the terminal step: it snapshots the cart into a new order,
// counts the promo usage, clears the cart and the wizard state.
func (s *CheckoutService) PlaceOrder(ctx context.Context, customerID int64, agreeTerms bool) (*PlaceOrderResult, error) {
	if !agreeTerms {
		return nil, errors.New("please agree to the terms and conditions")
	}

	st, err := s.State.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if st.Step < model.StepReview || st.PaymentMethod == "" || st.Location == nil {
		return nil, errors.New("please complete the payment and shipping steps first")
	}

	items, _, err := s.Cart.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("cart is empty")
	}

	now := time.Now()
	subtotal := Subtotal(items)

	option := st.DeliveryOption
	if !model.ValidDeliveryOption(option) {
		option = model.DeliveryStandard
	}
	fee := DeliveryFee(option, subtotal)

	var discount float64
	var promo *model.PromoCode
	if st.PromoCode != "" {
		promo, err = s.Promos.Check(ctx, st.PromoCode, subtotal, now)
		if err != nil {
			return nil, err
		}
		var freeShipping bool
		discount, freeShipping = PromoDiscount(promo, subtotal)
		if freeShipping {
			fee = 0
		}
	}

	// count the usage before the order exists, so a concurrently exhausted
	// code rejects the checkout instead of overshooting its cap
	if promo != nil {
		if err := s.Promos.Redeem(ctx, promo.Code); err != nil {
			return nil, err
		}
	}

	order := &model.Order{
		OrderID:       newOrderID(now),
		CustomerID:    customerID,
		Date:          now,
		Items:         items,
		PaymentMethod: st.PaymentMethod,
		Delivery: model.OrderDelivery{
			Location: *st.Location,
			Option:   option,
			Fee:      fee,
		},
		Totals: model.OrderTotals{
			Subtotal:    subtotal,
			DeliveryFee: fee,
			Discount:    discount,
			Total:       subtotal + fee - discount,
		},
		Status: model.OrderPending,
	}
	if promo != nil {
		order.PromoCode = promo.Code
	}

	if err := s.Orders.Create(ctx, order); err != nil {
		// no completed order: give the counted use back
		if promo != nil {
			_ = s.Promos.Release(ctx, promo.Code)
		}
		return nil, err
	}

	// the order exists from here on; failing the checkout over cleanup
	// would invite a retry that appends a duplicate order
	_ = s.Cart.Clear(ctx, customerID)
	_ = s.State.Clear(ctx, customerID)

	result := &PlaceOrderResult{Order: order}

	// optional card gateway: failure here must not undo a placed order
	if st.PaymentMethod == model.PaymentCard && s.Snap != nil {
		req := &snap.Request{
			TransactionDetails: midtrans.TransactionDetails{
				OrderID:  order.OrderID,
				GrossAmt: int64(order.Totals.Total),
			},
		}
		if resp, snapErr := s.Snap.CreateTransaction(req); snapErr == nil {
			result.PaymentURL = resp.RedirectURL
		}
	}

	if s.Mailer != nil {
		_ = s.Mailer.SendOrderConfirmation(ctx, order.Delivery.Location.Email, order)
	}

	return result, nil
}

// newOrderID builds the storefront's time-based id, with a short random
// suffix so two checkouts in the same millisecond can't collide.
func newOrderID(now time.Time) string {
	return fmt.Sprintf("FA-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

func validateCard(card *model.CardDetails) error {
	if card == nil {
		return errors.New("card details are required")
	}
	number := strings.ReplaceAll(card.Number, " ", "")
	if !cardNumberRegex.MatchString(number) {
		return errors.New("please enter a valid 16-digit card number")
	}
	if !cardExpiryRegex.MatchString(card.Expiry) {
		return errors.New("please enter a valid expiry date (MM/YY)")
	}
	if !cardCVVRegex.MatchString(card.CVV) {
		return errors.New("please enter a valid 3-digit CVV")
	}
	if strings.TrimSpace(card.Holder) == "" {
		return errors.New("please enter the card holder name")
	}
	card.Number = number
	return nil
}

func validateLocation(loc *model.CustomerInfo) error {
	required := []struct {
		label, value string
	}{
		{"first name", loc.FirstName},
		{"last name", loc.LastName},
		{"email", loc.Email},
		{"phone", loc.Phone},
		{"address", loc.Address},
		{"city", loc.City},
		{"zip code", loc.ZipCode},
		{"country", loc.Country},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("please fill in your %s", f.label)
		}
	}
	if !emailRegex.MatchString(loc.Email) {
		return errors.New("please enter a valid email address")
	}
	return nil
}
