package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"
)

// in-memory stores backing the service tests

type memCartStore struct {
	items map[int64][]model.CartItem
}

func newMemCartStore() *memCartStore {
	return &memCartStore{items: map[int64][]model.CartItem{}}
}

func (m *memCartStore) GetItems(_ context.Context, customerID int64) ([]model.CartItem, error) {
	return append([]model.CartItem(nil), m.items[customerID]...), nil
}

func (m *memCartStore) SaveItems(_ context.Context, customerID int64, items []model.CartItem) error {
	m.items[customerID] = append([]model.CartItem(nil), items...)
	return nil
}

func (m *memCartStore) Clear(_ context.Context, customerID int64) error {
	delete(m.items, customerID)
	return nil
}

type memProducts struct {
	byID map[string]*model.Product
}

func newMemProducts(products ...model.Product) *memProducts {
	m := &memProducts{byID: map[string]*model.Product{}}
	for i := range products {
		m.byID[products[i].ID] = &products[i]
	}
	return m
}

func (m *memProducts) GetByID(_ context.Context, id string) (*model.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, errors.New("product not found")
	}
	cp := *p
	return &cp, nil
}

type memPromoStore struct {
	byCode map[string]*model.PromoCode
}

func newMemPromoStore(promos ...model.PromoCode) *memPromoStore {
	m := &memPromoStore{byCode: map[string]*model.PromoCode{}}
	for i := range promos {
		m.byCode[promos[i].Code] = &promos[i]
	}
	return m
}

func (m *memPromoStore) GetByCode(_ context.Context, code string) (*model.PromoCode, error) {
	p, ok := m.byCode[strings.ToUpper(code)]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memPromoStore) List(_ context.Context) ([]model.PromoCode, error) {
	out := []model.PromoCode{}
	for _, p := range m.byCode {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memPromoStore) Create(_ context.Context, p *model.PromoCode) error {
	cp := *p
	m.byCode[cp.Code] = &cp
	return nil
}

func (m *memPromoStore) Update(_ context.Context, p *model.PromoCode) error {
	if _, ok := m.byCode[p.Code]; !ok {
		return errors.New("promo code not found")
	}
	cp := *p
	m.byCode[cp.Code] = &cp
	return nil
}

func (m *memPromoStore) Delete(_ context.Context, code string) error {
	delete(m.byCode, strings.ToUpper(code))
	return nil
}

func (m *memPromoStore) Redeem(_ context.Context, code string) error {
	p, ok := m.byCode[strings.ToUpper(code)]
	if !ok || p.Status != model.PromoActive {
		return errors.New("promo code can no longer be used")
	}
	if p.MaxUses > 0 && p.UsedCount >= p.MaxUses {
		return errors.New("promo code can no longer be used")
	}
	p.UsedCount++
	return nil
}

func (m *memPromoStore) Unredeem(_ context.Context, code string) error {
	p, ok := m.byCode[strings.ToUpper(code)]
	if !ok {
		return errors.New("promo code not found")
	}
	if p.UsedCount > 0 {
		p.UsedCount--
	}
	return nil
}

type memCheckoutStore struct {
	byCustomer map[int64]*model.CheckoutState
}

func newMemCheckoutStore() *memCheckoutStore {
	return &memCheckoutStore{byCustomer: map[int64]*model.CheckoutState{}}
}

func (m *memCheckoutStore) Get(_ context.Context, customerID int64) (*model.CheckoutState, error) {
	if st, ok := m.byCustomer[customerID]; ok {
		cp := *st
		return &cp, nil
	}
	return &model.CheckoutState{Step: model.StepPayment}, nil
}

func (m *memCheckoutStore) Save(_ context.Context, customerID int64, st *model.CheckoutState) error {
	cp := *st
	m.byCustomer[customerID] = &cp
	return nil
}

func (m *memCheckoutStore) Clear(_ context.Context, customerID int64) error {
	delete(m.byCustomer, customerID)
	return nil
}

type memOrderStore struct {
	orders map[string]*model.Order
	seq    []string
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: map[string]*model.Order{}}
}

func (m *memOrderStore) Create(_ context.Context, o *model.Order) error {
	cp := *o
	m.orders[cp.OrderID] = &cp
	m.seq = append(m.seq, cp.OrderID)
	return nil
}

func (m *memOrderStore) GetByID(_ context.Context, orderID string) (*model.Order, error) {
	o, ok := m.orders[orderID]
	if !ok {
		return nil, errors.New("order not found")
	}
	cp := *o
	return &cp, nil
}

func (m *memOrderStore) List(_ context.Context) ([]model.Order, error) {
	out := []model.Order{}
	for _, id := range m.seq {
		out = append(out, *m.orders[id])
	}
	return out, nil
}

func (m *memOrderStore) ListByStatus(_ context.Context, status string) ([]model.Order, error) {
	out := []model.Order{}
	for _, id := range m.seq {
		if m.orders[id].Status == status {
			out = append(out, *m.orders[id])
		}
	}
	return out, nil
}

func (m *memOrderStore) ListByCustomer(_ context.Context, customerID int64) ([]model.Order, error) {
	out := []model.Order{}
	for _, id := range m.seq {
		if m.orders[id].CustomerID == customerID {
			out = append(out, *m.orders[id])
		}
	}
	return out, nil
}

func (m *memOrderStore) UpdateStatus(_ context.Context, orderID, status string) error {
	o, ok := m.orders[orderID]
	if !ok {
		return fmt.Errorf("order not found")
	}
	o.Status = status
	return nil
}

func (m *memOrderStore) Stats(_ context.Context) (*model.OrderStats, error) {
	stats := &model.OrderStats{}
	customers := map[string]bool{}
	for _, o := range m.orders {
		stats.TotalOrders++
		switch o.Status {
		case model.OrderPending, model.OrderConfirmed:
			stats.PendingOrders++
		case model.OrderDelivered:
			stats.CompletedOrders++
		}
		if o.Status != model.OrderCancelled {
			stats.TotalRevenue += o.Totals.Total
		}
		customers[o.Delivery.Location.Email] = true
	}
	stats.UniqueCustomers = len(customers)
	return stats, nil
}

type memProductStore struct {
	byID map[string]*model.Product
	seq  []string
}

func newMemProductStore() *memProductStore {
	return &memProductStore{byID: map[string]*model.Product{}}
}

func (m *memProductStore) List(_ context.Context, onlyActive bool) ([]model.Product, error) {
	out := []model.Product{}
	for _, id := range m.seq {
		p := m.byID[id]
		if onlyActive && p.Status != model.ProductActive {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *memProductStore) GetByID(_ context.Context, id string) (*model.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, errors.New("product not found")
	}
	cp := *p
	return &cp, nil
}

func (m *memProductStore) ExistsID(_ context.Context, id string) (bool, error) {
	_, ok := m.byID[id]
	return ok, nil
}

func (m *memProductStore) Create(_ context.Context, p *model.Product) error {
	cp := *p
	m.byID[cp.ID] = &cp
	m.seq = append(m.seq, cp.ID)
	return nil
}

func (m *memProductStore) Update(_ context.Context, p *model.Product) error {
	if _, ok := m.byID[p.ID]; !ok {
		return errors.New("product not found")
	}
	cp := *p
	m.byID[cp.ID] = &cp
	return nil
}

func (m *memProductStore) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return errors.New("product not found")
	}
	delete(m.byID, id)
	for i, s := range m.seq {
		if s == id {
			m.seq = append(m.seq[:i], m.seq[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memProductStore) Count(_ context.Context) (int, error) {
	return len(m.byID), nil
}

type memAuthStore struct {
	byEmail map[string]*model.Auth
	nextID  int64
}

func newMemAuthStore() *memAuthStore {
	return &memAuthStore{byEmail: map[string]*model.Auth{}, nextID: 1}
}

func (m *memAuthStore) CreateUser(_ context.Context, email, passwordHash, firstName, lastName, role string) (int64, error) {
	id := m.nextID
	m.nextID++
	m.byEmail[email] = &model.Auth{
		AuthID:       id,
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
	}
	return id, nil
}

func (m *memAuthStore) GetByEmail(_ context.Context, email string) (*model.Auth, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, errors.New("user not found")
	}
	cp := *u
	return &cp, nil
}

func (m *memAuthStore) GetByID(_ context.Context, id int64) (*model.Auth, error) {
	for _, u := range m.byEmail {
		if u.AuthID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.New("user not found")
}

func (m *memAuthStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

type recordingNotifier struct {
	events []CartEvent
}

func (n *recordingNotifier) CartUpdated(_ context.Context, ev CartEvent) {
	n.events = append(n.events, ev)
}
