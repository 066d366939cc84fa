package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwatsonpk/storefront/pkg/cart"
	"github.com/dwatsonpk/storefront/pkg/catalog"
)

type memOrderRepo struct {
	orders map[uuid.UUID]Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[uuid.UUID]Order{}}
}

func (m *memOrderRepo) Create(ctx context.Context, o Order) error {
	m.orders[o.ID] = o
	return nil
}

func (m *memOrderRepo) GetByIDForUser(ctx context.Context, userID, id uuid.UUID) (Order, error) {
	o, ok := m.orders[id]
	if !ok || o.UserID != userID {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (m *memOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Order, error) {
	var out []Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOrderRepo) GetByIDAny(ctx context.Context, id uuid.UUID) (Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (m *memOrderRepo) ListAll(ctx context.Context, f Filter, limit, offset int) ([]Order, error) {
	var out []Order
	for _, o := range m.orders {
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (m *memOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	o, ok := m.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	m.orders[id] = o
	return nil
}

type memCartRepo struct {
	items map[uuid.UUID][]cart.CartItem
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{items: map[uuid.UUID][]cart.CartItem{}}
}

func (m *memCartRepo) Get(ctx context.Context, userID uuid.UUID) (cart.Cart, error) {
	return cart.Cart{UserID: userID, Items: m.items[userID]}, nil
}

func (m *memCartRepo) AddItem(ctx context.Context, userID uuid.UUID, item cart.CartItem) error {
	m.items[userID] = append(m.items[userID], item)
	return nil
}

func (m *memCartRepo) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	return nil
}

func (m *memCartRepo) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return nil
}

func (m *memCartRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	delete(m.items, userID)
	return nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]catalog.Product
}

func newFakeProductRepo(products ...catalog.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: map[uuid.UUID]catalog.Product{}}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) Create(ctx context.Context, p catalog.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p catalog.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) List(ctx context.Context, filter catalog.ProductFilter, limit, offset int) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func delivery() CheckoutInput {
	return CheckoutInput{Name: "Dave", Phone: "0300-1234567", Address: "12 Mall Road", City: "Lahore"}
}

func TestCheckout(t *testing.T) {
	p := catalog.Product{ID: uuid.New(), Name: "Panadol", Price: 2500, Active: true}
	orders := newMemOrderRepo()
	carts := newMemCartRepo()
	userID := uuid.New()
	// Stale snapshot price; checkout must use the current catalog price.
	carts.items[userID] = []cart.CartItem{{ProductID: p.ID, Name: p.Name, UnitPrice: 1, Quantity: 2}}

	svc := NewService(orders, carts, newFakeProductRepo(p))
	o, err := svc.Checkout(t.Context(), userID, delivery())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, userID, o.UserID)
	require.Len(t, o.Items, 1)
	assert.Equal(t, int64(2500), o.Items[0].UnitPrice)
	assert.Equal(t, int64(5000), o.Subtotal)

	// The cart is emptied after a successful checkout.
	assert.Empty(t, carts.items[userID])

	got, err := svc.GetMine(t.Context(), userID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
}

func TestCheckoutRejections(t *testing.T) {
	p := catalog.Product{ID: uuid.New(), Name: "Panadol", Price: 2500, Active: true}
	gone := uuid.New()
	inactive := catalog.Product{ID: uuid.New(), Name: "Old Stock", Price: 100, Active: false}

	newSvc := func(items ...cart.CartItem) (UseCase, uuid.UUID) {
		carts := newMemCartRepo()
		userID := uuid.New()
		carts.items[userID] = items
		return NewService(newMemOrderRepo(), carts, newFakeProductRepo(p, inactive)), userID
	}

	var ve ErrValidation

	t.Run("missing delivery fields", func(t *testing.T) {
		svc, userID := newSvc(cart.CartItem{ProductID: p.ID, Quantity: 1})
		_, err := svc.Checkout(t.Context(), userID, CheckoutInput{Name: "Dave"})
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("empty cart", func(t *testing.T) {
		svc, userID := newSvc()
		_, err := svc.Checkout(t.Context(), userID, delivery())
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("product removed", func(t *testing.T) {
		svc, userID := newSvc(cart.CartItem{ProductID: gone, Name: "Gone", Quantity: 1})
		_, err := svc.Checkout(t.Context(), userID, delivery())
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("product deactivated", func(t *testing.T) {
		svc, userID := newSvc(cart.CartItem{ProductID: inactive.ID, Quantity: 1})
		_, err := svc.Checkout(t.Context(), userID, delivery())
		assert.ErrorAs(t, err, &ve)
	})
}

func TestStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusShipped},
		{StatusConfirmed, StatusCancelled},
		{StatusShipped, StatusDelivered},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusShipped},
		{StatusPending, StatusDelivered},
		{StatusShipped, StatusCancelled},
		{StatusDelivered, StatusCancelled},
		{StatusDelivered, StatusPending},
		{StatusCancelled, StatusConfirmed},
	}
	for _, tc := range denied {
		assert.False(t, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestUpdateStatus(t *testing.T) {
	orders := newMemOrderRepo()
	id := uuid.New()
	orders.orders[id] = Order{ID: id, Status: StatusPending}
	svc := NewService(orders, newMemCartRepo(), newFakeProductRepo())
	ctx := t.Context()

	require.NoError(t, svc.UpdateStatus(ctx, id, StatusConfirmed))
	assert.Equal(t, StatusConfirmed, orders.orders[id].Status)

	var ve ErrValidation
	assert.ErrorAs(t, svc.UpdateStatus(ctx, id, StatusDelivered), &ve)
	assert.ErrorAs(t, svc.UpdateStatus(ctx, id, Status("bogus")), &ve)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, uuid.New(), StatusConfirmed), ErrNotFound)
}
