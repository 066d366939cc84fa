package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwatsonpk/storefront/pkg/catalog"
)

type memCartRepo struct {
	items map[uuid.UUID][]CartItem
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{items: map[uuid.UUID][]CartItem{}}
}

func (m *memCartRepo) Get(ctx context.Context, userID uuid.UUID) (Cart, error) {
	return Cart{UserID: userID, Items: m.items[userID]}, nil
}

func (m *memCartRepo) AddItem(ctx context.Context, userID uuid.UUID, item CartItem) error {
	for i, it := range m.items[userID] {
		if it.ProductID == item.ProductID {
			m.items[userID][i].Quantity += item.Quantity
			return nil
		}
	}
	m.items[userID] = append(m.items[userID], item)
	return nil
}

func (m *memCartRepo) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	for i, it := range m.items[userID] {
		if it.ProductID == productID {
			m.items[userID][i].Quantity = quantity
			return nil
		}
	}
	return ErrNotFound
}

func (m *memCartRepo) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	kept := m.items[userID][:0]
	for _, it := range m.items[userID] {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	m.items[userID] = kept
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
	if _, ok := f.products[p.ID]; !ok {
		return catalog.ErrNotFound
	}
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
	out := make([]catalog.Product, 0, len(f.products))
	for _, p := range f.products {
		if filter.ActiveOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func testProduct(price int64, active bool) catalog.Product {
	return catalog.Product{ID: uuid.New(), Name: "Panadol", Price: price, Active: active}
}

func TestAddItem(t *testing.T) {
	p := testProduct(2500, true)
	svc := NewService(newMemCartRepo(), newFakeProductRepo(p))
	userID := uuid.New()
	ctx := t.Context()

	c, err := svc.AddItem(ctx, userID, p.ID, 2)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, p.Name, c.Items[0].Name)
	assert.Equal(t, p.Price, c.Items[0].UnitPrice)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, int64(5000), c.Total())

	// Same product again increments the row instead of duplicating it.
	c, err = svc.AddItem(ctx, userID, p.ID, 1)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
}

func TestAddItemRejections(t *testing.T) {
	active := testProduct(1000, true)
	inactive := testProduct(1000, false)
	svc := NewService(newMemCartRepo(), newFakeProductRepo(active, inactive))
	userID := uuid.New()

	_, err := svc.AddItem(t.Context(), userID, active.ID, 0)
	var ve ErrValidation
	assert.ErrorAs(t, err, &ve)

	_, err = svc.AddItem(t.Context(), userID, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddItem(t.Context(), userID, inactive.ID, 1)
	assert.ErrorAs(t, err, &ve)
}

func TestSetQuantity(t *testing.T) {
	p := testProduct(1000, true)
	svc := NewService(newMemCartRepo(), newFakeProductRepo(p))
	userID := uuid.New()
	ctx := t.Context()

	_, err := svc.AddItem(ctx, userID, p.ID, 1)
	require.NoError(t, err)

	c, err := svc.SetQuantity(ctx, userID, p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Items[0].Quantity)

	// Zero removes the row.
	c, err = svc.SetQuantity(ctx, userID, p.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	_, err = svc.SetQuantity(ctx, userID, p.ID, -1)
	var ve ErrValidation
	assert.ErrorAs(t, err, &ve)
}

func TestRemoveAndClear(t *testing.T) {
	p1 := testProduct(1000, true)
	p2 := testProduct(2000, true)
	svc := NewService(newMemCartRepo(), newFakeProductRepo(p1, p2))
	userID := uuid.New()
	ctx := t.Context()

	_, err := svc.AddItem(ctx, userID, p1.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, p2.ID, 1)
	require.NoError(t, err)

	c, err := svc.RemoveItem(ctx, userID, p1.ID)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, p2.ID, c.Items[0].ProductID)

	require.NoError(t, svc.Clear(ctx, userID))
	c, err = svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}
