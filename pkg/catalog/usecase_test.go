package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memDepartmentRepo struct {
	byID map[uuid.UUID]Department
}

func (m *memDepartmentRepo) Create(ctx context.Context, d Department) error {
	m.byID[d.ID] = d
	return nil
}

func (m *memDepartmentRepo) Update(ctx context.Context, d Department) error {
	if _, ok := m.byID[d.ID]; !ok {
		return ErrNotFound
	}
	m.byID[d.ID] = d
	return nil
}

func (m *memDepartmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memDepartmentRepo) GetByID(ctx context.Context, id uuid.UUID) (Department, error) {
	d, ok := m.byID[id]
	if !ok {
		return Department{}, ErrNotFound
	}
	return d, nil
}

func (m *memDepartmentRepo) List(ctx context.Context, activeOnly bool) ([]Department, error) {
	var out []Department
	for _, d := range m.byID {
		if activeOnly && !d.Active {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

type memCategoryRepo struct {
	byID map[uuid.UUID]Category
}

func (m *memCategoryRepo) Create(ctx context.Context, c Category) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memCategoryRepo) Update(ctx context.Context, c Category) error {
	if _, ok := m.byID[c.ID]; !ok {
		return ErrNotFound
	}
	m.byID[c.ID] = c
	return nil
}

func (m *memCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

func (m *memCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (Category, error) {
	c, ok := m.byID[id]
	if !ok {
		return Category{}, ErrNotFound
	}
	return c, nil
}

func (m *memCategoryRepo) List(ctx context.Context, departmentID *uuid.UUID, activeOnly bool) ([]Category, error) {
	var out []Category
	for _, c := range m.byID {
		if departmentID != nil && c.DepartmentID != *departmentID {
			continue
		}
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type memProductRepo struct {
	byID map[uuid.UUID]Product
}

func (m *memProductRepo) Create(ctx context.Context, p Product) error {
	m.byID[p.ID] = p
	return nil
}

func (m *memProductRepo) Update(ctx context.Context, p Product) error {
	if _, ok := m.byID[p.ID]; !ok {
		return ErrNotFound
	}
	m.byID[p.ID] = p
	return nil
}

func (m *memProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

func (m *memProductRepo) GetByID(ctx context.Context, id uuid.UUID) (Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (m *memProductRepo) List(ctx context.Context, f ProductFilter, limit, offset int) ([]Product, error) {
	var out []Product
	for _, p := range m.byID {
		if f.ActiveOnly && !p.Active {
			continue
		}
		if f.FeaturedOnly && !p.Featured {
			continue
		}
		if f.DepartmentID != nil && p.DepartmentID != *f.DepartmentID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func newTestCatalog() (UseCase, *memDepartmentRepo, *memCategoryRepo, *memProductRepo) {
	d := &memDepartmentRepo{byID: map[uuid.UUID]Department{}}
	c := &memCategoryRepo{byID: map[uuid.UUID]Category{}}
	p := &memProductRepo{byID: map[uuid.UUID]Product{}}
	return NewService(d, c, p), d, c, p
}

func TestCreateDepartment(t *testing.T) {
	svc, repo, _, _ := newTestCatalog()

	d, err := svc.CreateDepartment(t.Context(), Department{Name: "  Pharmacy  ", Active: true})
	require.NoError(t, err)
	assert.Equal(t, "Pharmacy", d.Name)
	assert.NotEqual(t, uuid.Nil, d.ID)
	assert.False(t, d.CreatedAt.IsZero())
	assert.Contains(t, repo.byID, d.ID)

	_, err = svc.CreateDepartment(t.Context(), Department{Name: "   "})
	var ve ErrValidation
	assert.ErrorAs(t, err, &ve)
}

func TestCreateCategoryRequiresDepartment(t *testing.T) {
	svc, _, _, _ := newTestCatalog()

	_, err := svc.CreateCategory(t.Context(), Category{Name: "Vitamins", DepartmentID: uuid.New()})
	var ve ErrValidation
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "department does not exist", ve.Error())

	d, err := svc.CreateDepartment(t.Context(), Department{Name: "Pharmacy", Active: true})
	require.NoError(t, err)

	c, err := svc.CreateCategory(t.Context(), Category{Name: "Vitamins", DepartmentID: d.ID, Active: true})
	require.NoError(t, err)
	assert.Equal(t, d.ID, c.DepartmentID)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _, _, _ := newTestCatalog()
	ctx := t.Context()

	d, err := svc.CreateDepartment(ctx, Department{Name: "Pharmacy", Active: true})
	require.NoError(t, err)
	other, err := svc.CreateDepartment(ctx, Department{Name: "Cosmetics", Active: true})
	require.NoError(t, err)
	c, err := svc.CreateCategory(ctx, Category{Name: "Vitamins", DepartmentID: d.ID, Active: true})
	require.NoError(t, err)

	base := Product{DepartmentID: d.ID, Name: "Panadol", Price: 2500, Stock: 10, Active: true}

	var ve ErrValidation

	t.Run("valid", func(t *testing.T) {
		p := base
		p.CategoryID = &c.ID
		created, err := svc.CreateProduct(ctx, p)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
	})

	t.Run("empty name", func(t *testing.T) {
		p := base
		p.Name = " "
		_, err := svc.CreateProduct(ctx, p)
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("negative price", func(t *testing.T) {
		p := base
		p.Price = -1
		_, err := svc.CreateProduct(ctx, p)
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("negative stock", func(t *testing.T) {
		p := base
		p.Stock = -1
		_, err := svc.CreateProduct(ctx, p)
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("missing department", func(t *testing.T) {
		p := base
		p.DepartmentID = uuid.New()
		_, err := svc.CreateProduct(ctx, p)
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("missing category", func(t *testing.T) {
		p := base
		bogus := uuid.New()
		p.CategoryID = &bogus
		_, err := svc.CreateProduct(ctx, p)
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("category from another department", func(t *testing.T) {
		p := base
		p.DepartmentID = other.ID
		p.CategoryID = &c.ID
		_, err := svc.CreateProduct(ctx, p)
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "category belongs to a different department", ve.Error())
	})
}

func TestListProductsActiveOnly(t *testing.T) {
	svc, _, _, _ := newTestCatalog()
	ctx := t.Context()

	d, err := svc.CreateDepartment(ctx, Department{Name: "Pharmacy", Active: true})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, Product{DepartmentID: d.ID, Name: "Visible", Price: 100, Active: true})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, Product{DepartmentID: d.ID, Name: "Hidden", Price: 100, Active: false})
	require.NoError(t, err)

	list, err := svc.ListProducts(ctx, ProductFilter{ActiveOnly: true}, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Visible", list[0].Name)

	list, err = svc.ListProducts(ctx, ProductFilter{}, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
