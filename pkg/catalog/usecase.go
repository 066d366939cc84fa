package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UseCase bundles catalog operations for both the public storefront and the
// admin panel. Public reads always filter to active records; admin calls see
// everything.
type UseCase interface {
	CreateDepartment(ctx context.Context, d Department) (Department, error)
	UpdateDepartment(ctx context.Context, d Department) error
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
	ListDepartments(ctx context.Context, activeOnly bool) ([]Department, error)
	GetDepartment(ctx context.Context, id uuid.UUID) (Department, error)

	CreateCategory(ctx context.Context, c Category) (Category, error)
	UpdateCategory(ctx context.Context, c Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context, departmentID *uuid.UUID, activeOnly bool) ([]Category, error)

	CreateProduct(ctx context.Context, p Product) (Product, error)
	UpdateProduct(ctx context.Context, p Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProduct(ctx context.Context, id uuid.UUID) (Product, error)
	ListProducts(ctx context.Context, f ProductFilter, limit, offset int) ([]Product, error)
}

type service struct {
	departments DepartmentRepository
	categories  CategoryRepository
	products    ProductRepository
}

func NewService(departments DepartmentRepository, categories CategoryRepository, products ProductRepository) UseCase {
	return &service{departments: departments, categories: categories, products: products}
}

func (s *service) CreateDepartment(ctx context.Context, d Department) (Department, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return Department{}, ErrValidation("department name is required")
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	if err := s.departments.Create(ctx, d); err != nil {
		return Department{}, err
	}
	return d, nil
}

func (s *service) UpdateDepartment(ctx context.Context, d Department) error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrValidation("department name is required")
	}
	return s.departments.Update(ctx, d)
}

func (s *service) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	return s.departments.Delete(ctx, id)
}

func (s *service) ListDepartments(ctx context.Context, activeOnly bool) ([]Department, error) {
	return s.departments.List(ctx, activeOnly)
}

func (s *service) GetDepartment(ctx context.Context, id uuid.UUID) (Department, error) {
	return s.departments.GetByID(ctx, id)
}

func (s *service) CreateCategory(ctx context.Context, c Category) (Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return Category{}, ErrValidation("category name is required")
	}
	if _, err := s.departments.GetByID(ctx, c.DepartmentID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Category{}, ErrValidation("department does not exist")
		}
		return Category{}, err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (s *service) UpdateCategory(ctx context.Context, c Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrValidation("category name is required")
	}
	return s.categories.Update(ctx, c)
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.categories.Delete(ctx, id)
}

func (s *service) ListCategories(ctx context.Context, departmentID *uuid.UUID, activeOnly bool) ([]Category, error) {
	return s.categories.List(ctx, departmentID, activeOnly)
}

func (s *service) CreateProduct(ctx context.Context, p Product) (Product, error) {
	if err := s.validateProduct(ctx, &p); err != nil {
		return Product{}, err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if err := s.products.Create(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, p Product) error {
	if err := s.validateProduct(ctx, &p); err != nil {
		return err
	}
	return s.products.Update(ctx, p)
}

func (s *service) validateProduct(ctx context.Context, p *Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrValidation("product name is required")
	}
	if p.Price < 0 || p.ComparePrice < 0 {
		return ErrValidation("price must not be negative")
	}
	if p.Stock < 0 {
		return ErrValidation("stock must not be negative")
	}
	if _, err := s.departments.GetByID(ctx, p.DepartmentID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrValidation("department does not exist")
		}
		return err
	}
	if p.CategoryID != nil {
		cat, err := s.categories.GetByID(ctx, *p.CategoryID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return ErrValidation("category does not exist")
			}
			return err
		}
		if cat.DepartmentID != p.DepartmentID {
			return ErrValidation("category belongs to a different department")
		}
	}
	return nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.products.Delete(ctx, id)
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context, f ProductFilter, limit, offset int) ([]Product, error) {
	return s.products.List(ctx, f, limit, offset)
}
