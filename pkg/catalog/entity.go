package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

// ErrValidation carries a user-safe description of a rejected input.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// Department is a top-level storefront division (e.g. Pharmacy, Cosmetics).
type Department struct {
	ID          uuid.UUID
	Name        string
	Description string
	Image       string
	Active      bool
	SortOrder   int
	CreatedAt   time.Time
}

// Category belongs to exactly one department.
type Category struct {
	ID           uuid.UUID
	DepartmentID uuid.UUID
	Name         string
	Description  string
	Image        string
	Active       bool
	CreatedAt    time.Time
}

// Product prices are in minor currency units (paisa), never floats.
type Product struct {
	ID           uuid.UUID
	DepartmentID uuid.UUID
	CategoryID   *uuid.UUID
	Name         string
	Description  string
	Price        int64
	ComparePrice int64
	Images       []string
	Stock        int
	Featured     bool
	Active       bool
	CreatedAt    time.Time
}

// ProductFilter narrows product listings. ActiveOnly is forced on for the
// public surface.
type ProductFilter struct {
	DepartmentID *uuid.UUID
	CategoryID   *uuid.UUID
	FeaturedOnly bool
	Search       string
	ActiveOnly   bool
}

// DepartmentRepository is the persistence port for departments.
type DepartmentRepository interface {
	Create(ctx context.Context, d Department) error
	Update(ctx context.Context, d Department) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (Department, error)
	List(ctx context.Context, activeOnly bool) ([]Department, error)
}

// CategoryRepository is the persistence port for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c Category) error
	Update(ctx context.Context, c Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (Category, error)
	List(ctx context.Context, departmentID *uuid.UUID, activeOnly bool) ([]Category, error)
}

// ProductRepository is the persistence port for products.
type ProductRepository interface {
	Create(ctx context.Context, p Product) error
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	List(ctx context.Context, f ProductFilter, limit, offset int) ([]Product, error)
}
