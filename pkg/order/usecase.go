package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dwatsonpk/storefront/pkg/cart"
	"github.com/dwatsonpk/storefront/pkg/catalog"
)

// CheckoutInput carries the delivery details for a new order.
type CheckoutInput struct {
	Name    string
	Phone   string
	Address string
	City    string
	Notes   string
}

// UseCase describes order behavior for customers and admins.
type UseCase interface {
	Checkout(ctx context.Context, userID uuid.UUID, in CheckoutInput) (Order, error)
	ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Order, error)
	GetMine(ctx context.Context, userID, id uuid.UUID) (Order, error)
	ListAll(ctx context.Context, f Filter, limit, offset int) ([]Order, error)
	GetAny(ctx context.Context, id uuid.UUID) (Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

type service struct {
	repo     Repository
	carts    cart.Repository
	products catalog.ProductRepository
}

func NewService(repo Repository, carts cart.Repository, products catalog.ProductRepository) UseCase {
	return &service{repo: repo, carts: carts, products: products}
}

// Checkout turns the user's cart into a pending order. Items are re-priced
// from the current product rows; the stored cart snapshot is only a display
// convenience.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, in CheckoutInput) (Order, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Phone) == "" || strings.TrimSpace(in.Address) == "" {
		return Order{}, ErrValidation("name, phone, and address are required")
	}
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return Order{}, err
	}
	if len(c.Items) == 0 {
		return Order{}, ErrValidation("cart is empty")
	}

	items := make([]OrderItem, 0, len(c.Items))
	var subtotal int64
	for _, it := range c.Items {
		p, err := s.products.GetByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return Order{}, ErrValidation("product " + it.Name + " is no longer available")
			}
			return Order{}, err
		}
		if !p.Active {
			return Order{}, ErrValidation("product " + p.Name + " is no longer available")
		}
		items = append(items, OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  it.Quantity,
		})
		subtotal += p.Price * int64(it.Quantity)
	}

	now := time.Now().UTC()
	o := Order{
		ID:        uuid.New(),
		UserID:    userID,
		Items:     items,
		Subtotal:  subtotal,
		Status:    StatusPending,
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return Order{}, err
	}
	if err := s.carts.Clear(ctx, userID); err != nil {
		// The order exists; a stale cart is the lesser failure.
		return o, nil
	}
	return o, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *service) GetMine(ctx context.Context, userID, id uuid.UUID) (Order, error) {
	return s.repo.GetByIDForUser(ctx, userID, id)
}

func (s *service) ListAll(ctx context.Context, f Filter, limit, offset int) ([]Order, error) {
	return s.repo.ListAll(ctx, f, limit, offset)
}

func (s *service) GetAny(ctx context.Context, id uuid.UUID) (Order, error) {
	return s.repo.GetByIDAny(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if !status.Valid() {
		return ErrValidation("unknown order status")
	}
	current, err := s.repo.GetByIDAny(ctx, id)
	if err != nil {
		return err
	}
	if !current.Status.CanTransition(status) {
		return ErrValidation("cannot change status from " + string(current.Status) + " to " + string(status))
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
