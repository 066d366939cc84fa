package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dwatsonpk/storefront/pkg/catalog"
)

// UseCase describes cart behavior for an authenticated user.
type UseCase interface {
	Get(ctx context.Context, userID uuid.UUID) (Cart, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (Cart, error)
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (Cart, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo     Repository
	products catalog.ProductRepository
}

func NewService(repo Repository, products catalog.ProductRepository) UseCase {
	return &service{repo: repo, products: products}
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (Cart, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (Cart, error) {
	if quantity < 1 {
		return Cart{}, ErrValidation("quantity must be at least 1")
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return Cart{}, ErrNotFound
		}
		return Cart{}, err
	}
	if !p.Active {
		return Cart{}, ErrValidation("product is not available")
	}
	item := CartItem{ProductID: p.ID, Name: p.Name, UnitPrice: p.Price, Quantity: quantity}
	if err := s.repo.AddItem(ctx, userID, item); err != nil {
		return Cart{}, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (Cart, error) {
	if quantity < 0 {
		return Cart{}, ErrValidation("quantity must not be negative")
	}
	if quantity == 0 {
		if err := s.repo.RemoveItem(ctx, userID, productID); err != nil {
			return Cart{}, err
		}
	} else if err := s.repo.SetQuantity(ctx, userID, productID, quantity); err != nil {
		return Cart{}, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (Cart, error) {
	if err := s.repo.RemoveItem(ctx, userID, productID); err != nil {
		return Cart{}, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Clear(ctx, userID)
}
