package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

// ErrValidation carries a user-safe description of a rejected input.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// CartItem snapshots the product name and unit price at add time; checkout
// re-prices from the current product rows.
type CartItem struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice int64
	Quantity  int
}

// Cart holds one user's pending items.
type Cart struct {
	UserID uuid.UUID
	Items  []CartItem
}

// Total returns the cart subtotal in minor currency units.
func (c Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return total
}

// Repository is the persistence port for carts. A user with no rows has an
// empty cart, not a missing one.
type Repository interface {
	Get(ctx context.Context, userID uuid.UUID) (Cart, error)
	// AddItem inserts the item or increments the quantity of an existing row.
	AddItem(ctx context.Context, userID uuid.UUID, item CartItem) error
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}
