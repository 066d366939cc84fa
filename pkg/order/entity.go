package order

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

// Status of an order. Transitions are linear with a cancel escape hatch.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is allowed.
// pending → confirmed → shipped → delivered; cancel only before shipping.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusShipped || next == StatusCancelled
	case StatusShipped:
		return next == StatusDelivered
	}
	return false
}

// OrderItem snapshots product name and unit price at checkout time, so later
// catalog edits never rewrite history.
type OrderItem struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice int64
	Quantity  int
}

type Order struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Items     []OrderItem
	Subtotal  int64
	Status    Status
	Name      string
	Phone     string
	Address   string
	City      string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter narrows admin order listings.
type Filter struct {
	Status *Status
}

// Repository is the persistence port for orders.
type Repository interface {
	Create(ctx context.Context, o Order) error
	GetByIDForUser(ctx context.Context, userID, id uuid.UUID) (Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Order, error)
	GetByIDAny(ctx context.Context, id uuid.UUID) (Order, error)
	ListAll(ctx context.Context, f Filter, limit, offset int) ([]Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}
