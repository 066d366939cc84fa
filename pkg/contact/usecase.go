package contact

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dwatsonpk/storefront/pkg/auth"
)

// ErrValidation carries a user-safe description of a rejected input.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// Message is one submission from the public contact form.
type Message struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Body      string
	CreatedAt time.Time
}

// Repository is the persistence port for contact messages.
type Repository interface {
	Create(ctx context.Context, m Message) error
	List(ctx context.Context, limit, offset int) ([]Message, error)
}

// UseCase describes contact-form behavior.
type UseCase interface {
	Submit(ctx context.Context, name, email, body string) (Message, error)
	List(ctx context.Context, limit, offset int) ([]Message, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Submit(ctx context.Context, name, email, body string) (Message, error) {
	name = strings.TrimSpace(name)
	body = strings.TrimSpace(body)
	email = auth.NormalizeEmail(email)
	if name == "" || email == "" || body == "" {
		return Message{}, ErrValidation("please provide name, email, and message")
	}
	if !auth.ValidEmail(email) {
		return Message{}, ErrValidation("please provide a valid email address")
	}
	m := Message{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return Message{}, err
	}
	return m, nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Message, error) {
	return s.repo.List(ctx, limit, offset)
}
