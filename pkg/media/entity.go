package media

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

// Media is the metadata row for one uploaded object. The bytes live in the
// object store under Key.
type Media struct {
	ID          uuid.UUID
	Key         string
	Filename    string
	ContentType string
	Size        int64
	UploadedBy  uuid.UUID
	CreatedAt   time.Time
}

// Repository is the persistence port for media metadata.
type Repository interface {
	Create(ctx context.Context, m Media) error
	GetByID(ctx context.Context, id uuid.UUID) (Media, error)
	List(ctx context.Context, limit, offset int) ([]Media, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ObjectStorage is the blob store port (S3-compatible).
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
}
