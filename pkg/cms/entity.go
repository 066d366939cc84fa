package cms

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

// Section is a keyed content block (about text, footer, homepage blurbs).
// Key is unique; admin writes upsert by key.
type Section struct {
	ID        uuid.UUID
	Key       string
	Title     string
	Body      string
	Published bool
	UpdatedAt time.Time
}

// Slider is one homepage carousel entry.
type Slider struct {
	ID        uuid.UUID
	Image     string
	Caption   string
	LinkURL   string
	SortOrder int
	Active    bool
}

// Banner is a standalone promotional image pinned to a placement slot.
type Banner struct {
	ID        uuid.UUID
	Image     string
	LinkURL   string
	Placement string
	Active    bool
}

// SectionRepository is the persistence port for sections.
type SectionRepository interface {
	Upsert(ctx context.Context, s Section) error
	GetByKey(ctx context.Context, key string) (Section, error)
	List(ctx context.Context, publishedOnly bool) ([]Section, error)
	Delete(ctx context.Context, key string) error
}

// SliderRepository is the persistence port for sliders.
type SliderRepository interface {
	Create(ctx context.Context, s Slider) error
	Update(ctx context.Context, s Slider) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]Slider, error)
}

// BannerRepository is the persistence port for banners.
type BannerRepository interface {
	Create(ctx context.Context, b Banner) error
	Update(ctx context.Context, b Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, placement string, activeOnly bool) ([]Banner, error)
}
