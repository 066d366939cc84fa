package cms

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UseCase bundles CMS content operations. Public reads only see published
// sections and active sliders/banners.
type UseCase interface {
	UpsertSection(ctx context.Context, s Section) (Section, error)
	GetSection(ctx context.Context, key string, publishedOnly bool) (Section, error)
	ListSections(ctx context.Context, publishedOnly bool) ([]Section, error)
	DeleteSection(ctx context.Context, key string) error

	CreateSlider(ctx context.Context, s Slider) (Slider, error)
	UpdateSlider(ctx context.Context, s Slider) error
	DeleteSlider(ctx context.Context, id uuid.UUID) error
	ListSliders(ctx context.Context, activeOnly bool) ([]Slider, error)

	CreateBanner(ctx context.Context, b Banner) (Banner, error)
	UpdateBanner(ctx context.Context, b Banner) error
	DeleteBanner(ctx context.Context, id uuid.UUID) error
	ListBanners(ctx context.Context, placement string, activeOnly bool) ([]Banner, error)
}

type service struct {
	sections SectionRepository
	sliders  SliderRepository
	banners  BannerRepository
}

func NewService(sections SectionRepository, sliders SliderRepository, banners BannerRepository) UseCase {
	return &service{sections: sections, sliders: sliders, banners: banners}
}

func (s *service) UpsertSection(ctx context.Context, sec Section) (Section, error) {
	sec.Key = strings.ToLower(strings.TrimSpace(sec.Key))
	if sec.Key == "" {
		return Section{}, ErrValidation("section key is required")
	}
	if sec.ID == uuid.Nil {
		sec.ID = uuid.New()
	}
	sec.UpdatedAt = time.Now().UTC()
	if err := s.sections.Upsert(ctx, sec); err != nil {
		return Section{}, err
	}
	return sec, nil
}

func (s *service) GetSection(ctx context.Context, key string, publishedOnly bool) (Section, error) {
	sec, err := s.sections.GetByKey(ctx, strings.ToLower(strings.TrimSpace(key)))
	if err != nil {
		return Section{}, err
	}
	if publishedOnly && !sec.Published {
		return Section{}, ErrNotFound
	}
	return sec, nil
}

func (s *service) ListSections(ctx context.Context, publishedOnly bool) ([]Section, error) {
	return s.sections.List(ctx, publishedOnly)
}

func (s *service) DeleteSection(ctx context.Context, key string) error {
	return s.sections.Delete(ctx, strings.ToLower(strings.TrimSpace(key)))
}

func (s *service) CreateSlider(ctx context.Context, sl Slider) (Slider, error) {
	if strings.TrimSpace(sl.Image) == "" {
		return Slider{}, ErrValidation("slider image is required")
	}
	if sl.ID == uuid.Nil {
		sl.ID = uuid.New()
	}
	if err := s.sliders.Create(ctx, sl); err != nil {
		return Slider{}, err
	}
	return sl, nil
}

func (s *service) UpdateSlider(ctx context.Context, sl Slider) error {
	if strings.TrimSpace(sl.Image) == "" {
		return ErrValidation("slider image is required")
	}
	return s.sliders.Update(ctx, sl)
}

func (s *service) DeleteSlider(ctx context.Context, id uuid.UUID) error {
	return s.sliders.Delete(ctx, id)
}

func (s *service) ListSliders(ctx context.Context, activeOnly bool) ([]Slider, error) {
	return s.sliders.List(ctx, activeOnly)
}

func (s *service) CreateBanner(ctx context.Context, b Banner) (Banner, error) {
	if strings.TrimSpace(b.Image) == "" {
		return Banner{}, ErrValidation("banner image is required")
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if err := s.banners.Create(ctx, b); err != nil {
		return Banner{}, err
	}
	return b, nil
}

func (s *service) UpdateBanner(ctx context.Context, b Banner) error {
	if strings.TrimSpace(b.Image) == "" {
		return ErrValidation("banner image is required")
	}
	return s.banners.Update(ctx, b)
}

func (s *service) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	return s.banners.Delete(ctx, id)
}

func (s *service) ListBanners(ctx context.Context, placement string, activeOnly bool) ([]Banner, error) {
	return s.banners.List(ctx, placement, activeOnly)
}
