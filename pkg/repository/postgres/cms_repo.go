package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dwatsonpk/storefront/pkg/cms"
)

// SectionRepository implements cms.SectionRepository (keyed content blocks).
type SectionRepository struct {
	pool *pgxpool.Pool
}

func NewSectionRepository(pool *pgxpool.Pool) (*SectionRepository, error) {
	r := &SectionRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SectionRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sections (
			id UUID PRIMARY KEY,
			key TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL DEFAULT '',
			published BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

func (r *SectionRepository) Upsert(ctx context.Context, s cms.Section) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sections (id, key, title, body, published, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key) DO UPDATE
		SET title = EXCLUDED.title, body = EXCLUDED.body,
			published = EXCLUDED.published, updated_at = EXCLUDED.updated_at
	`, s.ID, s.Key, s.Title, s.Body, s.Published, s.UpdatedAt)
	return err
}

func (r *SectionRepository) GetByKey(ctx context.Context, key string) (cms.Section, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, key, title, body, published, updated_at
		FROM sections WHERE key = $1
	`, key)
	var s cms.Section
	var updated time.Time
	if err := row.Scan(&s.ID, &s.Key, &s.Title, &s.Body, &s.Published, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cms.Section{}, cms.ErrNotFound
		}
		return cms.Section{}, err
	}
	s.UpdatedAt = updated.UTC()
	return s, nil
}

func (r *SectionRepository) List(ctx context.Context, publishedOnly bool) ([]cms.Section, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, key, title, body, published, updated_at
		FROM sections
		WHERE NOT $1 OR published
		ORDER BY key
	`, publishedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []cms.Section
	for rows.Next() {
		var s cms.Section
		var updated time.Time
		if err := rows.Scan(&s.ID, &s.Key, &s.Title, &s.Body, &s.Published, &updated); err != nil {
			return nil, err
		}
		s.UpdatedAt = updated.UTC()
		res = append(res, s)
	}
	return res, rows.Err()
}

func (r *SectionRepository) Delete(ctx context.Context, key string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sections WHERE key = $1`, key)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return cms.ErrNotFound
	}
	return nil
}

// SliderRepository implements cms.SliderRepository.
type SliderRepository struct {
	pool *pgxpool.Pool
}

func NewSliderRepository(pool *pgxpool.Pool) (*SliderRepository, error) {
	r := &SliderRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SliderRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sliders (
			id UUID PRIMARY KEY,
			image TEXT NOT NULL,
			caption TEXT NOT NULL DEFAULT '',
			link_url TEXT NOT NULL DEFAULT '',
			sort_order INT NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE
		);
	`)
	return err
}

func (r *SliderRepository) Create(ctx context.Context, s cms.Slider) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sliders (id, image, caption, link_url, sort_order, active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, s.ID, s.Image, s.Caption, s.LinkURL, s.SortOrder, s.Active)
	return err
}

func (r *SliderRepository) Update(ctx context.Context, s cms.Slider) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE sliders
		SET image = $2, caption = $3, link_url = $4, sort_order = $5, active = $6
		WHERE id = $1
	`, s.ID, s.Image, s.Caption, s.LinkURL, s.SortOrder, s.Active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return cms.ErrNotFound
	}
	return nil
}

func (r *SliderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sliders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return cms.ErrNotFound
	}
	return nil
}

func (r *SliderRepository) List(ctx context.Context, activeOnly bool) ([]cms.Slider, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, image, caption, link_url, sort_order, active
		FROM sliders
		WHERE NOT $1 OR active
		ORDER BY sort_order
	`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []cms.Slider
	for rows.Next() {
		var s cms.Slider
		if err := rows.Scan(&s.ID, &s.Image, &s.Caption, &s.LinkURL, &s.SortOrder, &s.Active); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// BannerRepository implements cms.BannerRepository.
type BannerRepository struct {
	pool *pgxpool.Pool
}

func NewBannerRepository(pool *pgxpool.Pool) (*BannerRepository, error) {
	r := &BannerRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *BannerRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS banners (
			id UUID PRIMARY KEY,
			image TEXT NOT NULL,
			link_url TEXT NOT NULL DEFAULT '',
			placement TEXT NOT NULL DEFAULT '',
			active BOOLEAN NOT NULL DEFAULT TRUE
		);
	`)
	return err
}

func (r *BannerRepository) Create(ctx context.Context, b cms.Banner) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO banners (id, image, link_url, placement, active)
		VALUES ($1, $2, $3, $4, $5)
	`, b.ID, b.Image, b.LinkURL, b.Placement, b.Active)
	return err
}

func (r *BannerRepository) Update(ctx context.Context, b cms.Banner) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE banners
		SET image = $2, link_url = $3, placement = $4, active = $5
		WHERE id = $1
	`, b.ID, b.Image, b.LinkURL, b.Placement, b.Active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return cms.ErrNotFound
	}
	return nil
}

func (r *BannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return cms.ErrNotFound
	}
	return nil
}

func (r *BannerRepository) List(ctx context.Context, placement string, activeOnly bool) ([]cms.Banner, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, image, link_url, placement, active
		FROM banners
		WHERE ($1 = '' OR placement = $1)
		AND (NOT $2 OR active)
		ORDER BY placement
	`, placement, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []cms.Banner
	for rows.Next() {
		var b cms.Banner
		if err := rows.Scan(&b.ID, &b.Image, &b.LinkURL, &b.Placement, &b.Active); err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, rows.Err()
}
