package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dwatsonpk/storefront/pkg/media"
)

// MediaRepository implements media.Repository for upload metadata.
type MediaRepository struct {
	pool *pgxpool.Pool
}

func NewMediaRepository(pool *pgxpool.Pool) (*MediaRepository, error) {
	r := &MediaRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MediaRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS media (
			id UUID PRIMARY KEY,
			key TEXT NOT NULL UNIQUE,
			filename TEXT NOT NULL,
			content_type TEXT NOT NULL,
			size BIGINT NOT NULL,
			uploaded_by UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

func (r *MediaRepository) Create(ctx context.Context, m media.Media) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO media (id, key, filename, content_type, size, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, m.ID, m.Key, m.Filename, m.ContentType, m.Size, m.UploadedBy, m.CreatedAt)
	return err
}

func (r *MediaRepository) GetByID(ctx context.Context, id uuid.UUID) (media.Media, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, key, filename, content_type, size, uploaded_by, created_at
		FROM media WHERE id = $1
	`, id)
	return scanMedia(row)
}

func (r *MediaRepository) List(ctx context.Context, limit, offset int) ([]media.Media, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, key, filename, content_type, size, uploaded_by, created_at
		FROM media
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []media.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func (r *MediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return media.ErrNotFound
	}
	return nil
}

func scanMedia(row pgx.Row) (media.Media, error) {
	var m media.Media
	var created time.Time
	if err := row.Scan(&m.ID, &m.Key, &m.Filename, &m.ContentType, &m.Size, &m.UploadedBy, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return media.Media{}, media.ErrNotFound
		}
		return media.Media{}, err
	}
	m.CreatedAt = created.UTC()
	return m, nil
}
