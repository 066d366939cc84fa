package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dwatsonpk/storefront/pkg/contact"
)

// ContactRepository implements contact.Repository.
type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) (*ContactRepository, error) {
	r := &ContactRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ContactRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS contact_messages (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

func (r *ContactRepository) Create(ctx context.Context, m contact.Message) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO contact_messages (id, name, email, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, m.ID, m.Name, m.Email, m.Body, m.CreatedAt)
	return err
}

func (r *ContactRepository) List(ctx context.Context, limit, offset int) ([]contact.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, body, created_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []contact.Message
	for rows.Next() {
		var m contact.Message
		var created time.Time
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &created); err != nil {
			return nil, err
		}
		m.CreatedAt = created.UTC()
		res = append(res, m)
	}
	return res, rows.Err()
}
