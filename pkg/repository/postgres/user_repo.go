package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dwatsonpk/storefront/pkg/auth"
)

// UserRepository implements auth.UserRepository backed by PostgreSQL (pgx).
// The unique constraint on email is the authoritative duplicate guard; a
// concurrent double-registration loses the race here, not in the use case.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	repo := &UserRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *UserRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL CHECK (name <> ''),
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, phone, role, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, user.ID, user.Name, auth.NormalizeEmail(user.Email), user.PasswordHash,
		user.Phone, string(user.Role), user.Active, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return auth.ErrUserAlreadyExists
			case "23502", "23514": // not_null_violation, check_violation
				return auth.ErrValidation("invalid user record: " + pgErr.Message)
			}
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, phone, role, active, created_at
		FROM users WHERE email = $1
	`, auth.NormalizeEmail(email)))
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, phone, role, active, created_at
		FROM users WHERE id = $1
	`, id))
}

func (r *UserRepository) scanUser(row pgx.Row) (auth.User, error) {
	var user auth.User
	var role string
	var createdAt time.Time
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Phone, &role, &user.Active, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	user.Role = auth.Role(role)
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
