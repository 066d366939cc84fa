package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dwatsonpk/storefront/pkg/catalog"
)

// CategoryRepository implements catalog.CategoryRepository.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) (*CategoryRepository, error) {
	r := &CategoryRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *CategoryRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			department_id UUID NOT NULL REFERENCES departments(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_categories_department ON categories(department_id);
	`)
	return err
}

func (r *CategoryRepository) Create(ctx context.Context, c catalog.Category) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (id, department_id, name, description, image, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.DepartmentID, c.Name, c.Description, c.Image, c.Active, c.CreatedAt)
	return err
}

func (r *CategoryRepository) Update(ctx context.Context, c catalog.Category) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE categories
		SET department_id = $2, name = $3, description = $4, image = $5, active = $6
		WHERE id = $1
	`, c.ID, c.DepartmentID, c.Name, c.Description, c.Image, c.Active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (catalog.Category, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, department_id, name, description, image, active, created_at
		FROM categories WHERE id = $1
	`, id)
	return scanCategory(row)
}

func (r *CategoryRepository) List(ctx context.Context, departmentID *uuid.UUID, activeOnly bool) ([]catalog.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, department_id, name, description, image, active, created_at
		FROM categories
		WHERE ($1::uuid IS NULL OR department_id = $1)
		AND (NOT $2 OR active)
		ORDER BY name
	`, departmentID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []catalog.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func scanCategory(row pgx.Row) (catalog.Category, error) {
	var c catalog.Category
	var created time.Time
	if err := row.Scan(&c.ID, &c.DepartmentID, &c.Name, &c.Description, &c.Image, &c.Active, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Category{}, catalog.ErrNotFound
		}
		return catalog.Category{}, err
	}
	c.CreatedAt = created.UTC()
	return c, nil
}
