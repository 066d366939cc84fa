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

// DepartmentRepository implements catalog.DepartmentRepository.
type DepartmentRepository struct {
	pool *pgxpool.Pool
}

func NewDepartmentRepository(pool *pgxpool.Pool) (*DepartmentRepository, error) {
	r := &DepartmentRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *DepartmentRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS departments (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			active BOOLEAN NOT NULL DEFAULT TRUE,
			sort_order INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

func (r *DepartmentRepository) Create(ctx context.Context, d catalog.Department) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO departments (id, name, description, image, active, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, d.ID, d.Name, d.Description, d.Image, d.Active, d.SortOrder, d.CreatedAt)
	return err
}

func (r *DepartmentRepository) Update(ctx context.Context, d catalog.Department) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE departments
		SET name = $2, description = $3, image = $4, active = $5, sort_order = $6
		WHERE id = $1
	`, d.ID, d.Name, d.Description, d.Image, d.Active, d.SortOrder)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *DepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id uuid.UUID) (catalog.Department, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, image, active, sort_order, created_at
		FROM departments WHERE id = $1
	`, id)
	return scanDepartment(row)
}

func (r *DepartmentRepository) List(ctx context.Context, activeOnly bool) ([]catalog.Department, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, image, active, sort_order, created_at
		FROM departments
		WHERE NOT $1 OR active
		ORDER BY sort_order, name
	`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []catalog.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}

func scanDepartment(row pgx.Row) (catalog.Department, error) {
	var d catalog.Department
	var created time.Time
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Image, &d.Active, &d.SortOrder, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Department{}, catalog.ErrNotFound
		}
		return catalog.Department{}, err
	}
	d.CreatedAt = created.UTC()
	return d, nil
}
