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

// ProductRepository implements catalog.ProductRepository. Images are stored
// as a text array; prices in minor currency units.
type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) (*ProductRepository, error) {
	r := &ProductRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ProductRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			department_id UUID NOT NULL REFERENCES departments(id) ON DELETE CASCADE,
			category_id UUID REFERENCES categories(id) ON DELETE SET NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price BIGINT NOT NULL CHECK (price >= 0),
			compare_price BIGINT NOT NULL DEFAULT 0 CHECK (compare_price >= 0),
			images TEXT[] NOT NULL DEFAULT '{}',
			stock INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_products_department ON products(department_id);
		CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
	`)
	return err
}

func (r *ProductRepository) Create(ctx context.Context, p catalog.Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, department_id, category_id, name, description,
			price, compare_price, images, stock, featured, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, p.ID, p.DepartmentID, p.CategoryID, p.Name, p.Description,
		p.Price, p.ComparePrice, p.Images, p.Stock, p.Featured, p.Active, p.CreatedAt)
	return err
}

func (r *ProductRepository) Update(ctx context.Context, p catalog.Product) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE products
		SET department_id = $2, category_id = $3, name = $4, description = $5,
			price = $6, compare_price = $7, images = $8, stock = $9, featured = $10, active = $11
		WHERE id = $1
	`, p.ID, p.DepartmentID, p.CategoryID, p.Name, p.Description,
		p.Price, p.ComparePrice, p.Images, p.Stock, p.Featured, p.Active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (catalog.Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, department_id, category_id, name, description,
			price, compare_price, images, stock, featured, active, created_at
		FROM products WHERE id = $1
	`, id)
	return scanProduct(row)
}

func (r *ProductRepository) List(ctx context.Context, f catalog.ProductFilter, limit, offset int) ([]catalog.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, department_id, category_id, name, description,
			price, compare_price, images, stock, featured, active, created_at
		FROM products
		WHERE ($1::uuid IS NULL OR department_id = $1)
		AND ($2::uuid IS NULL OR category_id = $2)
		AND (NOT $3 OR featured)
		AND (NOT $4 OR active)
		AND ($5 = '' OR name ILIKE '%' || $5 || '%')
		ORDER BY created_at DESC
		LIMIT $6 OFFSET $7
	`, f.DepartmentID, f.CategoryID, f.FeaturedOnly, f.ActiveOnly, f.Search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func scanProduct(row pgx.Row) (catalog.Product, error) {
	var p catalog.Product
	var created time.Time
	if err := row.Scan(&p.ID, &p.DepartmentID, &p.CategoryID, &p.Name, &p.Description,
		&p.Price, &p.ComparePrice, &p.Images, &p.Stock, &p.Featured, &p.Active, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Product{}, catalog.ErrNotFound
		}
		return catalog.Product{}, err
	}
	p.CreatedAt = created.UTC()
	return p, nil
}
