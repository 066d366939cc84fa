package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dwatsonpk/storefront/pkg/order"
)

// OrderRepository implements order.Repository. Order items are snapshot rows;
// they never reference back into live product data at read time.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) (*OrderRepository, error) {
	r := &OrderRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *OrderRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			subtotal BIGINT NOT NULL CHECK (subtotal >= 0),
			status TEXT NOT NULL CHECK (status IN ('pending', 'confirmed', 'shipped', 'delivered', 'cancelled')),
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			address TEXT NOT NULL,
			city TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS order_items (
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id UUID NOT NULL,
			name TEXT NOT NULL,
			unit_price BIGINT NOT NULL,
			quantity INT NOT NULL CHECK (quantity > 0),
			PRIMARY KEY (order_id, product_id)
		);
		CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);
		CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
	`)
	return err
}

func (r *OrderRepository) Create(ctx context.Context, o order.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, subtotal, status, name, phone, address, city, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, o.ID, o.UserID, o.Subtotal, string(o.Status), o.Name, o.Phone, o.Address, o.City, o.Notes, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return err
	}
	for _, it := range o.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, name, unit_price, quantity)
			VALUES ($1, $2, $3, $4, $5)
		`, o.ID, it.ProductID, it.Name, it.UnitPrice, it.Quantity)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

const orderSelect = `
	SELECT o.id, o.user_id, o.subtotal, o.status, o.name, o.phone, o.address, o.city, o.notes,
		o.created_at, o.updated_at,
		COALESCE(
			json_agg(json_build_object(
				'ProductID', oi.product_id, 'Name', oi.name,
				'UnitPrice', oi.unit_price, 'Quantity', oi.quantity
			) ORDER BY oi.name) FILTER (WHERE oi.product_id IS NOT NULL),
			'[]'
		) AS items
	FROM orders o
	LEFT JOIN order_items oi ON oi.order_id = o.id
`

func (r *OrderRepository) GetByIDForUser(ctx context.Context, userID, id uuid.UUID) (order.Order, error) {
	row := r.pool.QueryRow(ctx, orderSelect+`
		WHERE o.id = $1 AND o.user_id = $2
		GROUP BY o.id
	`, id, userID)
	return scanOrder(row)
}

func (r *OrderRepository) GetByIDAny(ctx context.Context, id uuid.UUID) (order.Order, error) {
	row := r.pool.QueryRow(ctx, orderSelect+`
		WHERE o.id = $1
		GROUP BY o.id
	`, id)
	return scanOrder(row)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]order.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, orderSelect+`
		WHERE o.user_id = $1
		GROUP BY o.id
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *OrderRepository) ListAll(ctx context.Context, f order.Filter, limit, offset int) ([]order.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	var status *string
	if f.Status != nil {
		s := string(*f.Status)
		status = &s
	}
	rows, err := r.pool.Query(ctx, orderSelect+`
		WHERE ($1::text IS NULL OR o.status = $1)
		GROUP BY o.id
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3
	`, status, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1
	`, id, string(status), time.Now().UTC())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func collectOrders(rows pgx.Rows) ([]order.Order, error) {
	defer rows.Close()
	var res []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	return res, rows.Err()
}

func scanOrder(row pgx.Row) (order.Order, error) {
	var o order.Order
	var status string
	var created, updated time.Time
	var itemsJSON []byte
	if err := row.Scan(&o.ID, &o.UserID, &o.Subtotal, &status, &o.Name, &o.Phone, &o.Address,
		&o.City, &o.Notes, &created, &updated, &itemsJSON); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, order.ErrNotFound
		}
		return order.Order{}, err
	}
	o.Status = order.Status(status)
	o.CreatedAt = created.UTC()
	o.UpdatedAt = updated.UTC()
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return order.Order{}, err
	}
	return o, nil
}
