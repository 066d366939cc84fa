package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dwatsonpk/storefront/pkg/cart"
)

// CartRepository implements cart.Repository. A cart is just the set of rows
// for one user; no separate cart head table.
type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) (*CartRepository, error) {
	r := &CartRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *CartRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS cart_items (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			unit_price BIGINT NOT NULL CHECK (unit_price >= 0),
			quantity INT NOT NULL CHECK (quantity > 0),
			PRIMARY KEY (user_id, product_id)
		);
	`)
	return err
}

func (r *CartRepository) Get(ctx context.Context, userID uuid.UUID) (cart.Cart, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_id, name, unit_price, quantity
		FROM cart_items WHERE user_id = $1
		ORDER BY name
	`, userID)
	if err != nil {
		return cart.Cart{}, err
	}
	defer rows.Close()
	c := cart.Cart{UserID: userID}
	for rows.Next() {
		var it cart.CartItem
		if err := rows.Scan(&it.ProductID, &it.Name, &it.UnitPrice, &it.Quantity); err != nil {
			return cart.Cart{}, err
		}
		c.Items = append(c.Items, it)
	}
	return c, rows.Err()
}

func (r *CartRepository) AddItem(ctx context.Context, userID uuid.UUID, item cart.CartItem) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO cart_items (user_id, product_id, name, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, product_id) DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity,
			name = EXCLUDED.name,
			unit_price = EXCLUDED.unit_price
	`, userID, item.ProductID, item.Name, item.UnitPrice, item.Quantity)
	return err
}

func (r *CartRepository) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE cart_items SET quantity = $3
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID, quantity)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return cart.ErrNotFound
	}
	return nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `
		DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return cart.ErrNotFound
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
