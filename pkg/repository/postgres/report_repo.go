package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dwatsonpk/storefront/pkg/report"
)

// ReportRepository implements report.Repository with SQL aggregates over the
// order and user tables. It owns no schema of its own.
type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

func (r *ReportRepository) SalesSummary(ctx context.Context, from, to time.Time) (report.SalesSummary, error) {
	s := report.SalesSummary{From: from, To: to, ByStatus: map[string]int64{}}

	row := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(subtotal), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2 AND status <> 'cancelled'
	`, from, to)
	if err := row.Scan(&s.Orders, &s.Revenue); err != nil {
		return report.SalesSummary{}, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY status
	`, from, to)
	if err != nil {
		return report.SalesSummary{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return report.SalesSummary{}, err
		}
		s.ByStatus[status] = count
	}
	return s, rows.Err()
}

func (r *ReportRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]report.TopProduct, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT oi.product_id, oi.name, SUM(oi.quantity), SUM(oi.unit_price * oi.quantity)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= $1 AND o.created_at < $2 AND o.status <> 'cancelled'
		GROUP BY oi.product_id, oi.name
		ORDER BY SUM(oi.quantity) DESC
		LIMIT $3
	`, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []report.TopProduct
	for rows.Next() {
		var tp report.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.Name, &tp.Quantity, &tp.Revenue); err != nil {
			return nil, err
		}
		res = append(res, tp)
	}
	return res, rows.Err()
}

func (r *ReportRepository) CustomerCount(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = 'user'`).Scan(&n)
	return n, err
}
