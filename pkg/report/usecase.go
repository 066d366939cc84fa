package report

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SalesSummary aggregates orders over a date range.
type SalesSummary struct {
	From     time.Time
	To       time.Time
	Orders   int64
	Revenue  int64
	ByStatus map[string]int64
}

// TopProduct is one row of the best-sellers report.
type TopProduct struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int64
	Revenue   int64
}

// Repository is the reporting port, implemented with SQL aggregates over the
// order tables.
type Repository interface {
	SalesSummary(ctx context.Context, from, to time.Time) (SalesSummary, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error)
	CustomerCount(ctx context.Context) (int64, error)
}

// UseCase describes admin reporting behavior.
type UseCase interface {
	Sales(ctx context.Context, from, to time.Time) (SalesSummary, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error)
	CustomerCount(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

// Sales defaults to the trailing 30 days when the range is unset.
func (s *service) Sales(ctx context.Context, from, to time.Time) (SalesSummary, error) {
	from, to = defaultRange(from, to)
	return s.repo.SalesSummary(ctx, from, to)
}

func (s *service) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error) {
	from, to = defaultRange(from, to)
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.repo.TopProducts(ctx, from, to, limit)
}

func (s *service) CustomerCount(ctx context.Context) (int64, error) {
	return s.repo.CustomerCount(ctx)
}

func defaultRange(from, to time.Time) (time.Time, time.Time) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	return from, to
}
