package stats

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repo interface {
	Revenue(ctx context.Context, w Window) (decimal.Decimal, error)
	OrderCount(ctx context.Context, w Window) (int64, error)
	ProductCount(ctx context.Context, w Window) (int64, error)
	CustomerCount(ctx context.Context, w Window) (int64, error)
}

type PGRepo struct{ DB *pgxpool.Pool }

var _ Repo = (*PGRepo)(nil)

// Revenue only counts orders the processor has confirmed as paid.
func (r *PGRepo) Revenue(ctx context.Context, w Window) (decimal.Decimal, error) {
	var s string
	err := r.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0)::text FROM orders
		WHERE payment_status='paid' AND created_at >= $1 AND created_at < $2`,
		w.From, w.To).Scan(&s)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(s)
}

func (r *PGRepo) count(ctx context.Context, table string, w Window) (int64, error) {
	var n int64
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM `+table+`
	                           WHERE created_at >= $1 AND created_at < $2`,
		w.From, w.To).Scan(&n)
	return n, err
}

func (r *PGRepo) OrderCount(ctx context.Context, w Window) (int64, error) {
	return r.count(ctx, "orders", w)
}

func (r *PGRepo) ProductCount(ctx context.Context, w Window) (int64, error) {
	return r.count(ctx, "products", w)
}

// CustomerCount is a counted query against the primary users table, so it
// stays exact no matter how many users exist.
func (r *PGRepo) CustomerCount(ctx context.Context, w Window) (int64, error) {
	return r.count(ctx, "users", w)
}
