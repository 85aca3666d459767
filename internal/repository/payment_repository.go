package repository

import (
	"context"

	"github.com/segyhp/fintrack/internal/domain"
	"github.com/segyhp/fintrack/pkg/utils"

	"github.com/jmoiron/sqlx"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) ByMonth(ctx context.Context, year int) ([]domain.MonthlyTotal, error) {
	query := `
		SELECT EXTRACT(MONTH FROM p.payment_date)::int AS month,
		       COUNT(DISTINCT p.id) AS count,
		       COALESCE(SUM(p.sum), 0)::float8 AS sum
		FROM payments p
		WHERE p.payment_date >= $1 AND p.payment_date < $2
		GROUP BY 1
		ORDER BY 1
	`

	from, to := utils.YearBounds(year)

	totals := []domain.MonthlyTotal{}
	err := r.db.SelectContext(ctx, &totals, query, from, to)
	if err != nil {
		return nil, err
	}

	return totals, nil
}

func (r *paymentRepository) SumPayments(ctx context.Context, year int) (float64, error) {
	query := `
		SELECT COALESCE(SUM(p.sum), 0)::float8
		FROM payments p
		WHERE p.payment_date >= $1 AND p.payment_date < $2
	`

	from, to := utils.YearBounds(year)

	var total float64
	err := r.db.GetContext(ctx, &total, query, from, to)
	if err != nil {
		return 0, err
	}

	return total, nil
}
