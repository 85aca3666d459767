package repository

import (
	"context"

	"github.com/segyhp/fintrack/internal/domain"
	"github.com/segyhp/fintrack/pkg/utils"

	"github.com/jmoiron/sqlx"
)

type creditRepository struct {
	db *sqlx.DB
}

func NewCreditRepository(db *sqlx.DB) CreditRepository {
	return &creditRepository{db: db}
}

func (r *creditRepository) ByMonth(ctx context.Context, year int) ([]domain.MonthlyTotal, error) {
	query := `
		SELECT EXTRACT(MONTH FROM c.issuance_date)::int AS month,
		       COUNT(DISTINCT c.id) AS count,
		       COALESCE(SUM(c.body), 0)::float8 AS sum
		FROM credits c
		WHERE c.issuance_date >= $1 AND c.issuance_date < $2
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

func (r *creditRepository) SumBody(ctx context.Context, year int) (float64, error) {
	query := `
		SELECT COALESCE(SUM(c.body), 0)::float8
		FROM credits c
		WHERE c.issuance_date >= $1 AND c.issuance_date < $2
	`

	from, to := utils.YearBounds(year)

	var total float64
	err := r.db.GetContext(ctx, &total, query, from, to)
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (r *creditRepository) Ledger(ctx context.Context, userID int64, today domain.Date, categories domain.Categories) ([]domain.CreditLedgerRow, error) {
	query := `
		SELECT c.id AS credit_id,
		       c.issuance_date,
		       c.actual_return_date IS NOT NULL AS is_closed,
		       c.actual_return_date,
		       c.return_date,
		       c.body,
		       c.percent,
		       COALESCE(SUM(p.sum), 0)::float8 AS total_payments,
		       COALESCE(SUM(CASE WHEN p.type_id = $2 THEN p.sum ELSE 0 END), 0)::float8 AS body_payments,
		       COALESCE(SUM(CASE WHEN p.type_id = $3 THEN p.sum ELSE 0 END), 0)::float8 AS percent_payments,
		       CASE
		           WHEN c.actual_return_date IS NULL AND c.return_date < $4::date
		           THEN ($4::date - c.return_date)
		       END AS overdue_days
		FROM credits c
		LEFT JOIN payments p ON p.credit_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id
		ORDER BY c.id
	`

	rows := []domain.CreditLedgerRow{}
	err := r.db.SelectContext(ctx, &rows, query,
		userID,
		categories.BodyPayment.ID,
		categories.PercentPayment.ID,
		today,
	)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
