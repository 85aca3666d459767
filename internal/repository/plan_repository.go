package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/segyhp/fintrack/internal/domain"
	"github.com/segyhp/fintrack/pkg/utils"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type planRepository struct {
	db *sqlx.DB
}

func NewPlanRepository(db *sqlx.DB) PlanRepository {
	return &planRepository{db: db}
}

// ByMonth uses MAX per category: with the (period, category_id) unique index
// there is at most one row per cell, so MAX is that row's sum.
func (r *planRepository) ByMonth(ctx context.Context, year int, categories domain.Categories) ([]domain.PlanMonth, error) {
	query := `
		SELECT p.period,
		       COALESCE(MAX(CASE WHEN p.category_id = $3 THEN p.sum END), 0)::bigint AS plan_issuance_sum,
		       COALESCE(MAX(CASE WHEN p.category_id = $4 THEN p.sum END), 0)::bigint AS plan_collection_sum,
		       EXTRACT(MONTH FROM p.period)::int AS month
		FROM plans p
		WHERE p.period >= $1 AND p.period < $2
		GROUP BY p.period
		ORDER BY p.period
	`

	from, to := utils.YearBounds(year)

	plans := []domain.PlanMonth{}
	err := r.db.SelectContext(ctx, &plans, query, from, to, categories.Issuance.ID, categories.Collection.ID)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *planRepository) Performance(ctx context.Context, checkDate domain.Date, categories domain.Categories) ([]domain.PlanActualRow, error) {
	query := `
		SELECT p.period,
		       d.name AS category,
		       p.sum AS plan_sum,
		       COALESCE(CASE
		           WHEN p.category_id = $2 THEN (
		               SELECT SUM(c.body)::float8
		               FROM credits c
		               WHERE c.issuance_date BETWEEN p.period AND $1::date
		           )
		           WHEN p.category_id = $3 THEN (
		               SELECT SUM(pm.sum)::float8
		               FROM payments pm
		               WHERE pm.payment_date BETWEEN p.period AND $1::date
		           )
		           ELSE 0
		       END, 0)::float8 AS actual_sum
		FROM plans p
		JOIN dictionary d ON d.id = p.category_id
		WHERE p.period <= $1::date
		ORDER BY p.period, p.category_id
	`

	rows := []domain.PlanActualRow{}
	err := r.db.SelectContext(ctx, &rows, query, checkDate, categories.Issuance.ID, categories.Collection.ID)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *planRepository) WithTx(ctx context.Context, fn func(tx PlanTx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&planTx{tx: tx}); err != nil {
		return err
	}

	return tx.Commit()
}

type planTx struct {
	tx *sqlx.Tx
}

func (t *planTx) CategoryIDByName(ctx context.Context, name string) (int64, error) {
	return categoryIDByName(ctx, t.tx, name)
}

func (t *planTx) ExistingPlan(ctx context.Context, period domain.Date, categoryID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM plans WHERE period = $1 AND category_id = $2
		)
	`

	var exists bool
	err := t.tx.GetContext(ctx, &exists, query, period, categoryID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (t *planTx) Create(ctx context.Context, plans []*domain.Plan) error {
	query := `
		INSERT INTO plans (period, sum, category_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	for _, plan := range plans {
		err := t.tx.GetContext(ctx, &plan.ID, query, plan.Period, plan.Sum, plan.CategoryID)
		if err != nil {
			return mapPlanInsertError(err, plan)
		}
	}

	return nil
}

func mapPlanInsertError(err error, plan *domain.Plan) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return fmt.Errorf("%w: plan %s category %d (%s)", ErrUniqueViolation, plan.Period, plan.CategoryID, pqErr.Constraint)
	}
	return err
}
