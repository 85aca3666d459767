package repository

import (
	"context"
	"errors"

	"github.com/segyhp/fintrack/internal/domain"
)

// ErrUniqueViolation is returned when an insert collides with a unique index.
var ErrUniqueViolation = errors.New("unique constraint violation")

// CreditRepository defines the read aggregates over credits
type CreditRepository interface {
	// ByMonth returns one bucket per month of year with at least one credit issued
	ByMonth(ctx context.Context, year int) ([]domain.MonthlyTotal, error)

	// SumBody returns the total principal issued in year, 0 when none
	SumBody(ctx context.Context, year int) (float64, error)

	// Ledger returns every credit of a user joined against its payments.
	// Overdue days are counted relative to today.
	Ledger(ctx context.Context, userID int64, today domain.Date, categories domain.Categories) ([]domain.CreditLedgerRow, error)
}

// PaymentRepository defines the read aggregates over payments
type PaymentRepository interface {
	// ByMonth returns one bucket per month of year with at least one payment
	ByMonth(ctx context.Context, year int) ([]domain.MonthlyTotal, error)

	// SumPayments returns the total collected in year, 0 when none
	SumPayments(ctx context.Context, year int) (float64, error)
}

// PlanRepository defines plan reads and the transactional plan write path
type PlanRepository interface {
	// ByMonth pivots the plans of year into issuance/collection targets per period
	ByMonth(ctx context.Context, year int, categories domain.Categories) ([]domain.PlanMonth, error)

	// Performance returns every plan with period <= checkDate and the actual
	// amount accumulated between its period and checkDate
	Performance(ctx context.Context, checkDate domain.Date, categories domain.Categories) ([]domain.PlanActualRow, error)

	// WithTx runs fn in one transaction, committing only when fn succeeds
	WithTx(ctx context.Context, fn func(tx PlanTx) error) error
}

// PlanTx is the set of plan operations available inside a transaction
type PlanTx interface {
	// CategoryIDByName resolves a dictionary name, sql.ErrNoRows when absent
	CategoryIDByName(ctx context.Context, name string) (int64, error)

	// ExistingPlan reports whether a plan exists for period and category
	ExistingPlan(ctx context.Context, period domain.Date, categoryID int64) (bool, error)

	// Create inserts plans and fills their ids
	Create(ctx context.Context, plans []*domain.Plan) error
}

// DictionaryRepository defines dictionary lookups
type DictionaryRepository interface {
	// List returns every dictionary entry ordered by id
	List(ctx context.Context) ([]domain.DictionaryEntry, error)

	// CategoryIDByName resolves a dictionary name, sql.ErrNoRows when absent
	CategoryIDByName(ctx context.Context, name string) (int64, error)
}
