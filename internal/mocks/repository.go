package mocks

import (
	"context"

	"github.com/segyhp/fintrack/internal/domain"
	"github.com/segyhp/fintrack/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockCreditRepository struct {
	mock.Mock
}

func (m *MockCreditRepository) ByMonth(ctx context.Context, year int) ([]domain.MonthlyTotal, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyTotal), args.Error(1)
}

func (m *MockCreditRepository) SumBody(ctx context.Context, year int) (float64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockCreditRepository) Ledger(ctx context.Context, userID int64, today domain.Date, categories domain.Categories) ([]domain.CreditLedgerRow, error) {
	args := m.Called(ctx, userID, today, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditLedgerRow), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) ByMonth(ctx context.Context, year int) ([]domain.MonthlyTotal, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyTotal), args.Error(1)
}

func (m *MockPaymentRepository) SumPayments(ctx context.Context, year int) (float64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(float64), args.Error(1)
}

// MockPlanRepository runs WithTx callbacks against Tx. The error configured
// for WithTx is returned as the commit error once the callback succeeds.
type MockPlanRepository struct {
	mock.Mock
	Tx *MockPlanTx
}

func (m *MockPlanRepository) ByMonth(ctx context.Context, year int, categories domain.Categories) ([]domain.PlanMonth, error) {
	args := m.Called(ctx, year, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlanMonth), args.Error(1)
}

func (m *MockPlanRepository) Performance(ctx context.Context, checkDate domain.Date, categories domain.Categories) ([]domain.PlanActualRow, error) {
	args := m.Called(ctx, checkDate, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlanActualRow), args.Error(1)
}

func (m *MockPlanRepository) WithTx(ctx context.Context, fn func(tx repository.PlanTx) error) error {
	args := m.Called(ctx)
	if err := fn(m.Tx); err != nil {
		return err
	}
	return args.Error(0)
}

type MockPlanTx struct {
	mock.Mock
}

func (m *MockPlanTx) CategoryIDByName(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlanTx) ExistingPlan(ctx context.Context, period domain.Date, categoryID int64) (bool, error) {
	args := m.Called(ctx, period, categoryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlanTx) Create(ctx context.Context, plans []*domain.Plan) error {
	args := m.Called(ctx, plans)
	return args.Error(0)
}

type MockDictionaryRepository struct {
	mock.Mock
}

func (m *MockDictionaryRepository) List(ctx context.Context) ([]domain.DictionaryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DictionaryEntry), args.Error(1)
}

func (m *MockDictionaryRepository) CategoryIDByName(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

// NewMockPlanRepository creates a plan repository mock with an attached
// transaction mock.
func NewMockPlanRepository() *MockPlanRepository {
	return &MockPlanRepository{Tx: &MockPlanTx{}}
}
