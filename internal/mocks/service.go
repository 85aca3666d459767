package mocks

import (
	"context"
	"io"

	"github.com/segyhp/fintrack/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GetUserCredits(ctx context.Context, userID int64) ([]domain.CreditLedgerEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditLedgerEntry), args.Error(1)
}

func (m *MockReportService) GetYearPerformance(ctx context.Context, year int) ([]domain.MonthlyPerformance, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyPerformance), args.Error(1)
}

func (m *MockReportService) GetPlansPerformance(ctx context.Context, checkDate domain.Date) ([]domain.PlanPerformance, error) {
	args := m.Called(ctx, checkDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlanPerformance), args.Error(1)
}

type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) InsertPlans(ctx context.Context, rows []domain.PlanRow) (*domain.InsertPlansResult, error) {
	args := m.Called(ctx, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InsertPlansResult), args.Error(1)
}

type MockPlanParser struct {
	mock.Mock
}

func (m *MockPlanParser) Parse(r io.Reader, filename string) ([]domain.PlanRow, error) {
	args := m.Called(r, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlanRow), args.Error(1)
}

// MockPinger implements the database and cache health probes.
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) PingContext(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
