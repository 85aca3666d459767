package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segyhp/fintrack/internal/cache"
	"github.com/segyhp/fintrack/internal/domain"
	"github.com/segyhp/fintrack/internal/logger"
	customError "github.com/segyhp/fintrack/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCacheWarmer_Run(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture()
	warmer := NewCacheWarmer(f.service, f.store, time.UTC, logger.Discard())
	today := domain.NewDate(2022, time.January, 10)

	f.store.Set(ctx, cache.UserCreditsKey(1), []domain.CreditLedgerEntry{})
	f.store.Set(ctx, cache.UserCreditsKey(2), []domain.CreditLedgerEntry{})
	f.expectYear(2022, 0, 0, []domain.MonthlyTotal{}, []domain.MonthlyTotal{}, []domain.PlanMonth{})
	f.plans.On("Performance", mock.Anything, today, mock.Anything).Return([]domain.PlanActualRow{}, nil).Once()

	require.NoError(t, warmer.Run(ctx))

	assert.False(t, cached(f.store, cache.UserCreditsKey(1)))
	assert.False(t, cached(f.store, cache.UserCreditsKey(2)))
	assert.True(t, cached(f.store, cache.YearPerformanceKey(2022)))
	assert.True(t, cached(f.store, cache.PlansPerformanceKey(today)))
	f.plans.AssertExpectations(t)
}

func TestCacheWarmer_RunReportsFailures(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture()
	warmer := NewCacheWarmer(f.service, f.store, time.UTC, logger.Discard())
	down := errors.New("connection refused")

	f.expectYear(2022, 0, 0, []domain.MonthlyTotal{}, []domain.MonthlyTotal{}, []domain.PlanMonth{})
	f.plans.On("Performance", mock.Anything, mock.Anything, mock.Anything).Return(nil, down)

	err := warmer.Run(ctx)
	assert.ErrorIs(t, err, customError.ErrStorageFailure)
	assert.True(t, cached(f.store, cache.YearPerformanceKey(2022)), "year report is warmed independently")
}

func TestCacheWarmer_RunUsesScheduleZone(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture()
	// 00:05 on New Year's Day in UTC+3 is still Dec 31 in UTC.
	f.service.now = func() time.Time { return time.Date(2021, time.December, 31, 21, 5, 0, 0, time.UTC) }
	warmer := NewCacheWarmer(f.service, f.store, time.FixedZone("UTC+3", 3*60*60), logger.Discard())
	today := domain.NewDate(2022, time.January, 1)

	f.expectYear(2022, 0, 0, []domain.MonthlyTotal{}, []domain.MonthlyTotal{}, []domain.PlanMonth{})
	f.plans.On("Performance", mock.Anything, today, mock.Anything).Return([]domain.PlanActualRow{}, nil).Once()

	require.NoError(t, warmer.Run(ctx))

	assert.True(t, cached(f.store, cache.YearPerformanceKey(2022)))
	assert.True(t, cached(f.store, cache.PlansPerformanceKey(today)))
	assert.False(t, cached(f.store, cache.YearPerformanceKey(2021)))
	f.plans.AssertExpectations(t)
}

func TestFlushReports(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture()

	f.store.Set(ctx, cache.UserCreditsKey(1), []domain.CreditLedgerEntry{})
	f.store.Set(ctx, cache.YearPerformanceKey(2021), []domain.MonthlyPerformance{})
	f.store.Set(ctx, cache.PlansPerformanceKey(domain.NewDate(2021, time.May, 1)), []domain.PlanPerformance{})
	f.store.Set(ctx, "unrelated:1", []int{1})

	FlushReports(ctx, f.store)

	assert.False(t, cached(f.store, cache.UserCreditsKey(1)))
	assert.False(t, cached(f.store, cache.YearPerformanceKey(2021)))
	assert.False(t, cached(f.store, cache.PlansPerformanceKey(domain.NewDate(2021, time.May, 1))))
	var unrelated []int
	assert.True(t, f.store.Get(ctx, "unrelated:1", &unrelated))
}
