package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segyhp/fintrack/internal/domain"
	"github.com/segyhp/fintrack/internal/logger"
	"github.com/segyhp/fintrack/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(NewMemoryBackend(1000, time.Minute), 0, logger.Discard())
	ctx := context.Background()

	closed := domain.NewDate(2021, time.November, 25)
	total := 5000.0
	original := []domain.CreditLedgerEntry{
		{
			CreditID:         2,
			IssuanceDate:     domain.NewDate(2021, time.February, 1),
			IsClosed:         true,
			ActualReturnDate: &closed,
			Body:             5000,
			Percent:          4.5,
			TotalPayments:    &total,
		},
	}

	store.Set(ctx, "user_credits:1", original)

	var decoded []domain.CreditLedgerEntry
	require.True(t, store.Get(ctx, "user_credits:1", &decoded))
	assert.Equal(t, original, decoded)
}

func TestStore_EmptyListIsAHit(t *testing.T) {
	store := NewStore(NewMemoryBackend(1000, time.Minute), time.Minute, logger.Discard())
	ctx := context.Background()

	store.Set(ctx, "year_performance:1999", []domain.MonthlyPerformance{})

	var decoded []domain.MonthlyPerformance
	assert.True(t, store.Get(ctx, "year_performance:1999", &decoded))
	assert.NotNil(t, decoded)
	assert.Empty(t, decoded)
}

func TestStore_MissOnAbsentKey(t *testing.T) {
	store := NewStore(NewMemoryBackend(1000, time.Minute), time.Minute, logger.Discard())

	var decoded []domain.PlanPerformance
	assert.False(t, store.Get(context.Background(), "plans_performance:2021-01-01", &decoded))
}

func TestStore_BackendFailuresAreSwallowed(t *testing.T) {
	backend := &mocks.MockCacheBackend{}
	store := NewStore(backend, time.Minute, logger.Discard())
	ctx := context.Background()
	down := errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

	backend.On("Get", ctx, "year_performance:2021").Return(nil, down)
	backend.On("Set", ctx, "year_performance:2021", []byte("[]"), time.Minute).Return(down)
	backend.On("DeleteByPattern", ctx, "year_performance:2021").Return(int64(0), down)
	backend.On("Ping", ctx).Return(down)

	var decoded []domain.MonthlyPerformance
	assert.False(t, store.Get(ctx, "year_performance:2021", &decoded))
	assert.NotPanics(t, func() {
		store.Set(ctx, "year_performance:2021", []domain.MonthlyPerformance{})
		store.DeleteByPattern(ctx, "year_performance:2021")
	})
	assert.ErrorIs(t, store.Ping(ctx), down)

	backend.AssertExpectations(t)
}

func TestStore_UndecodableEntryIsAMiss(t *testing.T) {
	backend := &mocks.MockCacheBackend{}
	store := NewStore(backend, time.Minute, logger.Discard())
	ctx := context.Background()

	backend.On("Get", ctx, "user_credits:7").Return([]byte("{not json"), nil)

	var decoded []domain.CreditLedgerEntry
	assert.False(t, store.Get(ctx, "user_credits:7", &decoded))
}

func TestStore_SetUsesDefaultTTL(t *testing.T) {
	backend := &mocks.MockCacheBackend{}
	store := NewStore(backend, 0, logger.Discard())
	ctx := context.Background()

	backend.On("Set", ctx, "user_credits:1", []byte("[]"), DefaultTTL).Return(nil)

	store.Set(ctx, "user_credits:1", []domain.CreditLedgerEntry{})
	backend.AssertExpectations(t)
}

func TestStore_SetUsesConfiguredTTL(t *testing.T) {
	backend := &mocks.MockCacheBackend{}
	store := NewStore(backend, 15*time.Minute, logger.Discard())
	ctx := context.Background()

	backend.On("Set", ctx, "year_performance:2021", []byte("[]"), 15*time.Minute).Return(nil)

	store.Set(ctx, "year_performance:2021", []domain.MonthlyPerformance{})
	backend.AssertExpectations(t)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "user_credits:42", UserCreditsKey(42))
	assert.Equal(t, "year_performance:2021", YearPerformanceKey(2021))
	assert.Equal(t, "plans_performance:2021-03-31", PlansPerformanceKey(domain.NewDate(2021, time.March, 31)))
	assert.Equal(t, "plans_performance:*", FamilyPattern(PlansPerformancePrefix))
	assert.Len(t, ReportFamilies(), 3)
}
