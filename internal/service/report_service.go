package service

import (
	"context"
	"time"

	"github.com/segyhp/fintrack/internal/cache"
	"github.com/segyhp/fintrack/internal/domain"
	"github.com/segyhp/fintrack/internal/repository"
	customError "github.com/segyhp/fintrack/pkg/errors"

	"github.com/sirupsen/logrus"
)

// Cache is the cache-aside view the services depend on. Implementations
// never fail: a broken backend behaves as an empty cache.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
	DeleteByPattern(ctx context.Context, pattern string)
}

type ReportService struct {
	CreditRepo  repository.CreditRepository
	PaymentRepo repository.PaymentRepository
	PlanRepo    repository.PlanRepository
	cache       Cache
	categories  domain.Categories
	log         logrus.FieldLogger
	now         func() time.Time
}

func NewReportService(
	creditRepo repository.CreditRepository,
	paymentRepo repository.PaymentRepository,
	planRepo repository.PlanRepository,
	cache Cache,
	categories domain.Categories,
	log logrus.FieldLogger,
) *ReportService {
	return &ReportService{
		CreditRepo:  creditRepo,
		PaymentRepo: paymentRepo,
		PlanRepo:    planRepo,
		cache:       cache,
		categories:  categories,
		log:         log.WithField("component", "reports"),
		now:         time.Now,
	}
}

// GetUserCredits returns the ledger of every credit of a user. A user without
// credits yields an empty list.
func (s *ReportService) GetUserCredits(ctx context.Context, userID int64) ([]domain.CreditLedgerEntry, error) {
	key := cache.UserCreditsKey(userID)

	var cached []domain.CreditLedgerEntry
	if s.cache.Get(ctx, key, &cached) {
		return nonNil(cached), nil
	}

	rows, err := s.CreditRepo.Ledger(ctx, userID, s.today(), s.categories)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	entries := buildLedger(rows)
	s.cache.Set(ctx, key, entries)

	s.log.WithFields(logrus.Fields{"user_id": userID, "credits": len(entries)}).Debug("user credits computed")
	return entries, nil
}

// GetYearPerformance compares every plan period of year with the credits
// issued and payments collected in the same month.
func (s *ReportService) GetYearPerformance(ctx context.Context, year int) ([]domain.MonthlyPerformance, error) {
	key := cache.YearPerformanceKey(year)

	var cached []domain.MonthlyPerformance
	if s.cache.Get(ctx, key, &cached) {
		return nonNil(cached), nil
	}

	facts, err := s.yearFacts(ctx, year)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	plans, err := s.PlanRepo.ByMonth(ctx, year, s.categories)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	result := buildMonthlyPerformance(plans, facts)
	s.cache.Set(ctx, key, result)

	s.log.WithFields(logrus.Fields{"year": year, "periods": len(result)}).Debug("year performance computed")
	return result, nil
}

// GetPlansPerformance reports the progress of every plan started on or before
// checkDate.
func (s *ReportService) GetPlansPerformance(ctx context.Context, checkDate domain.Date) ([]domain.PlanPerformance, error) {
	key := cache.PlansPerformanceKey(checkDate)

	var cached []domain.PlanPerformance
	if s.cache.Get(ctx, key, &cached) {
		return nonNil(cached), nil
	}

	rows, err := s.PlanRepo.Performance(ctx, checkDate, s.categories)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	result := buildPlanPerformance(rows)
	s.cache.Set(ctx, key, result)

	s.log.WithFields(logrus.Fields{"check_date": checkDate.String(), "plans": len(result)}).Debug("plans performance computed")
	return result, nil
}

func (s *ReportService) yearFacts(ctx context.Context, year int) (yearFacts, error) {
	totalIssuance, err := s.CreditRepo.SumBody(ctx, year)
	if err != nil {
		return yearFacts{}, err
	}

	totalCollection, err := s.PaymentRepo.SumPayments(ctx, year)
	if err != nil {
		return yearFacts{}, err
	}

	credits, err := s.CreditRepo.ByMonth(ctx, year)
	if err != nil {
		return yearFacts{}, err
	}

	payments, err := s.PaymentRepo.ByMonth(ctx, year)
	if err != nil {
		return yearFacts{}, err
	}

	return yearFacts{
		totalIssuance:   totalIssuance,
		totalCollection: totalCollection,
		credits:         domain.NewMonthlyTotals(credits),
		payments:        domain.NewMonthlyTotals(payments),
	}, nil
}

func (s *ReportService) today() domain.Date {
	return domain.DateOf(s.now())
}

// nonNil keeps a cached "[]" and a cached "null" both an empty list.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
