package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/segyhp/fintrack/internal/cache"
	"github.com/segyhp/fintrack/internal/domain"
	"github.com/segyhp/fintrack/internal/repository"
	customError "github.com/segyhp/fintrack/pkg/errors"
	"github.com/segyhp/fintrack/pkg/utils"

	"github.com/sirupsen/logrus"
)

type PlanService struct {
	PlanRepo   repository.PlanRepository
	cache      Cache
	log        logrus.FieldLogger
	newBatchID func() string
}

func NewPlanService(planRepo repository.PlanRepository, cache Cache, log logrus.FieldLogger) *PlanService {
	return &PlanService{
		PlanRepo:   planRepo,
		cache:      cache,
		log:        log.WithField("component", "plans"),
		newBatchID: uuid.NewString,
	}
}

// planKey identifies a plan slot; at most one plan exists per slot.
type planKey struct {
	period     string
	categoryID int64
}

// InsertPlans validates and stores a batch of plans in one transaction.
// Rows are checked in order and the first invalid row aborts the whole
// batch. Rows are numbered from 1 in error messages.
func (s *PlanService) InsertPlans(ctx context.Context, rows []domain.PlanRow) (*domain.InsertPlansResult, error) {
	result := &domain.InsertPlansResult{
		BatchID:       s.newBatchID(),
		AffectedYears: []int{},
	}
	log := s.log.WithField("batch_id", result.BatchID)

	if len(rows) == 0 {
		log.Info("empty plan batch, nothing to insert")
		return result, nil
	}

	var plans []*domain.Plan
	years := make(map[int]struct{})

	err := s.PlanRepo.WithTx(ctx, func(tx repository.PlanTx) error {
		staged, err := stagePlans(ctx, tx, rows)
		if err != nil {
			return err
		}

		if err := tx.Create(ctx, staged); err != nil {
			if errors.Is(err, repository.ErrUniqueViolation) {
				return customError.WrapDuplicatePlanConstraint(err)
			}
			return err
		}

		plans = staged
		return nil
	})
	if err != nil {
		if customError.CodeOf(err) != "" {
			log.WithError(err).Warn("plan batch rejected")
			return nil, err
		}
		log.WithError(err).Error("plan batch failed")
		return nil, customError.WrapDatabaseError(err)
	}

	for _, plan := range plans {
		years[plan.Period.Year()] = struct{}{}
	}
	result.Inserted = len(plans)
	result.AffectedYears = utils.SortedYears(years)

	log.WithFields(logrus.Fields{"inserted": result.Inserted, "years": result.AffectedYears}).Info("plan batch committed")

	s.invalidate(ctx, result.AffectedYears)
	return result, nil
}

// stagePlans validates every row and returns the plans to insert. A row
// duplicating an earlier row of the same batch is rejected like a row
// duplicating a stored plan.
func stagePlans(ctx context.Context, tx repository.PlanTx, rows []domain.PlanRow) ([]*domain.Plan, error) {
	plans := make([]*domain.Plan, 0, len(rows))
	staged := make(map[planKey]struct{}, len(rows))
	categoryIDs := make(map[string]int64)

	for i, row := range rows {
		rowNum := i + 1

		period, err := utils.ParsePlanMonth(row.Month)
		if err != nil {
			return nil, customError.WrapUnparseablePeriod(rowNum, row.Month, err)
		}
		if !period.IsFirstOfMonth() {
			return nil, customError.WrapInvalidPeriod(rowNum, row.Month)
		}

		categoryID, ok := categoryIDs[row.CategoryName]
		if !ok {
			categoryID, err = tx.CategoryIDByName(ctx, row.CategoryName)
			if errors.Is(err, sql.ErrNoRows) {
				return nil, customError.WrapCategoryNotFound(rowNum, row.CategoryName)
			}
			if err != nil {
				return nil, err
			}
			categoryIDs[row.CategoryName] = categoryID
		}

		key := planKey{period: period.String(), categoryID: categoryID}
		if _, dup := staged[key]; dup {
			return nil, customError.WrapDuplicatePlan(rowNum, period.String(), row.CategoryName)
		}

		exists, err := tx.ExistingPlan(ctx, period, categoryID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, customError.WrapDuplicatePlan(rowNum, period.String(), row.CategoryName)
		}

		staged[key] = struct{}{}
		plans = append(plans, &domain.Plan{
			Period:     period,
			Sum:        row.Sum,
			CategoryID: categoryID,
		})
	}

	return plans, nil
}

// invalidate drops the reports a committed batch can change. A plan of any
// period shows up in the plans performance of every later check date, so
// that family is dropped whole.
func (s *PlanService) invalidate(ctx context.Context, years []int) {
	for _, year := range years {
		s.cache.DeleteByPattern(ctx, cache.YearPerformanceKey(year))
	}
	s.cache.DeleteByPattern(ctx, cache.FamilyPattern(cache.PlansPerformancePrefix))
}
