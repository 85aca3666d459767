package service

import (
	"context"
	"errors"
	"time"

	"github.com/segyhp/fintrack/internal/cache"
	"github.com/segyhp/fintrack/internal/domain"

	"github.com/sirupsen/logrus"
)

// CacheWarmer refreshes the report cache once a day. User ledgers are
// dropped since overdue days move with the calendar; the reports most likely
// to be read today are computed ahead of time. "Today" is taken in loc, the
// zone the job is scheduled in.
type CacheWarmer struct {
	reports *ReportService
	cache   Cache
	loc     *time.Location
	log     logrus.FieldLogger
}

// NewCacheWarmer builds a warmer. A nil loc means UTC.
func NewCacheWarmer(reports *ReportService, cache Cache, loc *time.Location, log logrus.FieldLogger) *CacheWarmer {
	if loc == nil {
		loc = time.UTC
	}
	return &CacheWarmer{
		reports: reports,
		cache:   cache,
		loc:     loc,
		log:     log.WithField("component", "cache_warmer"),
	}
}

func (w *CacheWarmer) Run(ctx context.Context) error {
	today := domain.DateOf(w.reports.now().In(w.loc))
	log := w.log.WithField("date", today.String())

	w.cache.DeleteByPattern(ctx, cache.FamilyPattern(cache.UserCreditsPrefix))

	var errs []error
	if _, err := w.reports.GetYearPerformance(ctx, today.Year()); err != nil {
		errs = append(errs, err)
	}
	if _, err := w.reports.GetPlansPerformance(ctx, today); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		log.WithError(err).Error("cache warm-up failed")
		return err
	}

	log.Info("cache warmed")
	return nil
}

// FlushReports drops every report family, for use after facts change outside
// the services.
func FlushReports(ctx context.Context, c Cache) {
	for _, family := range cache.ReportFamilies() {
		c.DeleteByPattern(ctx, cache.FamilyPattern(family))
	}
}
