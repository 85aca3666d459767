package cache

import (
	"fmt"

	"github.com/segyhp/fintrack/internal/domain"
)

// Key families. The rendered keys are shared with other readers of the cache
// and must not change.
const (
	UserCreditsPrefix      = "user_credits"
	YearPerformancePrefix  = "year_performance"
	PlansPerformancePrefix = "plans_performance"
)

func UserCreditsKey(userID int64) string {
	return fmt.Sprintf("%s:%d", UserCreditsPrefix, userID)
}

func YearPerformanceKey(year int) string {
	return fmt.Sprintf("%s:%d", YearPerformancePrefix, year)
}

func PlansPerformanceKey(checkDate domain.Date) string {
	return fmt.Sprintf("%s:%s", PlansPerformancePrefix, checkDate.String())
}

// FamilyPattern matches every key of a family.
func FamilyPattern(prefix string) string {
	return prefix + ":*"
}

// ReportFamilies lists every family written by the reports.
func ReportFamilies() []string {
	return []string{UserCreditsPrefix, YearPerformancePrefix, PlansPerformancePrefix}
}
