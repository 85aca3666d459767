package service

import (
	"github.com/segyhp/fintrack/internal/domain"
	"github.com/segyhp/fintrack/pkg/utils"
)

// buildLedger turns ledger rows into report entries, preserving order.
func buildLedger(rows []domain.CreditLedgerRow) []domain.CreditLedgerEntry {
	entries := make([]domain.CreditLedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.NewCreditLedgerEntry(row))
	}
	return entries
}

// yearFacts are the actual figures of one year used to score its plans.
type yearFacts struct {
	totalIssuance   float64
	totalCollection float64
	credits         domain.MonthlyTotals
	payments        domain.MonthlyTotals
}

// buildMonthlyPerformance scores every plan period of a year. Months with no
// credits or payments count as zero.
func buildMonthlyPerformance(plans []domain.PlanMonth, facts yearFacts) []domain.MonthlyPerformance {
	result := make([]domain.MonthlyPerformance, 0, len(plans))
	for _, plan := range plans {
		issued := facts.credits.For(plan.Month)
		collected := facts.payments.For(plan.Month)

		result = append(result, domain.MonthlyPerformance{
			MonthYear:                    plan.Period.MonthYear(),
			IssuanceCount:                issued.Count,
			PlanIssuanceSum:              plan.PlanIssuanceSum,
			ActualIssuanceSum:            issued.Sum,
			IssuancePerformancePercent:   utils.Percent(issued.Sum, float64(plan.PlanIssuanceSum)),
			PaymentCount:                 collected.Count,
			PlanCollectionSum:            plan.PlanCollectionSum,
			ActualCollectionSum:          collected.Sum,
			CollectionPerformancePercent: utils.Percent(collected.Sum, float64(plan.PlanCollectionSum)),
			IssuancePercentOfYear:        utils.Percent(issued.Sum, facts.totalIssuance),
			CollectionPercentOfYear:      utils.Percent(collected.Sum, facts.totalCollection),
		})
	}
	return result
}

func buildPlanPerformance(rows []domain.PlanActualRow) []domain.PlanPerformance {
	result := make([]domain.PlanPerformance, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.PlanPerformance{
			Month:              row.Period,
			Category:           row.Category,
			PlanSum:            row.PlanSum,
			ActualSum:          row.ActualSum,
			PerformancePercent: utils.Percent(row.ActualSum, float64(row.PlanSum)),
		})
	}
	return result
}
