package domain

// Payment is a single collected amount against a credit.
type Payment struct {
	ID          int64   `json:"id" db:"id"`
	CreditID    int64   `json:"credit_id" db:"credit_id"`
	PaymentDate Date    `json:"payment_date" db:"payment_date"`
	TypeID      int64   `json:"type_id" db:"type_id"`
	Sum         float64 `json:"sum" db:"sum"`
}

// MonthlyTotal is a per-month bucket of credits or payments.
type MonthlyTotal struct {
	Month int     `db:"month"`
	Count int     `db:"count"`
	Sum   float64 `db:"sum"`
}

// MonthlyTotals indexes buckets by calendar month.
type MonthlyTotals map[int]MonthlyTotal

// NewMonthlyTotals builds the month index from repository rows.
func NewMonthlyTotals(rows []MonthlyTotal) MonthlyTotals {
	totals := make(MonthlyTotals, len(rows))
	for _, row := range rows {
		totals[row.Month] = row
	}
	return totals
}

// For returns the bucket of a month, zero when the month had no rows.
func (t MonthlyTotals) For(month int) MonthlyTotal {
	if total, ok := t[month]; ok {
		return total
	}
	return MonthlyTotal{Month: month}
}
