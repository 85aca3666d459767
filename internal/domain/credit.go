package domain

// Credit is an issued loan. ActualReturnDate is nil while the credit is open.
type Credit struct {
	ID               int64   `json:"id" db:"id"`
	UserID           int64   `json:"user_id" db:"user_id"`
	IssuanceDate     Date    `json:"issuance_date" db:"issuance_date"`
	ReturnDate       Date    `json:"return_date" db:"return_date"`
	ActualReturnDate *Date   `json:"actual_return_date" db:"actual_return_date"`
	Body             int64   `json:"body" db:"body"`
	Percent          float64 `json:"percent" db:"percent"`
}

// IsClosed reports whether the credit has been returned.
func (c Credit) IsClosed() bool {
	return c.ActualReturnDate != nil
}

// CreditLedgerRow is one credit of a user joined against its payments.
type CreditLedgerRow struct {
	CreditID         int64   `db:"credit_id"`
	IssuanceDate     Date    `db:"issuance_date"`
	IsClosed         bool    `db:"is_closed"`
	ActualReturnDate *Date   `db:"actual_return_date"`
	ReturnDate       Date    `db:"return_date"`
	Body             int64   `db:"body"`
	Percent          float64 `db:"percent"`
	TotalPayments    float64 `db:"total_payments"`
	BodyPayments     float64 `db:"body_payments"`
	PercentPayments  float64 `db:"percent_payments"`
	OverdueDays      *int    `db:"overdue_days"`
}

// CreditLedgerEntry is the per-credit line of a user's ledger report.
// A closed credit carries TotalPayments only; an open credit carries
// OverdueDays (when past due) and the body/percent split only.
type CreditLedgerEntry struct {
	CreditID         int64    `json:"credit_id"`
	IssuanceDate     Date     `json:"issuance_date"`
	IsClosed         bool     `json:"is_closed"`
	ActualReturnDate *Date    `json:"actual_return_date"`
	ReturnDate       *Date    `json:"return_date"`
	OverdueDays      *int     `json:"overdue_days"`
	Body             int64    `json:"body"`
	Percent          float64  `json:"percent"`
	TotalPayments    *float64 `json:"total_payments"`
	BodyPayments     *float64 `json:"body_payments"`
	PercentPayments  *float64 `json:"percent_payments"`
}

// NewCreditLedgerEntry applies the closed/open branch rule to a ledger row.
func NewCreditLedgerEntry(row CreditLedgerRow) CreditLedgerEntry {
	returnDate := row.ReturnDate
	entry := CreditLedgerEntry{
		CreditID:         row.CreditID,
		IssuanceDate:     row.IssuanceDate,
		IsClosed:         row.IsClosed,
		ActualReturnDate: row.ActualReturnDate,
		ReturnDate:       &returnDate,
		Body:             row.Body,
		Percent:          row.Percent,
	}

	if row.IsClosed {
		total := row.TotalPayments
		entry.TotalPayments = &total
		return entry
	}

	bodyPayments, percentPayments := row.BodyPayments, row.PercentPayments
	entry.BodyPayments = &bodyPayments
	entry.PercentPayments = &percentPayments
	if row.OverdueDays != nil && *row.OverdueDays > 0 {
		days := *row.OverdueDays
		entry.OverdueDays = &days
	}
	return entry
}
