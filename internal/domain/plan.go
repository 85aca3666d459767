package domain

// Plan is a monthly target for one category. Period is always the first day
// of a month and (Period, CategoryID) is unique.
type Plan struct {
	ID         int64 `json:"id" db:"id"`
	Period     Date  `json:"period" db:"period"`
	Sum        int64 `json:"sum" db:"sum"`
	CategoryID int64 `json:"category_id" db:"category_id"`
}

// PlanRow is one row of an uploaded plan batch.
type PlanRow struct {
	Month        string `json:"month" validate:"required"`
	CategoryName string `json:"category_name" validate:"required"`
	Sum          int64  `json:"sum" validate:"gte=0"`
}

// PlanMonth is the per-period pivot of issuance and collection targets.
type PlanMonth struct {
	Period            Date  `db:"period"`
	PlanIssuanceSum   int64 `db:"plan_issuance_sum"`
	PlanCollectionSum int64 `db:"plan_collection_sum"`
	Month             int   `db:"month"`
}

// PlanActualRow is a plan joined to its category with the actual amount
// accumulated since the plan period.
type PlanActualRow struct {
	Period    Date    `db:"period"`
	Category  string  `db:"category"`
	PlanSum   int64   `db:"plan_sum"`
	ActualSum float64 `db:"actual_sum"`
}

// InsertPlansResult summarizes a committed plan batch.
type InsertPlansResult struct {
	BatchID       string `json:"batch_id"`
	Inserted      int    `json:"inserted"`
	AffectedYears []int  `json:"affected_years"`
}
