package domain

// MonthlyPerformance compares plan and actual figures for one plan period.
type MonthlyPerformance struct {
	MonthYear                    string  `json:"month_year"`
	IssuanceCount                int     `json:"issuance_count"`
	PlanIssuanceSum              int64   `json:"plan_issuance_sum"`
	ActualIssuanceSum            float64 `json:"actual_issuance_sum"`
	IssuancePerformancePercent   float64 `json:"issuance_performance_percent"`
	PaymentCount                 int     `json:"payment_count"`
	PlanCollectionSum            int64   `json:"plan_collection_sum"`
	ActualCollectionSum          float64 `json:"actual_collection_sum"`
	CollectionPerformancePercent float64 `json:"collection_performance_percent"`
	IssuancePercentOfYear        float64 `json:"issuance_percent_of_year"`
	CollectionPercentOfYear      float64 `json:"collection_percent_of_year"`
}

// PlanPerformance is the progress of a single plan as of a check date.
type PlanPerformance struct {
	Month              Date    `json:"month"`
	Category           string  `json:"category"`
	PlanSum            int64   `json:"plan_sum"`
	ActualSum          float64 `json:"actual_sum"`
	PerformancePercent float64 `json:"performance_percent"`
}
