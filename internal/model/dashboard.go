package model

// MonthlyFlow is one month's income/expense totals in a dashboard summary.
// Balance is the signed sum of income and expense (expense is negative, so
// no sign flip is involved). IsProjected marks months strictly after the
// current one, whose figures come from recurring/installment projection
// rather than actual data; it is derived, never stored.
type MonthlyFlow struct {
	Month       int     `json:"month"`
	Income      float64 `json:"income"`
	Expense     float64 `json:"expense"`
	Balance     float64 `json:"balance"`
	IsProjected bool    `json:"is_projected"`
}

// DashboardSummary aggregates a full year of monthly flows.
type DashboardSummary struct {
	Year         int           `json:"year"`
	TotalIncome  float64       `json:"total_income"`
	TotalExpense float64       `json:"total_expense"`
	Balance      float64       `json:"balance"`
	MonthlyData  []MonthlyFlow `json:"monthly_data"`
}

// CategoryBreakdown is one category's signed total for a period.
type CategoryBreakdown struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// DashboardBreakdown holds per-source and per-category totals for a period.
type DashboardBreakdown struct {
	BySource   map[string]float64  `json:"by_source"`
	ByCategory []CategoryBreakdown `json:"by_category"`
}

// Financial health status values.
const (
	StatusComfort  = "COMFORT"
	StatusSurvival = "SURVIVAL"
)

// FinancialHealth compares available cash against outstanding card debt.
// Ratio is capped at 100 to keep progress-bar semantics bounded; consumers
// needing the true surplus magnitude use Liquidity and Liability directly.
type FinancialHealth struct {
	Liquidity float64 `json:"liquidity"`
	Liability float64 `json:"liability"`
	Ratio     float64 `json:"ratio"`
	Status    string  `json:"status"`
}
