package service

import (
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/repository"
)

// installmentLookback bounds how far back installment plans are considered
// still active. Plans whose latest occurrence is older than this are treated
// as abandoned rather than projected forward.
const installmentLookback = 90 * 24 * time.Hour

// DashboardService computes the year-level aggregates behind the dashboard:
// monthly income/expense flows with projected future months, source and
// category breakdowns, and the financial health ratio.
type DashboardService struct {
	transactionRepo *repository.TransactionRepository
	recurringRepo   *repository.RecurringRepository
}

// NewDashboardService creates a new DashboardService with the provided repository dependencies.
func NewDashboardService(
	transactionRepo *repository.TransactionRepository,
	recurringRepo *repository.RecurringRepository,
) *DashboardService {
	return &DashboardService{
		transactionRepo: transactionRepo,
		recurringRepo:   recurringRepo,
	}
}

// Summary returns the twelve monthly income/expense buckets for a year.
//
// Months up to and including the current one report actual data only. Months
// strictly after the current (year, month) that have no actual data are
// filled from recurring-template expansion plus installment plans with
// occurrences still remaining, and are flagged IsProjected so consumers can
// render them distinctly. The flag is a pure function of the target month
// and now, never stored.
//
// Balance is the signed sum of income and expense; expense totals are
// already negative so no subtraction is involved.
func (s *DashboardService) Summary(year int, now time.Time) (model.DashboardSummary, error) {
	flows, err := s.transactionRepo.MonthlyFlows(year)
	if err != nil {
		return model.DashboardSummary{}, err
	}

	var templates []model.RecurringTemplate
	var plans []installmentPlan
	if hasProjectedMonths(year, now) {
		templates, err = s.recurringRepo.ListActive()
		if err != nil {
			return model.DashboardSummary{}, err
		}

		installments, err := s.transactionRepo.ListInstallments(now.Add(-installmentLookback))
		if err != nil {
			return model.DashboardSummary{}, err
		}
		plans = inferInstallmentPlans(installments)
	}

	summary := model.DashboardSummary{
		Year:        year,
		MonthlyData: make([]model.MonthlyFlow, 0, 12),
	}

	for m := 1; m <= 12; m++ {
		flow := model.MonthlyFlow{Month: m}
		if actual, ok := flows[m]; ok {
			flow.Income = actual.Income
			flow.Expense = actual.Expense
		}
		flow.IsProjected = isProjectedMonth(year, time.Month(m), now)

		if flow.IsProjected && flow.Income == 0 && flow.Expense == 0 {
			flow.Income, flow.Expense = projectedFlow(templates, plans, year, time.Month(m))
		}

		flow.Balance = flow.Income + flow.Expense
		summary.TotalIncome += flow.Income
		summary.TotalExpense += flow.Expense
		summary.MonthlyData = append(summary.MonthlyData, flow)
	}

	summary.Balance = summary.TotalIncome + summary.TotalExpense
	return summary, nil
}

// Breakdown returns signed totals per source and per category for a year,
// optionally narrowed to one month.
func (s *DashboardService) Breakdown(year, month int) (model.DashboardBreakdown, error) {
	bySource, err := s.transactionRepo.SourceTotals(year, month)
	if err != nil {
		return model.DashboardBreakdown{}, err
	}

	byCategory, err := s.transactionRepo.CategoryTotals(year, month)
	if err != nil {
		return model.DashboardBreakdown{}, err
	}
	if byCategory == nil {
		byCategory = []model.CategoryBreakdown{}
	}

	return model.DashboardBreakdown{
		BySource:   bySource,
		ByCategory: byCategory,
	}, nil
}

// Health compares cash across debit sources against outstanding card debt
// for a year. Invoice settlements stay included here: they move real money,
// so both positions must count them.
func (s *DashboardService) Health(year int) (model.FinancialHealth, error) {
	liquidity, err := s.transactionRepo.SumBySources(year, []string{model.SourceXPAccount, model.SourceManual})
	if err != nil {
		return model.FinancialHealth{}, err
	}

	liability, err := s.transactionRepo.SumBySources(year, []string{model.SourceXPCard})
	if err != nil {
		return model.FinancialHealth{}, err
	}

	return EvaluateHealth(liquidity, liability), nil
}

// EvaluateHealth derives the capped liquidity-vs-liability ratio and status.
//
// With no liability the ratio is 100 when any cash is available, 0 otherwise.
// Otherwise it is liquidity/|liability| as a percentage, capped at 100 to
// keep progress-bar semantics bounded; callers needing the true surplus use
// Liquidity and Liability directly.
func EvaluateHealth(liquidity, liability float64) model.FinancialHealth {
	absLiability := liability
	if absLiability < 0 {
		absLiability = -absLiability
	}

	var ratio float64
	switch {
	case absLiability == 0 && liquidity > 0:
		ratio = 100
	case absLiability == 0:
		ratio = 0
	default:
		ratio = liquidity / absLiability * 100
		if ratio > 100 {
			ratio = 100
		}
	}

	status := model.StatusSurvival
	if liquidity >= absLiability {
		status = model.StatusComfort
	}

	return model.FinancialHealth{
		Liquidity: liquidity,
		Liability: liability,
		Ratio:     round(ratio),
		Status:    status,
	}
}

// projectedFlow sums expanded recurring occurrences and due installment
// amounts into income/expense buckets for one future month. TRANSFER
// occurrences stay out of both buckets.
func projectedFlow(templates []model.RecurringTemplate, plans []installmentPlan, year int, month time.Month) (income, expense float64) {
	for _, occ := range ExpandTemplates(templates, year, month) {
		switch occ.Type {
		case model.TypeIncome:
			income += occ.Amount
		case model.TypeExpense:
			expense += occ.Amount
		}
	}

	for _, plan := range plans {
		if !plan.dueIn(year, month) {
			continue
		}
		switch plan.Type {
		case model.TypeIncome:
			income += plan.Amount
		case model.TypeExpense:
			expense += plan.Amount
		}
	}

	return income, expense
}

// isProjectedMonth reports whether (year, month) is strictly after the
// current month.
func isProjectedMonth(year int, month time.Month, now time.Time) bool {
	return beforeMonth(now.Year(), now.Month(), year, month)
}

// hasProjectedMonths reports whether any month of the year lies in the
// future, in which case projection inputs must be loaded.
func hasProjectedMonths(year int, now time.Time) bool {
	return isProjectedMonth(year, time.December, now)
}
