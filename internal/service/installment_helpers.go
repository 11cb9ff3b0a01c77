package service

import (
	"strings"
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
)

// installmentPlan is a multi-month purchase reconstructed from its persisted
// installment transactions. The latest occurrence fixes where the plan
// stands; the remaining occurrences fall due one per month after it.
type installmentPlan struct {
	Description string
	Amount      float64
	Type        string
	SourceType  string
	LastDate    time.Time
	LastN       int
	Total       int
}

// remaining returns how many installments are still due.
func (p installmentPlan) remaining() int {
	return p.Total - p.LastN
}

// dueIn reports whether one of the plan's remaining installments falls in
// the given (year, month). Due months run consecutively starting the month
// after the latest occurrence.
func (p installmentPlan) dueIn(year int, month time.Month) bool {
	due := time.Date(p.LastDate.Year(), p.LastDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < p.remaining(); i++ {
		due = due.AddDate(0, 1, 0)
		if due.Year() == year && due.Month() == month {
			return true
		}
	}
	return false
}

// inferInstallmentPlans groups raw installment transactions into plans.
//
// Rows sharing a normalized description and installment count belong to the
// same purchase; the row with the latest date decides the current position.
// Finished plans (latest index equals the total) are dropped since nothing
// remains to project.
func inferInstallmentPlans(transactions []model.Transaction) []installmentPlan {
	type planKey struct {
		desc  string
		total int
	}

	latest := make(map[planKey]model.Transaction)
	var order []planKey
	for _, t := range transactions {
		if t.InstallmentN == nil || t.InstallmentTotal == nil {
			continue
		}
		key := planKey{
			desc:  strings.ToLower(strings.TrimSpace(t.Description)),
			total: *t.InstallmentTotal,
		}
		current, seen := latest[key]
		if !seen {
			order = append(order, key)
		}
		if !seen || t.Date.After(current.Date) {
			latest[key] = t
		}
	}

	plans := make([]installmentPlan, 0, len(latest))
	for _, key := range order {
		t := latest[key]
		plan := installmentPlan{
			Description: t.Description,
			Amount:      t.Amount,
			Type:        t.Type,
			SourceType:  t.SourceType,
			LastDate:    referenceOrDate(t),
			LastN:       *t.InstallmentN,
			Total:       *t.InstallmentTotal,
		}
		if plan.remaining() > 0 {
			plans = append(plans, plan)
		}
	}

	return plans
}

// referenceOrDate prefers the statement reference date and falls back to the
// transaction date, matching how card purchases are anchored to months.
func referenceOrDate(t model.Transaction) time.Time {
	if !t.ReferenceDate.IsZero() {
		return t.ReferenceDate
	}
	return t.Date
}
