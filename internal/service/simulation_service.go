package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/apperrors"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/repository"
)

// SimulationService builds the forward cash-flow projection feed: one row
// per recurring template, unfinished installment plan and scenario item,
// with one signed value per projected month.
type SimulationService struct {
	recurringRepo   *repository.RecurringRepository
	transactionRepo *repository.TransactionRepository
	scenarioRepo    *repository.ScenarioRepository
}

// NewSimulationService creates a new SimulationService with the provided repository dependencies.
func NewSimulationService(
	recurringRepo *repository.RecurringRepository,
	transactionRepo *repository.TransactionRepository,
	scenarioRepo *repository.ScenarioRepository,
) *SimulationService {
	return &SimulationService{
		recurringRepo:   recurringRepo,
		transactionRepo: transactionRepo,
		scenarioRepo:    scenarioRepo,
	}
}

// Projection builds the month-by-month projection starting at the first day
// of the month after now.
//
// The baseline holds one row per active recurring template (value present in
// every projected month inside its validity window) and one row per
// installment plan that still has occurrences left, its remaining amounts
// placed one per month after the latest paid installment. When scenarioID is
// non-zero the scenario's items overlay the baseline additively: recurring
// items fill every month from their start, finite items fill their
// installment count of consecutive months.
func (s *SimulationService) Projection(months int, scenarioID int64, now time.Time) (model.SimulationProjection, error) {
	if months < 1 || months > 60 {
		months = 12
	}

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	dates := make([]time.Time, months)
	headers := make([]string, months)
	for i := range dates {
		dates[i] = start.AddDate(0, i, 0)
		headers[i] = dates[i].Format("Jan 2006")
	}

	items := []model.SimulationItem{}

	recurringItems, err := s.recurringItems(dates)
	if err != nil {
		return model.SimulationProjection{}, err
	}
	items = append(items, recurringItems...)

	installmentItems, err := s.installmentItems(dates, now)
	if err != nil {
		return model.SimulationProjection{}, err
	}
	items = append(items, installmentItems...)

	if scenarioID != 0 {
		scenarioItems, err := s.scenarioItems(dates, scenarioID)
		if err != nil {
			return model.SimulationProjection{}, err
		}
		items = append(items, scenarioItems...)
	}

	return model.SimulationProjection{
		MonthHeaders: headers,
		Items:        items,
	}, nil
}

// recurringItems expands every active template across the projected months.
// Malformed templates are logged and skipped, never failing the projection.
func (s *SimulationService) recurringItems(dates []time.Time) ([]model.SimulationItem, error) {
	templates, err := s.recurringRepo.ListActive()
	if err != nil {
		return nil, err
	}

	items := make([]model.SimulationItem, 0, len(templates))
	for _, t := range templates {
		values := make([]float64, len(dates))
		malformed := false
		for i, d := range dates {
			occ, ok, err := ExpandTemplate(t, d.Year(), d.Month())
			if err != nil {
				log.Printf("Skipping recurring template %s (%q): %v", t.ID, t.Description, err)
				malformed = true
				break
			}
			if ok {
				values[i] = occ.Amount
			}
		}
		if malformed {
			continue
		}
		items = append(items, model.SimulationItem{
			Name:   t.Description,
			Type:   t.Type,
			Values: values,
			Source: model.SourceRecurring,
		})
	}

	return items, nil
}

// installmentItems projects the remaining occurrences of each unfinished
// installment plan. Rows are labeled with the next installment position,
// e.g. "Notebook (4/10)", and tagged INSTALLMENT.
func (s *SimulationService) installmentItems(dates []time.Time, now time.Time) ([]model.SimulationItem, error) {
	transactions, err := s.transactionRepo.ListInstallments(now.Add(-installmentLookback))
	if err != nil {
		return nil, err
	}

	plans := inferInstallmentPlans(transactions)
	items := make([]model.SimulationItem, 0, len(plans))
	for _, plan := range plans {
		values := make([]float64, len(dates))
		any := false
		for i, d := range dates {
			if plan.dueIn(d.Year(), d.Month()) {
				values[i] = plan.Amount
				any = true
			}
		}
		if !any {
			continue
		}
		items = append(items, model.SimulationItem{
			Name:   fmt.Sprintf("%s (%d/%d)", plan.Description, plan.LastN+1, plan.Total),
			Type:   plan.Type,
			Values: values,
			Source: model.SourceInstallment,
		})
	}

	return items, nil
}

// scenarioItems maps a scenario's dated entries onto the projected months.
func (s *SimulationService) scenarioItems(dates []time.Time, scenarioID int64) ([]model.SimulationItem, error) {
	scenario, err := s.scenarioRepo.Get(scenarioID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrScenarioNotFound
		}
		return nil, err
	}

	items := make([]model.SimulationItem, 0, len(scenario.Items))
	for _, item := range scenario.Items {
		values := make([]float64, len(dates))

		if item.IsRecurring {
			for i, d := range dates {
				if !beforeMonth(d.Year(), d.Month(), item.StartDate.Year(), item.StartDate.Month()) {
					values[i] = item.Amount
				}
			}
		} else {
			due := time.Date(item.StartDate.Year(), item.StartDate.Month(), 1, 0, 0, 0, 0, time.UTC)
			for n := 0; n < item.Installments; n++ {
				for i, d := range dates {
					if d.Year() == due.Year() && d.Month() == due.Month() {
						values[i] = item.Amount
					}
				}
				due = due.AddDate(0, 1, 0)
			}
		}

		items = append(items, model.SimulationItem{
			Name:   fmt.Sprintf("[%s] %s", scenario.Name, item.Description),
			Type:   item.Type,
			Values: values,
			Source: item.SourceType,
		})
	}

	return items, nil
}
