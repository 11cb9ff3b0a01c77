package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/apperrors"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/simulation"
)

// scenarioWriteConcurrency bounds the item-write fan-out during a scenario
// save.
const scenarioWriteConcurrency = 8

// variableSpendName labels scenarios created by the variable-spend
// projection and their monthly items.
const (
	variableSpendName     = "Orçamento Variável (Estimado)"
	variableSpendItemName = "Despesas Variáveis (Não Parceladas)"
)

// ScenarioStore is the persistence contract the scenario engine writes
// through. Item writes are independent: a failed write never undoes an
// earlier one.
type ScenarioStore interface {
	List() ([]model.Scenario, error)
	Get(id int64) (model.Scenario, error)
	Create(name, description string) (model.Scenario, error)
	Delete(id int64) error
	AddItem(item model.ScenarioItem) (model.ScenarioItem, error)
}

// ScenarioService manages saved scenarios: CRUD, exploding an edited
// simulation matrix into a new scenario, and the variable-spend projection.
type ScenarioService struct {
	store ScenarioStore
}

// NewScenarioService creates a new ScenarioService backed by the provided store.
func NewScenarioService(store ScenarioStore) *ScenarioService {
	return &ScenarioService{store: store}
}

// ListScenarios retrieves all scenarios with their items.
func (s *ScenarioService) ListScenarios() ([]model.Scenario, error) {
	scenarios, err := s.store.List()
	if err != nil {
		return nil, err
	}
	if scenarios == nil {
		scenarios = []model.Scenario{}
	}
	return scenarios, nil
}

// GetScenario retrieves a single scenario by ID.
func (s *ScenarioService) GetScenario(id int64) (model.Scenario, error) {
	scenario, err := s.store.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Scenario{}, apperrors.ErrScenarioNotFound
	}
	return scenario, err
}

// CreateScenario stores a new empty scenario.
func (s *ScenarioService) CreateScenario(name, description string) (model.Scenario, []model.ResourceTag, error) {
	scenario, err := s.store.Create(name, description)
	if err != nil {
		return model.Scenario{}, nil, err
	}
	return scenario, []model.ResourceTag{model.TagScenarios}, nil
}

// DeleteScenario removes a scenario and its items.
func (s *ScenarioService) DeleteScenario(id int64) ([]model.ResourceTag, error) {
	if err := s.store.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrScenarioNotFound
		}
		return nil, err
	}
	return []model.ResourceTag{model.TagScenarios, model.TagSimulation}, nil
}

// AddItem stores one scenario item. The amount sign is normalized to the
// item type so overlay math can use stored amounts directly.
func (s *ScenarioService) AddItem(scenarioID int64, item model.ScenarioItem) (model.Scenario, []model.ResourceTag, error) {
	if _, err := s.GetScenario(scenarioID); err != nil {
		return model.Scenario{}, nil, err
	}

	item.ScenarioID = scenarioID
	item.Amount = NormalizeAmount(item.Amount, item.Type)
	if item.Installments < 1 {
		item.Installments = 1
	}
	if item.SourceType == "" {
		item.SourceType = model.SourceManual
	}

	if _, err := s.store.AddItem(item); err != nil {
		return model.Scenario{}, nil, err
	}

	scenario, err := s.GetScenario(scenarioID)
	if err != nil {
		return model.Scenario{}, nil, err
	}
	return scenario, []model.ResourceTag{model.TagScenarios, model.TagSimulation}, nil
}

// SaveMatrix explodes an edited simulation matrix into a new scenario.
//
// The scenario is created first, then one write per non-zero non-baseline
// month slot is dispatched; writes fan out concurrently and all settle
// before the call returns. Writes are not atomic and are never rolled back:
// when some fail, the scenario and its successful items remain persisted and
// a PartialSaveError reports the attempted/written counts so the caller can
// decide whether to keep or delete the partial result.
func (s *ScenarioService) SaveMatrix(ctx context.Context, name string, matrix *simulation.Matrix, now time.Time) (model.Scenario, []model.ResourceTag, error) {
	scenario, err := s.store.Create(name, "")
	if err != nil {
		return model.Scenario{}, nil, err
	}

	items := matrix.Explode(now)
	tags := []model.ResourceTag{model.TagScenarios, model.TagSimulation}

	if err := s.writeItems(ctx, scenario.ID, items); err != nil {
		return scenario, tags, err
	}

	saved, err := s.GetScenario(scenario.ID)
	if err != nil {
		return scenario, tags, err
	}
	return saved, tags, nil
}

// ProjectVariableSpend creates a scenario of estimated monthly variable card
// spend: one EXPENSE item of -|estimate| per month, from the month after now
// through the terminal (year, month) inclusive, advancing one calendar month
// per step. Writes follow the same fan-out, at-least-partial-success
// semantics as SaveMatrix.
func (s *ScenarioService) ProjectVariableSpend(ctx context.Context, estimate float64, terminalYear int, terminalMonth time.Month, now time.Time) (model.Scenario, []model.ResourceTag, error) {
	scenario, err := s.store.Create(variableSpendName, "")
	if err != nil {
		return model.Scenario{}, nil, err
	}

	amount := estimate
	if amount < 0 {
		amount = -amount
	}

	var items []model.ScenarioItem
	due := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	for !beforeMonth(terminalYear, terminalMonth, due.Year(), due.Month()) {
		items = append(items, model.ScenarioItem{
			Description:  variableSpendItemName,
			Amount:       -amount,
			Type:         model.TypeExpense,
			StartDate:    due,
			Installments: 1,
			SourceType:   model.SourceXPCard,
		})
		due = due.AddDate(0, 1, 0)
	}

	tags := []model.ResourceTag{model.TagScenarios, model.TagSimulation}
	if err := s.writeItems(ctx, scenario.ID, items); err != nil {
		return scenario, tags, err
	}

	saved, err := s.GetScenario(scenario.ID)
	if err != nil {
		return scenario, tags, err
	}
	return saved, tags, nil
}

// writeItems dispatches the item writes concurrently and waits for all of
// them to settle. Cancellation mid-batch is not supported: once dispatched,
// the batch only reports which writes failed after the fact.
func (s *ScenarioService) writeItems(ctx context.Context, scenarioID int64, items []model.ScenarioItem) error {
	if len(items) == 0 {
		return nil
	}

	var mu sync.Mutex
	var failures []error

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(scenarioWriteConcurrency)

	for _, item := range items {
		item.ScenarioID = scenarioID
		item.Amount = NormalizeAmount(item.Amount, item.Type)
		g.Go(func() error {
			if _, err := s.store.AddItem(item); err != nil {
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
			}
			// Errors are collected, not returned: a failed write must not
			// cancel the remaining writes in the batch.
			return nil
		})
	}

	_ = g.Wait()

	if len(failures) > 0 {
		return &apperrors.PartialSaveError{
			ScenarioID: scenarioID,
			Attempted:  len(items),
			Written:    len(items) - len(failures),
			Errs:       failures,
		}
	}
	return nil
}
