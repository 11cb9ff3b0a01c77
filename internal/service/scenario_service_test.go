package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/apperrors"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/repository"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/service"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/simulation"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/testutil"
)

// flakyStore wraps a real scenario store and fails AddItem for items whose
// description matches a marker, to exercise partial-save reporting.
type flakyStore struct {
	service.ScenarioStore
	failMarker string
}

func (s *flakyStore) AddItem(item model.ScenarioItem) (model.ScenarioItem, error) {
	if strings.Contains(item.Description, s.failMarker) {
		return model.ScenarioItem{}, errors.New("simulated write failure")
	}
	return s.ScenarioStore.AddItem(item)
}

// TestScenarioService_AddItem tests item persistence with sign normalization.
//
// WHY: Stored scenario amounts must already carry the sign of their type so
// the projection overlay is pure addition; a magnitude slipping through would
// flip a month's balance.
func TestScenarioService_AddItem(t *testing.T) {
	t.Run("normalizes the amount sign to the item type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestScenarioService(t, db)

		scenario, _, err := svc.CreateScenario("Plano A", "")
		if err != nil {
			t.Fatalf("CreateScenario() returned unexpected error: %v", err)
		}

		saved, tags, err := svc.AddItem(scenario.ID, model.ScenarioItem{
			Description: "Curso",
			Amount:      400, // positive magnitude for an expense
			Type:        model.TypeExpense,
			StartDate:   time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("AddItem() returned unexpected error: %v", err)
		}

		if len(saved.Items) != 1 {
			t.Fatalf("Expected 1 item, got %d", len(saved.Items))
		}
		if saved.Items[0].Amount != -400 {
			t.Errorf("Expected normalized amount -400, got %v", saved.Items[0].Amount)
		}
		if saved.Items[0].Installments != 1 {
			t.Errorf("Expected defaulted installments 1, got %d", saved.Items[0].Installments)
		}
		if len(tags) == 0 {
			t.Error("Expected invalidation tags, got none")
		}
	})

	t.Run("adding to a missing scenario returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestScenarioService(t, db)

		_, _, err := svc.AddItem(999, model.ScenarioItem{
			Description: "Curso",
			Amount:      -400,
			Type:        model.TypeExpense,
			StartDate:   time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		})
		if !errors.Is(err, apperrors.ErrScenarioNotFound) {
			t.Errorf("Expected ErrScenarioNotFound, got %v", err)
		}
	})
}

// TestScenarioService_SaveMatrix tests exploding an edited grid into a
// persisted scenario.
//
// WHY: Save is the bridge from the ephemeral editing surface to durable
// state. Every non-zero edited cell must come back as one dated item, and
// baseline rows must never be duplicated into the scenario.
func TestScenarioService_SaveMatrix(t *testing.T) {
	now := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

	projection := model.SimulationProjection{
		MonthHeaders: []string{"Oct 2025", "Nov 2025", "Dec 2025"},
		Items: []model.SimulationItem{
			{Name: "Aluguel", Type: model.TypeExpense, Values: []float64{-1200, -1200, -1200}, Source: model.SourceRecurring},
			{Name: "Freela", Type: model.TypeIncome, Values: []float64{0, 800, 0}, Source: model.SourceManual},
			{Name: "Viagem", Type: model.TypeExpense, Values: []float64{0, 0, -2500}, Source: model.SourceManual},
		},
	}

	t.Run("persists one item per non-zero non-baseline cell", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestScenarioService(t, db)

		scenario, _, err := svc.SaveMatrix(context.Background(), "Plano viagem", simulation.New(projection), now)
		if err != nil {
			t.Fatalf("SaveMatrix() returned unexpected error: %v", err)
		}

		if scenario.Name != "Plano viagem" {
			t.Errorf("Expected scenario name to be kept, got %q", scenario.Name)
		}
		if len(scenario.Items) != 2 {
			t.Fatalf("Expected 2 items (baseline row excluded), got %d", len(scenario.Items))
		}

		byDesc := make(map[string]model.ScenarioItem)
		for _, item := range scenario.Items {
			byDesc[item.Description] = item
		}

		freela, ok := byDesc["Freela"]
		if !ok {
			t.Fatal("Expected a Freela item")
		}
		if freela.Amount != 800 {
			t.Errorf("Expected income amount 800, got %v", freela.Amount)
		}
		wantStart := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
		if !freela.StartDate.Equal(wantStart) {
			t.Errorf("Expected start date %s (slot 1), got %s", wantStart, freela.StartDate)
		}

		viagem, ok := byDesc["Viagem"]
		if !ok {
			t.Fatal("Expected a Viagem item")
		}
		if viagem.Amount != -2500 {
			t.Errorf("Expected normalized expense amount -2500, got %v", viagem.Amount)
		}
	})

	t.Run("concurrent writes beyond the fan-out limit all persist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestScenarioService(t, db)

		// More rows than the write concurrency limit, one non-zero cell
		// each, so the fan-out saturates and every in-flight write shares
		// the same database.
		items := make([]model.SimulationItem, 20)
		for i := range items {
			items[i] = model.SimulationItem{
				Name:   testutil.MakeDescription("Gasto"),
				Type:   model.TypeExpense,
				Values: []float64{-100, 0, 0},
				Source: model.SourceManual,
			}
		}
		wide := model.SimulationProjection{
			MonthHeaders: projection.MonthHeaders,
			Items:        items,
		}

		scenario, _, err := svc.SaveMatrix(context.Background(), "Plano largo", simulation.New(wide), now)
		if err != nil {
			t.Fatalf("SaveMatrix() returned unexpected error: %v", err)
		}
		if len(scenario.Items) != 20 {
			t.Fatalf("Expected all 20 items persisted, got %d", len(scenario.Items))
		}
	})

	t.Run("reports partial failure without rolling back successful writes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := &flakyStore{
			ScenarioStore: repository.NewScenarioRepository(db),
			failMarker:    "Viagem",
		}
		svc := service.NewScenarioService(store)

		scenario, _, err := svc.SaveMatrix(context.Background(), "Plano parcial", simulation.New(projection), now)
		if err == nil {
			t.Fatal("Expected a partial save error, got nil")
		}

		var partial *apperrors.PartialSaveError
		if !errors.As(err, &partial) {
			t.Fatalf("Expected PartialSaveError, got %v", err)
		}
		if partial.Attempted != 2 {
			t.Errorf("Expected 2 attempted writes, got %d", partial.Attempted)
		}
		if partial.Written != 1 {
			t.Errorf("Expected 1 successful write, got %d", partial.Written)
		}

		// Successful item remains persisted under the created scenario.
		saved, getErr := svc.GetScenario(scenario.ID)
		if getErr != nil {
			t.Fatalf("GetScenario() returned unexpected error: %v", getErr)
		}
		if len(saved.Items) != 1 {
			t.Fatalf("Expected the surviving item to stay persisted, got %d items", len(saved.Items))
		}
		if saved.Items[0].Description != "Freela" {
			t.Errorf("Expected surviving item Freela, got %q", saved.Items[0].Description)
		}
	})
}

// TestScenarioService_ProjectVariableSpend tests the estimated-spend scenario
// generation.
//
// WHY: The projection must cover every month from next month through the
// terminal month inclusive, one negative card expense per month, stepping
// calendar months rather than fixed day counts.
func TestScenarioService_ProjectVariableSpend(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestScenarioService(t, db)

	now := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

	scenario, _, err := svc.ProjectVariableSpend(context.Background(), 2500, 2026, time.January, now)
	if err != nil {
		t.Fatalf("ProjectVariableSpend() returned unexpected error: %v", err)
	}

	// Oct, Nov, Dec 2025 and Jan 2026.
	if len(scenario.Items) != 4 {
		t.Fatalf("Expected 4 monthly items, got %d", len(scenario.Items))
	}

	months := make(map[string]bool)
	for _, item := range scenario.Items {
		if item.Amount != -2500 {
			t.Errorf("Expected amount -2500, got %v", item.Amount)
		}
		if item.Type != model.TypeExpense {
			t.Errorf("Expected EXPENSE items, got %s", item.Type)
		}
		if item.SourceType != model.SourceXPCard {
			t.Errorf("Expected source %s, got %s", model.SourceXPCard, item.SourceType)
		}
		if item.StartDate.Day() != 1 {
			t.Errorf("Expected items dated the first of the month, got day %d", item.StartDate.Day())
		}
		months[item.StartDate.Format("2006-01")] = true
	}

	for _, want := range []string{"2025-10", "2025-11", "2025-12", "2026-01"} {
		if !months[want] {
			t.Errorf("Expected an item for %s", want)
		}
	}
}
