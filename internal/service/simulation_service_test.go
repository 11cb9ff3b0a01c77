package service_test

import (
	"testing"
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/testutil"
)

// TestSimulationService_Projection tests the baseline projection feed.
//
// WHY: The feed drives the entire simulation surface. The horizon must start
// the month after now, recurring templates must fill their active window,
// and installment plans must continue from their latest paid position.
func TestSimulationService_Projection(t *testing.T) {
	now := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

	t.Run("headers start at the month after now", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSimulationService(t, db)

		projection, err := svc.Projection(3, 0, now)
		if err != nil {
			t.Fatalf("Projection() returned unexpected error: %v", err)
		}

		want := []string{"Oct 2025", "Nov 2025", "Dec 2025"}
		if len(projection.MonthHeaders) != len(want) {
			t.Fatalf("Expected %d headers, got %d", len(want), len(projection.MonthHeaders))
		}
		for i, h := range want {
			if projection.MonthHeaders[i] != h {
				t.Errorf("Expected header %q at %d, got %q", h, i, projection.MonthHeaders[i])
			}
		}
	})

	t.Run("out-of-range month counts fall back to twelve", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSimulationService(t, db)

		projection, err := svc.Projection(0, 0, now)
		if err != nil {
			t.Fatalf("Projection() returned unexpected error: %v", err)
		}
		if len(projection.MonthHeaders) != 12 {
			t.Errorf("Expected 12 headers, got %d", len(projection.MonthHeaders))
		}
	})

	t.Run("recurring template fills its active months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSimulationService(t, db)

		end := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)
		testutil.NewRecurring().
			WithDescription("Aluguel").
			WithAmount(-1200).
			WithDayOfMonth(5).
			WithStartDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).
			WithEndDate(end).
			Build(t, db)

		projection, err := svc.Projection(4, 0, now)
		if err != nil {
			t.Fatalf("Projection() returned unexpected error: %v", err)
		}

		if len(projection.Items) != 1 {
			t.Fatalf("Expected 1 row, got %d", len(projection.Items))
		}

		row := projection.Items[0]
		if row.Source != model.SourceRecurring {
			t.Errorf("Expected source RECURRING, got %s", row.Source)
		}

		// Oct and Nov are inside the window, Dec 2025 and Jan 2026 are not.
		want := []float64{-1200, -1200, 0, 0}
		for i, v := range want {
			if row.Values[i] != v {
				t.Errorf("Expected value %v at month %d, got %v", v, i, row.Values[i])
			}
		}
	})

	t.Run("installment plan continues from the latest paid position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSimulationService(t, db)

		// 10-installment purchase with installment 3 paid in September.
		testutil.NewTransaction().
			WithDate(time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)).
			WithDescription("Notebook").
			WithAmount(-300).
			WithInstallment(2, 10).
			Build(t, db)
		testutil.NewTransaction().
			WithDate(time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)).
			WithDescription("Notebook").
			WithAmount(-300).
			WithInstallment(3, 10).
			Build(t, db)

		projection, err := svc.Projection(12, 0, now)
		if err != nil {
			t.Fatalf("Projection() returned unexpected error: %v", err)
		}

		if len(projection.Items) != 1 {
			t.Fatalf("Expected 1 row, got %d", len(projection.Items))
		}

		row := projection.Items[0]
		if row.Name != "Notebook (4/10)" {
			t.Errorf("Expected row name 'Notebook (4/10)', got %q", row.Name)
		}
		if row.Source != model.SourceInstallment {
			t.Errorf("Expected source INSTALLMENT, got %s", row.Source)
		}

		// 7 installments remain: Oct 2025 through Apr 2026.
		remaining := 0
		for _, v := range row.Values {
			if v != 0 {
				if v != -300 {
					t.Errorf("Expected installment value -300, got %v", v)
				}
				remaining++
			}
		}
		if remaining != 7 {
			t.Errorf("Expected 7 remaining installments, got %d", remaining)
		}
		if row.Values[0] != -300 {
			t.Error("Expected the next installment due in the first projected month")
		}
	})

	t.Run("scenario overlay maps items onto their months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSimulationService(t, db)

		scenario := testutil.CreateScenario(t, db, "Plano B")
		testutil.CreateScenarioItem(t, db, scenario.ID, model.ScenarioItem{
			Description:  "Curso",
			Amount:       -400,
			Type:         model.TypeExpense,
			StartDate:    time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
			Installments: 2,
		})
		testutil.CreateScenarioItem(t, db, scenario.ID, model.ScenarioItem{
			Description: "Mentoria",
			Amount:      1000,
			Type:        model.TypeIncome,
			StartDate:   time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			IsRecurring: true,
		})

		projection, err := svc.Projection(4, scenario.ID, now)
		if err != nil {
			t.Fatalf("Projection() returned unexpected error: %v", err)
		}

		if len(projection.Items) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(projection.Items))
		}

		byName := make(map[string][]float64)
		for _, row := range projection.Items {
			byName[row.Name] = row.Values
		}

		curso, ok := byName["[Plano B] Curso"]
		if !ok {
			t.Fatal("Expected scenario row '[Plano B] Curso'")
		}
		// Two installments: Nov and Dec 2025.
		wantCurso := []float64{0, -400, -400, 0}
		for i, v := range wantCurso {
			if curso[i] != v {
				t.Errorf("Expected Curso value %v at month %d, got %v", v, i, curso[i])
			}
		}

		mentoria, ok := byName["[Plano B] Mentoria"]
		if !ok {
			t.Fatal("Expected scenario row '[Plano B] Mentoria'")
		}
		// Recurring from Dec 2025 onward.
		wantMentoria := []float64{0, 0, 1000, 1000}
		for i, v := range wantMentoria {
			if mentoria[i] != v {
				t.Errorf("Expected Mentoria value %v at month %d, got %v", v, i, mentoria[i])
			}
		}
	})
}
