package service_test

import (
	"testing"
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/service"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/testutil"
)

// TestDashboardService_Summary tests the yearly flow aggregation with
// projected future months.
//
// WHY: The summary is the main dashboard read. It must keep actual and
// projected months clearly separated: past months never gain projected data,
// and empty future months are filled from recurring templates.
func TestDashboardService_Summary(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("future months with no data are filled from recurring templates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDashboardService(t, db)

		testutil.NewRecurring().
			WithDescription("Salário").
			WithType(model.TypeIncome).
			WithAmount(5000).
			WithDayOfMonth(1).
			WithStartDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).
			Build(t, db)
		testutil.NewRecurring().
			WithDescription("Aluguel").
			WithAmount(-1200).
			WithDayOfMonth(5).
			WithStartDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).
			Build(t, db)

		summary, err := svc.Summary(2025, now)
		if err != nil {
			t.Fatalf("Summary() returned unexpected error: %v", err)
		}

		if len(summary.MonthlyData) != 12 {
			t.Fatalf("Expected 12 monthly buckets, got %d", len(summary.MonthlyData))
		}

		july := summary.MonthlyData[6]
		if !july.IsProjected {
			t.Error("Expected July to be flagged projected")
		}
		if july.Income != 5000 {
			t.Errorf("Expected projected income 5000, got %v", july.Income)
		}
		if july.Expense != -1200 {
			t.Errorf("Expected projected expense -1200, got %v", july.Expense)
		}
		if july.Balance != 3800 {
			t.Errorf("Expected projected balance 3800, got %v", july.Balance)
		}

		june := summary.MonthlyData[5]
		if june.IsProjected {
			t.Error("Expected the current month to not be flagged projected")
		}
		if june.Income != 0 || june.Expense != 0 {
			t.Errorf("Expected empty actuals for the current month, got %v/%v", june.Income, june.Expense)
		}
	})

	t.Run("future months with actual data keep it over projections", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDashboardService(t, db)

		// Materialized entry already present in a future month
		testutil.NewTransaction().
			WithDate(time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)).
			WithDescription("Aluguel").
			WithAmount(-1200).
			Build(t, db)
		testutil.NewRecurring().
			WithDescription("Aluguel").
			WithAmount(-1300).
			WithDayOfMonth(5).
			WithStartDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).
			Build(t, db)

		summary, err := svc.Summary(2025, now)
		if err != nil {
			t.Fatalf("Summary() returned unexpected error: %v", err)
		}

		august := summary.MonthlyData[7]
		if !august.IsProjected {
			t.Error("Expected August to be flagged projected")
		}
		if august.Expense != -1200 {
			t.Errorf("Expected actual expense -1200 to win over projection, got %v", august.Expense)
		}
	})

	t.Run("invoice settlements are excluded from monthly flows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDashboardService(t, db)

		testutil.NewTransaction().
			WithDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)).
			WithDescription("Pagamento de fatura cartão").
			WithAmount(-2500).
			Build(t, db)
		testutil.NewTransaction().
			WithDate(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)).
			WithDescription("Mercado").
			WithAmount(-300).
			Build(t, db)

		summary, err := svc.Summary(2025, now)
		if err != nil {
			t.Fatalf("Summary() returned unexpected error: %v", err)
		}

		march := summary.MonthlyData[2]
		if march.Expense != -300 {
			t.Errorf("Expected expense -300 with the settlement excluded, got %v", march.Expense)
		}
	})

	t.Run("transfers stay out of income and expense buckets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDashboardService(t, db)

		testutil.NewTransaction().
			WithDate(time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)).
			WithDescription("Transferência poupança").
			WithType(model.TypeTransfer).
			WithAmount(-1000).
			Build(t, db)

		summary, err := svc.Summary(2025, now)
		if err != nil {
			t.Fatalf("Summary() returned unexpected error: %v", err)
		}

		april := summary.MonthlyData[3]
		if april.Income != 0 || april.Expense != 0 {
			t.Errorf("Expected transfer to be excluded, got income %v expense %v", april.Income, april.Expense)
		}
	})
}

// TestEvaluateHealth tests the liquidity-vs-liability classification.
//
// WHY: The ratio drives a bounded progress bar and the COMFORT/SURVIVAL
// badge; the cap, the zero-liability branches, and the threshold must all
// hold exactly.
func TestEvaluateHealth(t *testing.T) {
	tests := []struct {
		name       string
		liquidity  float64
		liability  float64
		wantRatio  float64
		wantStatus string
	}{
		{"surplus cash is capped at 100 and comfortable", 1000, -500, 100, model.StatusComfort},
		{"cash short of debt scales the ratio", 300, -1000, 30, model.StatusSurvival},
		{"no debt with cash on hand", 500, 0, 100, model.StatusComfort},
		{"no debt and no cash", 0, 0, 0, model.StatusComfort},
		{"exact cover sits on the comfort threshold", 800, -800, 100, model.StatusComfort},
		{"no cash against debt", 0, -100, 0, model.StatusSurvival},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			health := service.EvaluateHealth(tt.liquidity, tt.liability)

			if health.Ratio != tt.wantRatio {
				t.Errorf("Expected ratio %v, got %v", tt.wantRatio, health.Ratio)
			}
			if health.Status != tt.wantStatus {
				t.Errorf("Expected status %s, got %s", tt.wantStatus, health.Status)
			}
			if health.Liquidity != tt.liquidity {
				t.Errorf("Expected liquidity %v passed through, got %v", tt.liquidity, health.Liquidity)
			}
		})
	}
}

// TestDashboardService_Health tests the year-scoped health aggregation.
//
// WHY: Liquidity must span debit sources while liability reads card flow
// only, and invoice settlements must count on both sides since they move
// real money.
func TestDashboardService_Health(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDashboardService(t, db)

	testutil.NewTransaction().
		WithDate(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)).
		WithDescription("Salário").
		WithType(model.TypeIncome).
		WithAmount(4000).
		WithSourceType(model.SourceXPAccount).
		Build(t, db)
	testutil.NewTransaction().
		WithDate(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)).
		WithDescription("Pagamento de fatura").
		WithAmount(-1500).
		WithSourceType(model.SourceXPAccount).
		Build(t, db)
	testutil.NewTransaction().
		WithDate(time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC)).
		WithDescription("Mercado").
		WithAmount(-1000).
		WithSourceType(model.SourceXPCard).
		Build(t, db)

	health, err := svc.Health(2025)
	if err != nil {
		t.Fatalf("Health() returned unexpected error: %v", err)
	}

	// Liquidity includes the settlement: 4000 - 1500 = 2500.
	if health.Liquidity != 2500 {
		t.Errorf("Expected liquidity 2500, got %v", health.Liquidity)
	}
	if health.Liability != -1000 {
		t.Errorf("Expected liability -1000, got %v", health.Liability)
	}
	if health.Status != model.StatusComfort {
		t.Errorf("Expected status %s, got %s", model.StatusComfort, health.Status)
	}
}
