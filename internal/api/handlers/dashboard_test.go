package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/testutil"
)

func setupDashboardHandler(t *testing.T) (*DashboardHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ds := testutil.NewTestDashboardService(t, db)
	return NewDashboardHandler(ds), db
}

func TestDashboardHandler_Summary(t *testing.T) {
	t.Run("returns twelve monthly flows for the requested year", func(t *testing.T) {
		handler, db := setupDashboardHandler(t)

		testutil.NewTransaction().
			WithDate(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)).
			WithDescription("Salário").
			WithAmount(5000).
			WithType(model.TypeIncome).
			Build(t, db)
		testutil.NewTransaction().
			WithDate(time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)).
			WithDescription("Aluguel").
			WithAmount(-1200).
			Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/dashboard/summary",
			map[string]string{"year": "2024"})
		w := httptest.NewRecorder()

		handler.Summary(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var summary model.DashboardSummary
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&summary)

		if summary.Year != 2024 {
			t.Errorf("Expected year 2024, got %d", summary.Year)
		}
		if len(summary.MonthlyData) != 12 {
			t.Fatalf("Expected 12 monthly flows, got %d", len(summary.MonthlyData))
		}
		march := summary.MonthlyData[2]
		if march.Income != 5000 || march.Expense != -1200 {
			t.Errorf("Expected March income 5000 / expense -1200, got %v / %v", march.Income, march.Expense)
		}
		if march.Balance != 3800 {
			t.Errorf("Expected March balance 3800, got %v", march.Balance)
		}
	})
}

func TestDashboardHandler_Breakdown(t *testing.T) {
	t.Run("returns source and category totals", func(t *testing.T) {
		handler, db := setupDashboardHandler(t)

		testutil.NewTransaction().
			WithDate(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)).
			WithDescription("Mercado").
			WithAmount(-350).
			WithSourceType(model.SourceXPCard).
			Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/dashboard/breakdown",
			map[string]string{"year": "2024", "month": "5"})
		w := httptest.NewRecorder()

		handler.Breakdown(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var breakdown model.DashboardBreakdown
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&breakdown)

		if breakdown.BySource[model.SourceXPCard] != -350 {
			t.Errorf("Expected card total -350, got %v", breakdown.BySource[model.SourceXPCard])
		}
	})

	t.Run("omitting the month covers the whole year", func(t *testing.T) {
		handler, db := setupDashboardHandler(t)

		testutil.NewTransaction().
			WithDate(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)).
			WithDescription("Mercado fevereiro").
			WithAmount(-200).
			WithSourceType(model.SourceXPCard).
			Build(t, db)
		testutil.NewTransaction().
			WithDate(time.Date(2024, 9, 10, 0, 0, 0, 0, time.UTC)).
			WithDescription("Mercado setembro").
			WithAmount(-300).
			WithSourceType(model.SourceXPCard).
			Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/dashboard/breakdown",
			map[string]string{"year": "2024"})
		w := httptest.NewRecorder()

		handler.Breakdown(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var breakdown model.DashboardBreakdown
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&breakdown)

		if breakdown.BySource[model.SourceXPCard] != -500 {
			t.Errorf("Expected year-wide card total -500, got %v", breakdown.BySource[model.SourceXPCard])
		}
	})

	t.Run("returns 400 for an out-of-range month", func(t *testing.T) {
		handler, _ := setupDashboardHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/dashboard/breakdown",
			map[string]string{"year": "2024", "month": "13"})
		w := httptest.NewRecorder()

		handler.Breakdown(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestDashboardHandler_HealthRatio(t *testing.T) {
	t.Run("returns liquidity, liability and capped ratio", func(t *testing.T) {
		handler, db := setupDashboardHandler(t)

		testutil.NewTransaction().
			WithDate(time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)).
			WithDescription("Salário").
			WithAmount(4000).
			WithType(model.TypeIncome).
			Build(t, db)
		testutil.NewTransaction().
			WithDate(time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)).
			WithDescription("Mercado").
			WithAmount(-1000).
			WithSourceType(model.SourceXPCard).
			Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/dashboard/health-ratio",
			map[string]string{"year": "2024"})
		w := httptest.NewRecorder()

		handler.HealthRatio(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var health model.FinancialHealth
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&health)

		if health.Liquidity != 4000 {
			t.Errorf("Expected liquidity 4000, got %v", health.Liquidity)
		}
		if health.Liability != -1000 {
			t.Errorf("Expected signed liability -1000, got %v", health.Liability)
		}
		if health.Ratio != 100 {
			t.Errorf("Expected capped ratio 100, got %v", health.Ratio)
		}
		if health.Status != model.StatusComfort {
			t.Errorf("Expected COMFORT status, got '%s'", health.Status)
		}
	})
}
