package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/config"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/testutil"
)

func setupScenarioHandler(t *testing.T) (*ScenarioHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ss := testutil.NewTestScenarioService(t, db)
	now := time.Now().UTC()
	terminal := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 3, 0)
	cfg := config.ProjectionConfig{
		TerminalYear:  terminal.Year(),
		TerminalMonth: terminal.Month(),
	}
	return NewScenarioHandler(ss, cfg), db
}

// withScenarioID attaches the chi {id} route parameter to a request that
// already carries a body.
func withScenarioID(req *http.Request, id int64) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", strconv.FormatInt(id, 10))
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

type scenarioMutationResponse struct {
	Data        model.Scenario      `json:"data"`
	Invalidates []model.ResourceTag `json:"invalidates"`
}

func TestScenarioHandler_CreateScenario(t *testing.T) {
	t.Run("creates scenario and reports invalidation tags", func(t *testing.T) {
		handler, _ := setupScenarioHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/scenarios",
			map[string]any{"name": "Plano A", "description": "cenário de teste"})
		w := httptest.NewRecorder()

		handler.CreateScenario(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response scenarioMutationResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Data.Name != "Plano A" {
			t.Errorf("Expected scenario name 'Plano A', got '%s'", response.Data.Name)
		}
		if len(response.Invalidates) == 0 {
			t.Error("Expected invalidation tags for a mutation")
		}
	})

	t.Run("returns 400 when name is missing", func(t *testing.T) {
		handler, _ := setupScenarioHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/scenarios",
			map[string]any{"description": "sem nome"})
		w := httptest.NewRecorder()

		handler.CreateScenario(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestScenarioHandler_GetScenario(t *testing.T) {
	t.Run("returns 404 for unknown scenario", func(t *testing.T) {
		handler, _ := setupScenarioHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/scenarios/999",
			map[string]string{"id": "999"})
		w := httptest.NewRecorder()

		handler.GetScenario(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for a non-numeric ID", func(t *testing.T) {
		handler, _ := setupScenarioHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/scenarios/abc",
			map[string]string{"id": "abc"})
		w := httptest.NewRecorder()

		handler.GetScenario(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestScenarioHandler_AddScenarioItem(t *testing.T) {
	t.Run("appends an item with the sign normalized", func(t *testing.T) {
		handler, db := setupScenarioHandler(t)
		scenario := testutil.CreateScenario(t, db, "Plano B")

		body := map[string]any{
			"description": "Curso de inglês",
			"amount":      400.0,
			"type":        model.TypeExpense,
			"start_date":  "2025-11-01",
		}
		req := withScenarioID(testutil.NewJSONRequest(t, http.MethodPost, "/api/scenarios/1/items", body), scenario.ID)
		w := httptest.NewRecorder()

		handler.AddScenarioItem(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response scenarioMutationResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response.Data.Items) != 1 {
			t.Fatalf("Expected 1 item on scenario, got %d", len(response.Data.Items))
		}
		if response.Data.Items[0].Amount != -400 {
			t.Errorf("Expected normalized amount -400, got %v", response.Data.Items[0].Amount)
		}
		if response.Data.Items[0].Installments != 1 {
			t.Errorf("Expected installments default 1, got %d", response.Data.Items[0].Installments)
		}
	})

	t.Run("returns 404 for unknown scenario", func(t *testing.T) {
		handler, _ := setupScenarioHandler(t)

		body := map[string]any{
			"description": "Curso",
			"amount":      100.0,
			"type":        model.TypeExpense,
			"start_date":  "2025-11-01",
		}
		req := withScenarioID(testutil.NewJSONRequest(t, http.MethodPost, "/api/scenarios/999/items", body), 999)
		w := httptest.NewRecorder()

		handler.AddScenarioItem(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestScenarioHandler_SaveMatrix(t *testing.T) {
	t.Run("persists edited grid cells as scenario items", func(t *testing.T) {
		handler, _ := setupScenarioHandler(t)

		body := map[string]any{
			"name":    "Plano Editado",
			"headers": []string{"M1", "M2", "M3"},
			"rows": []map[string]any{
				{
					"name":   "Aluguel",
					"type":   model.TypeExpense,
					"source": model.SourceRecurring,
					"values": []float64{-1200, -1200, -1200},
				},
				{
					"name":   "Freela",
					"type":   model.TypeIncome,
					"values": []float64{0, 800, 0},
				},
				{
					"name":   "Viagem",
					"type":   model.TypeExpense,
					"values": []float64{0, 0, -2500},
				},
			},
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/scenarios/save-matrix", body)
		w := httptest.NewRecorder()

		handler.SaveMatrix(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response scenarioMutationResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		// The recurring baseline row is never duplicated into the scenario.
		if len(response.Data.Items) != 2 {
			t.Fatalf("Expected 2 items (baseline row skipped), got %d", len(response.Data.Items))
		}

		amounts := map[string]float64{}
		for _, item := range response.Data.Items {
			amounts[item.Description] = item.Amount
		}
		if amounts["Freela"] != 800 {
			t.Errorf("Expected Freela amount 800, got %v", amounts["Freela"])
		}
		if amounts["Viagem"] != -2500 {
			t.Errorf("Expected Viagem amount -2500, got %v", amounts["Viagem"])
		}
	})

	t.Run("returns 400 when a row length does not match the headers", func(t *testing.T) {
		handler, _ := setupScenarioHandler(t)

		body := map[string]any{
			"name":    "Plano Inválido",
			"headers": []string{"M1", "M2"},
			"rows": []map[string]any{
				{
					"name":   "Freela",
					"type":   model.TypeIncome,
					"values": []float64{800},
				},
			},
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/scenarios/save-matrix", body)
		w := httptest.NewRecorder()

		handler.SaveMatrix(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for a malformed body", func(t *testing.T) {
		handler, _ := setupScenarioHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/scenarios/save-matrix", nil)
		w := httptest.NewRecorder()

		handler.SaveMatrix(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestScenarioHandler_ProjectVariableSpend(t *testing.T) {
	t.Run("creates one expense per month through the terminal bound", func(t *testing.T) {
		handler, _ := setupScenarioHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/scenarios/project-variable-spend",
			map[string]any{"estimate": 2500.0})
		w := httptest.NewRecorder()

		handler.ProjectVariableSpend(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response scenarioMutationResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		// Terminal is three months out, so next month through terminal is
		// three entries.
		if len(response.Data.Items) != 3 {
			t.Fatalf("Expected 3 monthly items, got %d", len(response.Data.Items))
		}
		for _, item := range response.Data.Items {
			if item.Amount != -2500 {
				t.Errorf("Expected amount -2500, got %v", item.Amount)
			}
			if item.SourceType != model.SourceXPCard {
				t.Errorf("Expected card source, got '%s'", item.SourceType)
			}
		}
	})

	t.Run("returns 400 for a zero estimate", func(t *testing.T) {
		handler, _ := setupScenarioHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/scenarios/project-variable-spend",
			map[string]any{"estimate": 0.0})
		w := httptest.NewRecorder()

		handler.ProjectVariableSpend(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestScenarioHandler_DeleteScenario(t *testing.T) {
	t.Run("deletes and reports invalidation tags", func(t *testing.T) {
		handler, db := setupScenarioHandler(t)
		scenario := testutil.CreateScenario(t, db, "Descartável")

		req := withScenarioID(httptest.NewRequest(http.MethodDelete, "/api/scenarios/1", nil), scenario.ID)
		w := httptest.NewRecorder()

		handler.DeleteScenario(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response scenarioMutationResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response.Invalidates) == 0 {
			t.Error("Expected invalidation tags for a mutation")
		}
	})
}
