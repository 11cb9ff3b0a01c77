package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/api/request"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/api/response"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/apperrors"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/config"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/service"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/simulation"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/validation"
)

// ScenarioHandler handles HTTP requests for scenario endpoints, including
// the matrix-save and variable-spend projection operations.
type ScenarioHandler struct {
	scenarioService *service.ScenarioService
	projection      config.ProjectionConfig
}

// NewScenarioHandler creates a new ScenarioHandler with the provided dependencies.
func NewScenarioHandler(scenarioService *service.ScenarioService, projection config.ProjectionConfig) *ScenarioHandler {
	return &ScenarioHandler{
		scenarioService: scenarioService,
		projection:      projection,
	}
}

// ListScenarios handles GET requests to retrieve all scenarios with their items.
//
// Endpoint: GET /api/scenarios
// Response: 200 OK with array of Scenario
// Error: 500 Internal Server Error if retrieval fails
func (h *ScenarioHandler) ListScenarios(w http.ResponseWriter, _ *http.Request) {
	scenarios, err := h.scenarioService.ListScenarios()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveScenarios.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, scenarios)
}

// GetScenario handles GET requests to retrieve a single scenario by ID.
//
// Endpoint: GET /api/scenarios/{id}
// Response: 200 OK with Scenario
// Error: 400 Bad Request if the ID is not an integer
// Error: 404 Not Found if the scenario does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *ScenarioHandler) GetScenario(w http.ResponseWriter, r *http.Request) {
	scenarioID, err := scenarioIDParam(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid scenario ID", err.Error())
		return
	}

	scenario, err := h.scenarioService.GetScenario(scenarioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrScenarioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrScenarioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveScenario.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, scenario)
}

// CreateScenario handles POST requests to create a new empty scenario.
//
// Endpoint: POST /api/scenarios
// Request Body: CreateScenarioRequest (name, description)
// Response: 201 Created with the scenario and its invalidation tags
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *ScenarioHandler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateScenarioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateScenario(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	scenario, tags, err := h.scenarioService.CreateScenario(req.Name, req.Description)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create scenario", err.Error())
		return
	}

	response.RespondMutation(w, http.StatusCreated, scenario, tags)
}

// DeleteScenario handles DELETE requests to remove a scenario and its items.
//
// Endpoint: DELETE /api/scenarios/{id}
// Response: 200 OK with the invalidation tags
// Error: 400 Bad Request if the ID is not an integer
// Error: 404 Not Found if the scenario does not exist
// Error: 500 Internal Server Error if deletion fails
func (h *ScenarioHandler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	scenarioID, err := scenarioIDParam(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid scenario ID", err.Error())
		return
	}

	tags, err := h.scenarioService.DeleteScenario(scenarioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrScenarioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrScenarioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete scenario", err.Error())
		return
	}

	response.RespondMutation(w, http.StatusOK, nil, tags)
}

// AddScenarioItem handles POST requests to append one item to a scenario.
// The stored amount sign is normalized to the item type.
//
// Endpoint: POST /api/scenarios/{id}/items
// Request Body: AddScenarioItemRequest (description, amount, type, start_date, ...)
// Response: 201 Created with the updated scenario and its invalidation tags
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the scenario does not exist
// Error: 500 Internal Server Error if the write fails
func (h *ScenarioHandler) AddScenarioItem(w http.ResponseWriter, r *http.Request) {
	scenarioID, err := scenarioIDParam(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid scenario ID", err.Error())
		return
	}

	req, err := parseJSON[request.AddScenarioItemRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAddScenarioItem(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	startDate, _ := parseDate(req.StartDate)
	item := model.ScenarioItem{
		Description:  req.Description,
		Amount:       req.Amount,
		Type:         req.Type,
		StartDate:    startDate,
		Installments: req.Installments,
		IsRecurring:  req.IsRecurring,
		SourceType:   req.SourceType,
	}

	scenario, tags, err := h.scenarioService.AddItem(scenarioID, item)
	if err != nil {
		if errors.Is(err, apperrors.ErrScenarioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrScenarioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to add scenario item", err.Error())
		return
	}

	response.RespondMutation(w, http.StatusCreated, scenario, tags)
}

// SaveMatrix handles POST requests to persist an edited simulation grid as a
// new scenario. Baseline recurring and installment rows are skipped; the rest
// explode into one item per non-zero month cell.
//
// Endpoint: POST /api/scenarios/save-matrix
// Request Body: SaveMatrixRequest (name, headers, rows)
// Response: 201 Created with the scenario and its invalidation tags
// Response: 207 Multi-Status when some item writes failed; the body reports
// the partial scenario and the failure counts
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the scenario itself cannot be created
func (h *ScenarioHandler) SaveMatrix(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SaveMatrixRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSaveMatrix(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	matrix := simulation.New(matrixProjection(req))

	scenario, tags, err := h.scenarioService.SaveMatrix(r.Context(), req.Name, matrix, time.Now())
	if err != nil {
		var partial *apperrors.PartialSaveError
		if errors.As(err, &partial) {
			response.RespondJSON(w, http.StatusMultiStatus, map[string]interface{}{
				"scenario":    scenario,
				"attempted":   partial.Attempted,
				"written":     partial.Written,
				"error":       partial.Error(),
				"invalidates": tags,
			})
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to save scenario", err.Error())
		return
	}

	response.RespondMutation(w, http.StatusCreated, scenario, tags)
}

// ProjectVariableSpend handles POST requests to generate the estimated
// variable-spend scenario: one expense per month from next month through the
// configured terminal month.
//
// Endpoint: POST /api/scenarios/project-variable-spend
// Request Body: ProjectVariableSpendRequest (estimate)
// Response: 201 Created with the scenario and its invalidation tags
// Response: 207 Multi-Status when some item writes failed
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the scenario itself cannot be created
func (h *ScenarioHandler) ProjectVariableSpend(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ProjectVariableSpendRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateProjectVariableSpend(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	scenario, tags, err := h.scenarioService.ProjectVariableSpend(
		r.Context(), req.Estimate, h.projection.TerminalYear, h.projection.TerminalMonth, time.Now())
	if err != nil {
		var partial *apperrors.PartialSaveError
		if errors.As(err, &partial) {
			response.RespondJSON(w, http.StatusMultiStatus, map[string]interface{}{
				"scenario":    scenario,
				"attempted":   partial.Attempted,
				"written":     partial.Written,
				"error":       partial.Error(),
				"invalidates": tags,
			})
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to project variable spend", err.Error())
		return
	}

	response.RespondMutation(w, http.StatusCreated, scenario, tags)
}

func scenarioIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func matrixProjection(req request.SaveMatrixRequest) model.SimulationProjection {
	items := make([]model.SimulationItem, 0, len(req.Rows))
	for _, row := range req.Rows {
		source := row.Source
		if source == "" {
			source = model.SourceManual
		}
		items = append(items, model.SimulationItem{
			Name:   row.Name,
			Type:   row.Type,
			Values: row.Values,
			Source: source,
		})
	}
	return model.SimulationProjection{MonthHeaders: req.Headers, Items: items}
}
