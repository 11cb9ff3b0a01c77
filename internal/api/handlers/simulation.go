package handlers

import (
	"net/http"
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/api/response"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/apperrors"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/service"
)

// SimulationHandler handles HTTP requests for the forward projection feed.
type SimulationHandler struct {
	simulationService *service.SimulationService
}

// NewSimulationHandler creates a new SimulationHandler with the provided service dependency.
func NewSimulationHandler(simulationService *service.SimulationService) *SimulationHandler {
	return &SimulationHandler{
		simulationService: simulationService,
	}
}

// Projection handles GET requests for the month-by-month projection feed.
// The horizon starts at the first day of next month; scenario_id overlays a
// saved scenario's items on top of the recurring and installment baseline.
//
// Endpoint: GET /api/simulation/projection?months=&scenario_id=
// Response: 200 OK with SimulationProjection
// Error: 500 Internal Server Error if projection fails
func (h *SimulationHandler) Projection(w http.ResponseWriter, r *http.Request) {
	months := queryInt(r, "months", 12)
	scenarioID := queryInt64(r, "scenario_id", 0)

	projection, err := h.simulationService.Projection(months, scenarioID, time.Now())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetProjection.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, projection)
}
