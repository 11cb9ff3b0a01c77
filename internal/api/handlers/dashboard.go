package handlers

import (
	"net/http"
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/api/response"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/apperrors"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/service"
)

// DashboardHandler handles HTTP requests for dashboard endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler with the provided service dependency.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Summary handles GET requests for the yearly dashboard summary. Months after
// the current one carry projected figures from recurring templates and open
// installment plans.
//
// Endpoint: GET /api/dashboard/summary?year=
// Response: 200 OK with DashboardSummary
// Error: 500 Internal Server Error if aggregation fails
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := queryInt(r, "year", now.Year())

	summary, err := h.dashboardService.Summary(year, now)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Breakdown handles GET requests for per-source and per-category totals.
// The month parameter is optional; omitting it covers the whole year.
//
// Endpoint: GET /api/dashboard/breakdown?year=&month=
// Response: 200 OK with DashboardBreakdown
// Error: 400 Bad Request if the month is outside 1-12
// Error: 500 Internal Server Error if aggregation fails
func (h *DashboardHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year", time.Now().Year())
	month := queryInt(r, "month", 0)

	if month < 0 || month > 12 {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidMonth.Error(), "")
		return
	}

	breakdown, err := h.dashboardService.Breakdown(year, month)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetBreakdown.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, breakdown)
}

// HealthRatio handles GET requests for the liquidity-vs-liability health
// indicator.
//
// Endpoint: GET /api/dashboard/health-ratio?year=
// Response: 200 OK with FinancialHealth
// Error: 500 Internal Server Error if aggregation fails
func (h *DashboardHandler) HealthRatio(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year", time.Now().Year())

	health, err := h.dashboardService.Health(year)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetHealth.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, health)
}
