package handlers

import (
	"net/http"
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/api/response"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/apperrors"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/service"
)

// AnalyticsHandler handles HTTP requests for spending analytics endpoints.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler with the provided service dependency.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// AverageSpending handles GET requests for the historical monthly spend
// statistics of one source. The current month is always excluded from the
// sample.
//
// Endpoint: GET /api/analytics/average-spending?source=&months=
// Response: 200 OK with SpendingStats
// Error: 500 Internal Server Error if the query fails
func (h *AnalyticsHandler) AverageSpending(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	months := queryInt(r, "months", 0)

	stats, err := h.analyticsService.AverageSpending(source, months, time.Now())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetAverageSpending.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}
