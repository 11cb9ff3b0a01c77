package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/api/request"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/api/response"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/apperrors"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/service"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/validation"
)

// RecurringHandler handles HTTP requests for recurring template endpoints.
type RecurringHandler struct {
	recurringService *service.RecurringService
}

// NewRecurringHandler creates a new RecurringHandler with the provided service dependency.
func NewRecurringHandler(recurringService *service.RecurringService) *RecurringHandler {
	return &RecurringHandler{
		recurringService: recurringService,
	}
}

// ListRecurring handles GET requests to retrieve all recurring templates.
//
// Endpoint: GET /api/recurring
// Response: 200 OK with array of RecurringTemplate
// Error: 500 Internal Server Error if retrieval fails
func (h *RecurringHandler) ListRecurring(w http.ResponseWriter, _ *http.Request) {
	templates, err := h.recurringService.ListTemplates()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveRecurring.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, templates)
}

// CreateRecurring handles POST requests to create a new recurring template.
//
// Endpoint: POST /api/recurring
// Request Body: CreateRecurringRequest (description, amount, type, day_of_month, start_date, ...)
// Response: 201 Created with the template and its invalidation tags
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *RecurringHandler) CreateRecurring(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateRecurringRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateRecurring(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	template, tags, err := h.recurringService.CreateTemplate(recurringFromCreate(req))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create recurring transaction", err.Error())
		return
	}

	response.RespondMutation(w, http.StatusCreated, template, tags)
}

// UpdateRecurring handles PUT requests to update an existing recurring template.
// Fields omitted from the body keep their stored values.
//
// Endpoint: PUT /api/recurring/{uuid}
// Request Body: UpdateRecurringRequest (all fields optional)
// Response: 200 OK with the updated template and its invalidation tags
// Error: 400 Bad Request if the ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if the template does not exist
// Error: 500 Internal Server Error if update fails
func (h *RecurringHandler) UpdateRecurring(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateRecurringRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateRecurring(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	existing, err := h.recurringService.GetTemplate(templateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRecurringNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrRecurringNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveRecurring.Error(), err.Error())
		return
	}

	applyRecurringUpdate(&existing, req)

	template, tags, err := h.recurringService.UpdateTemplate(existing)
	if err != nil {
		if errors.Is(err, apperrors.ErrRecurringNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrRecurringNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update recurring transaction", err.Error())
		return
	}

	response.RespondMutation(w, http.StatusOK, template, tags)
}

// DeleteRecurring handles DELETE requests to remove a recurring template.
//
// Endpoint: DELETE /api/recurring/{uuid}
// Response: 200 OK with the invalidation tags
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the template does not exist
// Error: 500 Internal Server Error if deletion fails
func (h *RecurringHandler) DeleteRecurring(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "uuid")

	tags, err := h.recurringService.DeleteTemplate(templateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRecurringNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrRecurringNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete recurring transaction", err.Error())
		return
	}

	response.RespondMutation(w, http.StatusOK, nil, tags)
}

func recurringFromCreate(req request.CreateRecurringRequest) model.RecurringTemplate {
	startDate, _ := parseDate(req.StartDate)

	template := model.RecurringTemplate{
		Description:    req.Description,
		Amount:         req.Amount,
		Type:           req.Type,
		CategoryID:     req.CategoryID,
		CategoryLegacy: req.Category,
		IsActive:       true,
		DayOfMonth:     req.DayOfMonth,
		StartDate:      startDate,
		SourceType:     req.SourceType,
	}
	if req.EndDate != nil {
		if endDate, err := parseDate(*req.EndDate); err == nil && !endDate.IsZero() {
			template.EndDate = &endDate
		}
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}
	return template
}

func applyRecurringUpdate(t *model.RecurringTemplate, req request.UpdateRecurringRequest) {
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Amount != nil {
		t.Amount = *req.Amount
	}
	if req.Type != nil {
		t.Type = *req.Type
	}
	if req.CategoryID != nil {
		t.CategoryID = req.CategoryID
	}
	if req.Category != nil {
		t.CategoryLegacy = *req.Category
	}
	if req.DayOfMonth != nil {
		t.DayOfMonth = *req.DayOfMonth
	}
	if req.StartDate != nil {
		if startDate, err := parseDate(*req.StartDate); err == nil {
			t.StartDate = startDate
		}
	}
	if req.EndDate != nil {
		if endDate, err := parseDate(*req.EndDate); err == nil {
			if endDate.IsZero() {
				t.EndDate = nil
			} else {
				t.EndDate = &endDate
			}
		}
	}
	if req.SourceType != nil {
		t.SourceType = *req.SourceType
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
}
