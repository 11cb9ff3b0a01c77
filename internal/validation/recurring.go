package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/api/request"
)

// ValidateCreateRecurring validates a recurring template creation request.
//
// Required fields:
//   - description: Must be non-empty
//   - type: Must be one of: INCOME, EXPENSE, TRANSFER
//   - day_of_month: Must be between 1 and 31
//   - start_date: Must be in YYYY-MM-DD format
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateRecurring(req request.CreateRecurringRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Description) == "" {
		errors["description"] = "description is required"
	}

	validateType(errors, req.Type, true)
	validateDayOfMonth(errors, req.DayOfMonth)
	validateDate(errors, "start_date", req.StartDate, true)

	if req.EndDate != nil {
		validateDate(errors, "end_date", *req.EndDate, false)
	}
	if req.CategoryID != nil {
		if err := ValidateUUID(*req.CategoryID); err != nil {
			errors["category_id"] = err.Error()
		}
	}
	if req.SourceType != "" && !ValidSourceType[req.SourceType] {
		errors["source_type"] = fmt.Sprintf("invalid source: %s", req.SourceType)
	}

	if errors["start_date"] == "" && errors["end_date"] == "" && req.EndDate != nil {
		start, _ := time.Parse("2006-01-02", req.StartDate)
		end, _ := time.Parse("2006-01-02", *req.EndDate)
		if end.Before(start) {
			errors["end_date"] = "end_date must not precede start_date"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateRecurring validates a recurring template update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateRecurring(req request.UpdateRecurringRequest) error {
	errors := make(map[string]string)

	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		errors["description"] = "description is required"
	}
	if req.Type != nil {
		validateType(errors, *req.Type, true)
	}
	if req.DayOfMonth != nil {
		validateDayOfMonth(errors, *req.DayOfMonth)
	}
	if req.StartDate != nil {
		validateDate(errors, "start_date", *req.StartDate, true)
	}
	if req.EndDate != nil {
		validateDate(errors, "end_date", *req.EndDate, false)
	}
	if req.CategoryID != nil {
		if err := ValidateUUID(*req.CategoryID); err != nil {
			errors["category_id"] = err.Error()
		}
	}
	if req.SourceType != nil && !ValidSourceType[*req.SourceType] {
		errors["source_type"] = fmt.Sprintf("invalid source: %s", *req.SourceType)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validateDayOfMonth(errors map[string]string, day int) {
	if day < 1 || day > 31 {
		errors["day_of_month"] = "day_of_month must be between 1 and 31"
	}
}
