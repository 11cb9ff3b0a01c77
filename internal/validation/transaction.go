package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/api/request"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	"INCOME": true, "EXPENSE": true, "TRANSFER": true,
}

// ValidSourceType contains the allowed transaction source values.
var ValidSourceType = map[string]bool{
	"XP_ACCOUNT": true, "XP_CARD": true, "MANUAL": true,
	"RECURRING": true, "INSTALLMENT": true,
}

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - description: Must be non-empty
//   - type: Must be one of: INCOME, EXPENSE, TRANSFER
//
// Optional fields (validated if provided):
//   - reference_date: Must be in YYYY-MM-DD format
//   - category_id: Must be a valid UUID
//   - source_type: Must be a known source
//   - installment_n / installment_total: Must describe a valid position
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	validateDate(errors, "date", req.Date, true)
	validateDate(errors, "reference_date", req.ReferenceDate, false)

	if strings.TrimSpace(req.Description) == "" {
		errors["description"] = "description is required"
	}

	validateType(errors, req.Type, true)

	if req.CategoryID != nil {
		if err := ValidateUUID(*req.CategoryID); err != nil {
			errors["category_id"] = err.Error()
		}
	}

	if req.SourceType != "" && !ValidSourceType[req.SourceType] {
		errors["source_type"] = fmt.Sprintf("invalid source: %s", req.SourceType)
	}

	validateInstallmentPosition(errors, req.InstallmentN, req.InstallmentTotal)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Date != nil {
		validateDate(errors, "date", *req.Date, true)
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		errors["description"] = "description is required"
	}
	if req.Type != nil {
		validateType(errors, *req.Type, true)
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

func validateDate(errors map[string]string, field, value string, required bool) {
	if strings.TrimSpace(value) == "" {
		if required {
			errors[field] = field + " is required"
		}
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		errors[field] = err.Error()
	}
}

func validateType(errors map[string]string, value string, required bool) {
	if strings.TrimSpace(value) == "" {
		if required {
			errors["type"] = "type is required"
		}
		return
	}
	if !ValidTransactionType[value] {
		errors["type"] = fmt.Sprintf("invalid type: %s", value)
	}
}

func validateInstallmentPosition(errors map[string]string, n, total *int) {
	if n == nil && total == nil {
		return
	}
	if n == nil || total == nil {
		errors["installment_n"] = "installment_n and installment_total must be provided together"
		return
	}
	if *total < 1 {
		errors["installment_total"] = "installment_total must be positive"
	}
	if *n < 1 || (*total >= 1 && *n > *total) {
		errors["installment_n"] = fmt.Sprintf("installment_n must be between 1 and %d", *total)
	}
}
