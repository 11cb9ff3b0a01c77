package validation

import (
	"fmt"
	"strings"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/api/request"
)

// ValidateCreateScenario validates a scenario creation request.
func ValidateCreateScenario(req request.CreateScenarioRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateAddScenarioItem validates a scenario item creation request.
//
// Required fields:
//   - description: Must be non-empty
//   - type: Must be one of: INCOME, EXPENSE, TRANSFER
//   - start_date: Must be in YYYY-MM-DD format
//
// Installments, when provided, must be positive; recurring items ignore it.
func ValidateAddScenarioItem(req request.AddScenarioItemRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Description) == "" {
		errors["description"] = "description is required"
	}

	validateType(errors, req.Type, true)
	validateDate(errors, "start_date", req.StartDate, true)

	if req.Installments < 0 {
		errors["installments"] = "installments must be positive"
	}
	if req.SourceType != "" && !ValidSourceType[req.SourceType] {
		errors["source_type"] = fmt.Sprintf("invalid source: %s", req.SourceType)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateSaveMatrix validates an exploded-matrix save request. Row values
// must align with the header count so month offsets stay unambiguous.
func ValidateSaveMatrix(req request.SaveMatrixRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if len(req.Headers) == 0 {
		errors["headers"] = "headers are required"
	}

	for i, row := range req.Rows {
		if strings.TrimSpace(row.Name) == "" {
			errors[fmt.Sprintf("rows[%d].name", i)] = "name is required"
		}
		if !ValidTransactionType[row.Type] {
			errors[fmt.Sprintf("rows[%d].type", i)] = fmt.Sprintf("invalid type: %s", row.Type)
		}
		if len(row.Values) != len(req.Headers) {
			errors[fmt.Sprintf("rows[%d].values", i)] = fmt.Sprintf(
				"expected %d values, got %d", len(req.Headers), len(row.Values))
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateProjectVariableSpend validates a variable-spend projection request.
func ValidateProjectVariableSpend(req request.ProjectVariableSpendRequest) error {
	if req.Estimate == 0 {
		return &Error{Fields: map[string]string{"estimate": "estimate must be non-zero"}}
	}
	return nil
}
