// Package response provides utilities for sending consistent HTTP responses.
// It includes helpers for JSON responses, standardized error responses, and
// mutation responses carrying cache invalidation tags.
package response

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
)

// ErrorResponse represents a structured error response returned by the API.
// The Details field is optional and can contain additional context about the error.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// MutationResponse wraps a mutation result together with the resource tags
// the mutation invalidates, so clients know which cached views to refetch.
type MutationResponse struct {
	Data        interface{}         `json:"data,omitempty"`
	Invalidates []model.ResourceTag `json:"invalidates"`
}

// RespondJSON sends a JSON response with the given status code.
// Sets the Content-Type header to application/json and writes the status code.
// If data is nil, only the status code is sent (useful for 204 No Content).
// Logs encoding errors but does not fail the response.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondMutation sends a mutation result with its invalidation tags.
func RespondMutation(w http.ResponseWriter, status int, data interface{}, tags []model.ResourceTag) {
	if tags == nil {
		tags = []model.ResourceTag{}
	}
	RespondJSON(w, status, MutationResponse{Data: data, Invalidates: tags})
}

// RespondError sends a structured error response with the given status code.
// The message should be a user-friendly error description.
// The details parameter can be an error string, additional context, or nil.
//
// Example:
//
//	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
//	response.RespondError(w, http.StatusNotFound, "resource not found", "")
func RespondError(w http.ResponseWriter, status int, message string, details interface{}) {
	response := ErrorResponse{
		Error:   message,
		Details: details,
	}
	RespondJSON(w, status, response)
}
