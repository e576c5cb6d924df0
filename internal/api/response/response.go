// Package response provides utilities for sending consistent HTTP responses.
// Every error body has the shape {message, errors?}, where errors is an
// itemized list of field-level validation issues.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rvanleeuwen/investment-tracker/internal/validation"
)

// FieldError is a single itemized validation issue.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse represents a structured error response returned by the API.
// Errors is only present for validation failures.
type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
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
			log.Error().Err(err).Msg("failed to encode JSON response")
		}
	}
}

// RespondError sends a structured error response with the given status code.
// The message should be a user-friendly error description; internal error
// detail is never included in the body.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Message: message})
}

// RespondValidationError sends a 400 response itemizing the per-field
// validation issues in deterministic field order.
func RespondValidationError(w http.ResponseWriter, verr *validation.Error) {
	fieldErrors := make([]FieldError, 0, len(verr.Fields))
	for _, field := range verr.SortedFields() {
		fieldErrors = append(fieldErrors, FieldError{Field: field, Message: verr.Fields[field]})
	}
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{
		Message: "validation failed",
		Errors:  fieldErrors,
	})
}
