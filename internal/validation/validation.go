// Package validation provides field-level request validation. Validators
// return *Error carrying a field→message map that the API layer itemizes
// into the error response body.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidUUID is returned when an ID is not a valid UUID.
var ErrInvalidUUID = fmt.Errorf("invalid UUID format")

// Error is a validation failure carrying per-field messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, field := range e.SortedFields() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}

// SortedFields returns the field names in deterministic order, for stable
// error messages and response bodies.
func (e *Error) SortedFields() []string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}
