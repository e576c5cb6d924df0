package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// parseJSON decodes a JSON request body into the given request type.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	err := json.NewDecoder(r.Body).Decode(&req)
	return req, err
}

// parseOptionalJSON decodes a JSON request body, treating an empty body as
// the zero value. Used for endpoints whose body is entirely optional, such
// as DELETE with an optional actor field.
func parseOptionalJSON[T any](r *http.Request) (T, error) {
	var req T
	err := json.NewDecoder(r.Body).Decode(&req)
	if errors.Is(err, io.EOF) {
		return req, nil
	}
	return req, err
}
