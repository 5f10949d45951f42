// Package response writes JSON API responses.
//
// Success bodies are the data document itself. Error bodies follow the
// storefront client contract: {"message": "..."} with the HTTP status
// carrying the error kind, plus an optional field-level "errors" map
// for validation failures.
package response

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// JSON sends an arbitrary payload with the given status.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, data)
}

// Success sends a 200 with the data document as the body.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, data)
}

// Created sends a 201 with the data document as the body.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, data)
}

// Error sends {"message": ...} with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, errorBody{Message: message})
}

// ValidationError sends a 400 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusBadRequest, errorBody{
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Not authorized")
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}
