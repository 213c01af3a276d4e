// Package response writes the console's JSON envelopes.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	domainerrors "github.com/storefront/storefront-admin/internal/errors"
)

// Envelope provides a consistent JSON response structure.
type Envelope struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}

func write(w http.ResponseWriter, status int, envelope Envelope, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		if logger != nil {
			logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// JSON writes data in an envelope with the given status code.
func JSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	write(w, status, Envelope{Success: status < 400, Data: data}, logger)
}

// Success writes a successful JSON response (200 OK).
func Success(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusOK, data, logger)
}

// Created writes a created response (201 Created).
func Created(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusCreated, data, logger)
}

// NoContent writes a no content response (204 No Content).
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Redirect sends the client to location with 303 See Other and describes the
// redirect in the body for API consumers.
func Redirect(w http.ResponseWriter, location string, data any, logger *slog.Logger) {
	w.Header().Set("Location", location)
	write(w, http.StatusSeeOther, Envelope{Success: false, Data: data}, logger)
}

// Error writes an error response with the given status code.
func Error(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	write(w, status, Envelope{Success: false, Error: message}, logger)
}

// BadRequest writes a 400 Bad Request response.
func BadRequest(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusBadRequest, message, logger)
}

// NotFound writes a 404 Not Found response.
func NotFound(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusNotFound, message, logger)
}

// InternalError writes a 500 Internal Server Error response.
func InternalError(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusInternalServerError, message, logger)
}

// HandleError writes an appropriate HTTP response based on the error type.
// Coded errors map to their status and keep their details; unknown errors become 500.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	ErrorWithData(w, err, nil, logger)
}

// ErrorWithData is HandleError with a data payload, for failures that still
// have state worth showing.
func ErrorWithData(w http.ResponseWriter, err error, data any, logger *slog.Logger) {
	var coded *domainerrors.Error
	if errors.As(err, &coded) {
		status := coded.HTTPStatus()
		if status >= 500 && logger != nil {
			logger.Error("Request failed", "code", coded.Code, "error", err)
		}
		write(w, status, Envelope{
			Success: false,
			Data:    data,
			Error:   coded.Message,
			Code:    string(coded.Code),
			Details: coded.Details,
		}, logger)
		return
	}

	if logger != nil {
		logger.Error("Unhandled error", "error", err)
	}
	write(w, http.StatusInternalServerError, Envelope{Success: false, Data: data, Error: "internal server error"}, logger)
}
