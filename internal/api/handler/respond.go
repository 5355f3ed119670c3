package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"credit-engine/internal/api/handler/dto"
	"credit-engine/internal/pkg/apperrors"
)

const titleConflict = "Conflict! Consult the documentation"

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"title":"Internal Server Error","status":500}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondError is the single place that decides HTTP status and the error
// envelope for the four failure kinds. Validation failures report one
// details entry per field; every other kind reports a single cause entry.
func respondError(w http.ResponseWriter, err error) {
	resp := dto.ErrorResponse{
		Title:     "Internal Server Error",
		Status:    http.StatusInternalServerError,
		Timestamp: time.Now(),
		Exception: "InternalServerException",
		Details:   map[string]string{apperrors.ErrInternalServer.Error(): "An unexpected error occurred."},
	}

	var validationErrors apperrors.ValidationErrors
	var validationError *apperrors.ValidationError

	switch {
	case errors.As(err, &validationErrors):
		resp.Title = "Bad Request"
		resp.Status = http.StatusBadRequest
		resp.Exception = "ValidationException"
		resp.Details = make(map[string]string, len(validationErrors))
		for _, ve := range validationErrors {
			resp.Details[ve.Field] = ve.Message
		}

	case errors.As(err, &validationError):
		resp.Title = "Bad Request"
		resp.Status = http.StatusBadRequest
		resp.Exception = "ValidationException"
		resp.Details = map[string]string{validationError.Field: validationError.Message}

	case errors.Is(err, apperrors.ErrValidation):
		resp.Title = "Bad Request"
		resp.Status = http.StatusBadRequest
		resp.Exception = "ValidationException"
		resp.Details = map[string]string{apperrors.ErrValidation.Error(): err.Error()}

	case errors.Is(err, apperrors.ErrAlreadyExists), errors.Is(err, apperrors.ErrDatabase):
		resp.Title = titleConflict
		resp.Status = http.StatusConflict
		resp.Exception = "DataIntegrityViolationException"
		resp.Details = map[string]string{causeOf(err): err.Error()}

	case errors.Is(err, apperrors.ErrNotFound):
		resp.Title = titleConflict
		resp.Status = http.StatusBadRequest
		resp.Exception = "BusinessException"
		resp.Details = map[string]string{apperrors.ErrNotFound.Error(): err.Error()}

	// Ownership mismatches stay a distinct kind internally but share the
	// generic invalid-argument mapping on the wire.
	case errors.Is(err, apperrors.ErrOwnership), errors.Is(err, apperrors.ErrInvalidArgument):
		resp.Title = titleConflict
		resp.Status = http.StatusBadRequest
		resp.Exception = "IllegalArgumentException"
		resp.Details = map[string]string{causeOf(err): err.Error()}

	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	respondJSON(w, resp.Status, resp)
}

// causeOf walks the wrap chain and returns the innermost error's text, the
// closest thing to the failure's root cause description.
func causeOf(err error) string {
	cause := err
	for {
		next := errors.Unwrap(cause)
		if next == nil {
			return cause.Error()
		}
		cause = next
	}
}
