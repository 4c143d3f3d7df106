package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/eventlane/server/internal/api/problem"
	"github.com/eventlane/server/internal/domain/categories"
	"github.com/eventlane/server/internal/domain/comments"
	"github.com/eventlane/server/internal/domain/events"
	"github.com/eventlane/server/internal/domain/requests"
	"github.com/eventlane/server/internal/domain/users"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// decodeJSON parses and validates a request body. On failure it writes a 400
// problem response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, env string, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request body", err, env)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request body", err, env,
			problem.WithErrors(validationErrors(err)))
		return false
	}
	return true
}

func validationErrors(err error) map[string]interface{} {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return nil
	}
	out := make(map[string]interface{}, len(fieldErrors))
	for _, fe := range fieldErrors {
		out[fe.Field()] = "failed on " + fe.Tag()
	}
	return out
}

// pathID parses a positive int64 path parameter. On failure it writes a 400
// problem response and returns false.
func pathID(w http.ResponseWriter, r *http.Request, name, env string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid path parameter", events.FieldError{Field: name, Message: "must be a positive number"}, env)
		return 0, false
	}
	return id, true
}

// writeDomainError maps domain errors to problem responses. Unknown errors
// become 500s.
func writeDomainError(w http.ResponseWriter, r *http.Request, env string, err error) {
	switch {
	case isNotFound(err):
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", err, env)
	case isConflict(err):
		problem.Write(w, r, http.StatusConflict, problem.TypeConflict, "Conflict", err, env)
	case isValidation(err):
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, env)
	default:
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServer, "Server error", err, env)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, events.ErrNotFound) ||
		errors.Is(err, users.ErrNotFound) ||
		errors.Is(err, categories.ErrNotFound) ||
		errors.Is(err, requests.ErrNotFound) ||
		errors.Is(err, comments.ErrNotFound)
}

func isConflict(err error) bool {
	return errors.Is(err, events.ErrConflict) ||
		errors.Is(err, users.ErrEmailTaken) ||
		errors.Is(err, categories.ErrNameTaken) ||
		errors.Is(err, categories.ErrInUse) ||
		errors.Is(err, requests.ErrConflict) ||
		errors.Is(err, requests.ErrLimitReached) ||
		errors.Is(err, comments.ErrNotAuthor)
}

func isValidation(err error) bool {
	var fieldErr events.FieldError
	return errors.As(err, &fieldErr)
}
