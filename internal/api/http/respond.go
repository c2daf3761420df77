package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/abhisek/examprep/internal/exam"
	"github.com/abhisek/examprep/internal/registry"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

// statusFor maps engine and registry errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, exam.ErrUnknownQuestion),
		errors.Is(err, exam.ErrInvalidOption),
		errors.Is(err, exam.ErrSameSubject),
		errors.Is(err, exam.ErrUnknownVariant),
		errors.Is(err, exam.ErrUnknownSubject),
		errors.As(err, new(badRequest)):
		return http.StatusBadRequest
	case errors.Is(err, exam.ErrWrongPhase),
		errors.Is(err, exam.ErrNoExam),
		errors.Is(err, exam.ErrNotConfigured),
		errors.Is(err, exam.ErrEmptyExam):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// badRequest is a malformed request body or parameter.
type badRequest string

func (e badRequest) Error() string { return string(e) }

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("bad json")
	}
	return nil
}
