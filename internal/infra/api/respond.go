package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"skrbl-automation-platform/internal/domain"
)

// envelope is the uniform JSON response shape:
// {success, data?, message?} on success, {success:false, error} on failure.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func respondOK(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

// respondError maps domain errors to HTTP statuses in one place. Anything
// outside the closed error set becomes a generic 500; the cause is logged, not
// leaked.
func respondError(w http.ResponseWriter, log *zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, envelope{Error: "missing or invalid required field"})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, envelope{Error: "unauthorized"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, envelope{Error: "not found"})
	case errors.Is(err, domain.ErrRateLimited):
		writeJSON(w, http.StatusTooManyRequests, envelope{Error: "rate limit exceeded"})
	case errors.Is(err, domain.ErrTerminalJob):
		writeJSON(w, http.StatusConflict, envelope{Error: "job already finished"})
	case errors.Is(err, domain.ErrCodeExpired), errors.Is(err, domain.ErrCodeMismatch):
		writeJSON(w, http.StatusBadRequest, envelope{Error: err.Error()})
	case errors.Is(err, domain.ErrUpstream):
		log.Error().Err(err).Msg("upstream dependency failed")
		writeJSON(w, http.StatusBadGateway, envelope{Error: "upstream service failed"})
	default:
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, envelope{Error: "internal error"})
	}
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.ErrInvalidArgument
	}
	return nil
}
