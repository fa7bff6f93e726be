package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vncsmyrnk/pollbot/internal/core/domain"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrActivePollExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrMalformedVote), errors.Is(err, domain.ErrUnknownChoice):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPollNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPollNotActive), errors.Is(err, domain.ErrDuplicateVote):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnregisteredVoter):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrGenerator):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
