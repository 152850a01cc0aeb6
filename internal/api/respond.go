package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"socialhub/internal/domain"
)

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, messageResponse{Message: message})
}

// respondError maps expected domain failures onto the HTTP contract.
// Anything unrecognized collapses to a generic 500 with no internal detail.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrInvalidPostKind),
		errors.Is(err, domain.ErrAlreadyLiked),
		errors.Is(err, domain.ErrResetTokenExpired):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken):
		respondMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrEmailNotFound),
		errors.Is(err, domain.ErrResetTokenInvalid):
		respondMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidCredential):
		respondMessage(w, http.StatusUnauthorized, err.Error())
	default:
		respondMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
