package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/apperrors"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/validation"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Error().Err(err).Msg("failed to encode JSON")
		}
	}
}

// respondServiceError maps service errors to HTTP status codes. Platform
// error messages pass through verbatim so the client can show them.
func respondServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var validationErr *validation.Error
	switch {
	case errors.Is(err, apperrors.ErrSessionNotFound),
		errors.Is(err, apperrors.ErrProfileNotFound),
		errors.Is(err, apperrors.ErrPortfolioNotFound),
		errors.Is(err, apperrors.ErrPurchaseRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrIncompleteAnswers),
		errors.Is(err, apperrors.ErrUnknownLabel),
		errors.Is(err, apperrors.ErrUnknownToken),
		errors.Is(err, apperrors.ErrInvalidBuyingPower),
		errors.Is(err, apperrors.ErrInvalidUUID),
		errors.Is(err, apperrors.ErrEmptyID),
		errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrMissingCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrSessionBusy),
		errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrPlatformUnavailable):
		status = http.StatusBadGateway
	}

	respondJSON(w, status, map[string]string{"error": err.Error()})
}
