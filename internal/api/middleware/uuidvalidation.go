// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/response"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/validation"
)

// ValidateSessionIDMiddleware validates that the sessionID URL parameter is
// present and is a valid UUID. Returns 400 Bad Request otherwise.
func ValidateSessionIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")

		if sessionID == "" {
			response.RespondError(w, http.StatusBadRequest, "valid session ID is required", "")
			return
		}

		if err := validation.ValidateUUID(sessionID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid session ID format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
