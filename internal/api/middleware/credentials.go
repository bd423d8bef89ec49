package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/response"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/platform"
)

type contextKey string

const credentialsKey contextKey = "credentials"

// RequireCredentials extracts the platform bearer token and account ID from
// the Authorization and X-Account-ID headers and stores them in the request
// context. Requests missing either header are rejected with 401.
func RequireCredentials(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		accountID := r.Header.Get("X-Account-ID")

		if token == "" || token == r.Header.Get("Authorization") || accountID == "" {
			response.RespondError(w, http.StatusUnauthorized, "missing credentials",
				"Authorization bearer token and X-Account-ID header are required")
			return
		}

		creds := platform.Credentials{AccountID: accountID, Token: token}
		ctx := context.WithValue(r.Context(), credentialsKey, creds)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CredentialsFromContext returns the credentials stored by RequireCredentials.
func CredentialsFromContext(ctx context.Context) (platform.Credentials, bool) {
	creds, ok := ctx.Value(credentialsKey).(platform.Credentials)
	return creds, ok
}
