package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/middleware"
)

func TestRequireCredentials(t *testing.T) {
	var got bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		creds, ok := middleware.CredentialsFromContext(r.Context())
		got = ok && creds.AccountID == "acct-1" && creds.Token == "tok-1"
		w.WriteHeader(http.StatusOK)
	})
	guarded := middleware.RequireCredentials(next)

	t.Run("stores credentials from headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		req.Header.Set("Authorization", "Bearer tok-1")
		req.Header.Set("X-Account-ID", "acct-1")
		w := httptest.NewRecorder()

		guarded.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200", w.Code)
		}
		if !got {
			t.Error("Expected credentials in the request context")
		}
	})

	t.Run("rejects a missing bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		req.Header.Set("X-Account-ID", "acct-1")
		w := httptest.NewRecorder()

		guarded.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Status = %d, want 401", w.Code)
		}
	})

	t.Run("rejects a missing account ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		req.Header.Set("Authorization", "Bearer tok-1")
		w := httptest.NewRecorder()

		guarded.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Status = %d, want 401", w.Code)
		}
	})

	t.Run("rejects a token without the bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		req.Header.Set("Authorization", "tok-1")
		req.Header.Set("X-Account-ID", "acct-1")
		w := httptest.NewRecorder()

		guarded.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Status = %d, want 401", w.Code)
		}
	})

	t.Run("rejects an empty bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		req.Header.Set("Authorization", "Bearer ")
		req.Header.Set("X-Account-ID", "acct-1")
		w := httptest.NewRecorder()

		guarded.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Status = %d, want 401", w.Code)
		}
	})
}
