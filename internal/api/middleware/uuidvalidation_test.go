package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/middleware"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/testutil"
)

func TestValidateSessionIDMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guarded := middleware.ValidateSessionIDMiddleware(next)

	t.Run("passes valid UUIDs through", func(t *testing.T) {
		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/pandora/sessions/"+id,
			map[string]string{"sessionID": id})
		w := httptest.NewRecorder()

		guarded.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want 200", w.Code)
		}
	})

	t.Run("rejects malformed IDs", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/pandora/sessions/not-a-uuid",
			map[string]string{"sessionID": "not-a-uuid"})
		w := httptest.NewRecorder()

		guarded.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", w.Code)
		}
	})

	t.Run("rejects missing IDs", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/pandora/sessions/", nil)
		w := httptest.NewRecorder()

		guarded.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", w.Code)
		}
	})
}
