package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/handlers"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/middleware"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/request"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/apperrors"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/service"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/testutil"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/workflow"
)

func newPandoraHandler(t *testing.T) (*handlers.PandoraHandler, *service.WorkflowService, *testutil.MockPlatform) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	mock := testutil.NewMockPlatform()
	svc := testutil.NewTestWorkflowService(t, db, mock)
	return handlers.NewPandoraHandler(svc), svc, mock
}

func openSession(t *testing.T, svc *service.WorkflowService) string {
	t.Helper()
	sessionID, _, err := svc.OpenSession(testutil.TestCredentials())
	if err != nil {
		t.Fatalf("OpenSession() returned unexpected error: %v", err)
	}
	return sessionID
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) handlers.SessionResponse {
	t.Helper()
	var resp handlers.SessionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode session response: %v", err)
	}
	return resp
}

// TestOpenHandler tests session creation over HTTP, including the
// credential guard.
func TestOpenHandler(t *testing.T) {
	t.Run("creates a session for valid credentials", func(t *testing.T) {
		h, _, _ := newPandoraHandler(t)
		guarded := middleware.RequireCredentials(http.HandlerFunc(h.Open))

		req := httptest.NewRequest(http.MethodPost, "/api/pandora/sessions", nil)
		req.Header.Set("Authorization", "Bearer tok-1")
		req.Header.Set("X-Account-ID", "acct-1")
		w := httptest.NewRecorder()

		guarded.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Status = %d, want 201: %s", w.Code, w.Body.String())
		}
		resp := decodeSession(t, w)
		if resp.SessionID == "" {
			t.Error("Expected a session ID")
		}
		if resp.State != workflow.StateRiskProfile {
			t.Errorf("State = %s, want risk_profile", resp.State)
		}
	})

	t.Run("rejects requests without credentials", func(t *testing.T) {
		h, _, _ := newPandoraHandler(t)
		guarded := middleware.RequireCredentials(http.HandlerFunc(h.Open))

		req := httptest.NewRequest(http.MethodPost, "/api/pandora/sessions", nil)
		w := httptest.NewRecorder()

		guarded.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Status = %d, want 401", w.Code)
		}
	})
}

// TestGetHandler tests session retrieval.
func TestGetHandler(t *testing.T) {
	t.Run("returns the session snapshot", func(t *testing.T) {
		h, svc, _ := newPandoraHandler(t)
		sessionID := openSession(t, svc)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/pandora/sessions/"+sessionID,
			map[string]string{"sessionID": sessionID})
		w := httptest.NewRecorder()

		h.Get(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200", w.Code)
		}
		resp := decodeSession(t, w)
		if resp.SessionID != sessionID {
			t.Errorf("SessionID = %q, want %q", resp.SessionID, sessionID)
		}
	})

	t.Run("unknown sessions return 404", func(t *testing.T) {
		h, _, _ := newPandoraHandler(t)
		missing := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/pandora/sessions/"+missing,
			map[string]string{"sessionID": missing})
		w := httptest.NewRecorder()

		h.Get(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want 404", w.Code)
		}
	})
}

// TestUpdateAnswersHandler tests the partial-answers endpoint.
func TestUpdateAnswersHandler(t *testing.T) {
	t.Run("applies answers and goal toggles", func(t *testing.T) {
		h, svc, _ := newPandoraHandler(t)
		sessionID := openSession(t, svc)

		tolerance := "Buy more"
		goal := "Education"
		body := request.UpdateAnswersRequest{
			RiskTolerance: &tolerance,
			ToggleGoal:    &goal,
		}
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/pandora/sessions/"+sessionID+"/answers",
			body, map[string]string{"sessionID": sessionID})
		w := httptest.NewRecorder()

		h.UpdateAnswers(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200: %s", w.Code, w.Body.String())
		}
		resp := decodeSession(t, w)
		if string(resp.Answers.RiskTolerance) != tolerance {
			t.Errorf("RiskTolerance = %q, want %q", resp.Answers.RiskTolerance, tolerance)
		}
		found := false
		for _, g := range resp.Answers.FinancialGoals {
			if string(g) == goal {
				found = true
			}
		}
		if !found {
			t.Errorf("FinancialGoals = %v, want %q toggled on", resp.Answers.FinancialGoals, goal)
		}
	})

	t.Run("rejects unknown labels", func(t *testing.T) {
		h, svc, _ := newPandoraHandler(t)
		sessionID := openSession(t, svc)

		bad := "Panic sell"
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/pandora/sessions/"+sessionID+"/answers",
			request.UpdateAnswersRequest{RiskTolerance: &bad}, map[string]string{"sessionID": sessionID})
		w := httptest.NewRecorder()

		h.UpdateAnswers(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", w.Code)
		}
	})

	t.Run("rejects malformed bodies", func(t *testing.T) {
		h, svc, _ := newPandoraHandler(t)
		sessionID := openSession(t, svc)

		req := testutil.NewRequestWithURLParams(http.MethodPut, "/api/pandora/sessions/"+sessionID+"/answers",
			map[string]string{"sessionID": sessionID})
		w := httptest.NewRecorder()

		h.UpdateAnswers(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", w.Code)
		}
	})
}

// TestSubmitHandler tests the submit endpoint's guard mapping.
func TestSubmitHandler(t *testing.T) {
	t.Run("incomplete questionnaires return 400", func(t *testing.T) {
		h, svc, mock := newPandoraHandler(t)
		mock.ProfileErr = apperrors.ErrProfileNotFound
		sessionID := openSession(t, svc)

		req := testutil.NewRequestWithURLParams(http.MethodPost, "/api/pandora/sessions/"+sessionID+"/submit",
			map[string]string{"sessionID": sessionID})
		w := httptest.NewRecorder()

		h.Submit(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400: %s", w.Code, w.Body.String())
		}
	})

	t.Run("prepopulated sessions submit directly", func(t *testing.T) {
		h, svc, _ := newPandoraHandler(t)
		sessionID := openSession(t, svc)

		req := testutil.NewRequestWithURLParams(http.MethodPost, "/api/pandora/sessions/"+sessionID+"/submit",
			map[string]string{"sessionID": sessionID})
		w := httptest.NewRecorder()

		h.Submit(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200: %s", w.Code, w.Body.String())
		}
		resp := decodeSession(t, w)
		if resp.State != workflow.StatePortfolio {
			t.Errorf("State = %s, want portfolio", resp.State)
		}
		if resp.Portfolio == nil {
			t.Error("Expected a portfolio in the response")
		}
	})
}

// TestAllocationHandler tests the preview endpoint.
func TestAllocationHandler(t *testing.T) {
	h, svc, _ := newPandoraHandler(t)
	sessionID := openSession(t, svc)
	if _, err := svc.Submit(sessionID); err != nil {
		t.Fatalf("Submit() returned unexpected error: %v", err)
	}

	req := testutil.NewRequestWithURLParams(http.MethodGet,
		"/api/pandora/sessions/"+sessionID+"/allocation?buying_power=1000",
		map[string]string{"sessionID": sessionID})
	w := httptest.NewRecorder()

	h.Allocation(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200: %s", w.Code, w.Body.String())
	}
	var resp handlers.AllocationResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode allocation response: %v", err)
	}
	if len(resp.Orders) != 2 || resp.Orders[0].Notional != "600" {
		t.Errorf("Orders = %+v", resp.Orders)
	}
	if resp.BuyingPower != "1000" {
		t.Errorf("BuyingPower = %s, want 1000", resp.BuyingPower)
	}
	if resp.Total != "1000" {
		t.Errorf("Total = %s, want 1000", resp.Total)
	}
}

// TestCloseHandler tests session teardown over HTTP.
func TestCloseHandler(t *testing.T) {
	h, svc, _ := newPandoraHandler(t)
	sessionID := openSession(t, svc)

	req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/pandora/sessions/"+sessionID,
		map[string]string{"sessionID": sessionID})
	w := httptest.NewRecorder()

	h.Close(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Status = %d, want 204", w.Code)
	}
	if _, err := svc.Snapshot(sessionID); err == nil {
		t.Error("Expected the session to be gone after close")
	}
}

// TestQuestionnaireHandler tests the options catalog.
func TestQuestionnaireHandler(t *testing.T) {
	h, _, _ := newPandoraHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/pandora/questionnaire", nil)
	w := httptest.NewRecorder()

	h.Questionnaire(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}
	var catalog map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&catalog); err != nil {
		t.Fatalf("Failed to decode catalog: %v", err)
	}
	for _, field := range []string{
		"risk_tolerance", "investment_timeline", "financial_goals",
		"age_bracket", "annual_income_bracket", "investment_experience", "risk_capacity",
	} {
		if _, ok := catalog[field]; !ok {
			t.Errorf("Catalog missing %q", field)
		}
	}
}
