package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/allocation"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/middleware"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/request"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/response"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/apperrors"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/questionnaire"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/service"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/validation"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/workflow"
)

// PandoraHandler handles workflow session HTTP requests
type PandoraHandler struct {
	workflowService *service.WorkflowService
}

// NewPandoraHandler creates a new PandoraHandler
func NewPandoraHandler(workflowService *service.WorkflowService) *PandoraHandler {
	return &PandoraHandler{
		workflowService: workflowService,
	}
}

// SessionResponse is the session view returned by every session endpoint.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	workflow.Snapshot
}

// Questionnaire returns the selectable options for every questionnaire field.
func (h *PandoraHandler) Questionnaire(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"risk_tolerance":        questionnaire.RiskToleranceLabels(),
		"investment_timeline":   questionnaire.TimelineLabels(),
		"financial_goals":       questionnaire.GoalLabels(),
		"max_goals":             questionnaire.MaxGoals,
		"age_bracket":           questionnaire.AgeBracketLabels(),
		"annual_income_bracket": questionnaire.IncomeBracketLabels(),
		"investment_experience": questionnaire.ExperienceLabels(),
		"risk_capacity":         questionnaire.CapacityLabels(),
	})
}

// Open creates a workflow session for the authenticated account and loads any
// stored risk profile into it.
func (h *PandoraHandler) Open(w http.ResponseWriter, r *http.Request) {
	creds, ok := middleware.CredentialsFromContext(r.Context())
	if !ok {
		respondServiceError(w, apperrors.ErrMissingCredentials)
		return
	}

	sessionID, snap, err := h.workflowService.OpenSession(creds)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, SessionResponse{SessionID: sessionID, Snapshot: snap})
}

// Get returns the session's current state.
func (h *PandoraHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	snap, err := h.workflowService.Snapshot(sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{SessionID: sessionID, Snapshot: snap})
}

// UpdateAnswers applies a partial answers update, including goal toggles.
func (h *PandoraHandler) UpdateAnswers(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req request.UpdateAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateUpdateAnswers(req); err != nil {
		respondServiceError(w, err)
		return
	}

	snap, err := h.workflowService.SetAnswers(sessionID, buildSetAnswers(req))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if req.ToggleGoal != nil {
		snap, err = h.workflowService.ToggleGoal(sessionID, workflow.ToggleGoal{
			Goal: questionnaire.GoalLabel(*req.ToggleGoal),
		})
		if err != nil {
			respondServiceError(w, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, SessionResponse{SessionID: sessionID, Snapshot: snap})
}

// Submit stores the risk profile and generates the first portfolio.
func (h *PandoraHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	snap, err := h.workflowService.Submit(sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{SessionID: sessionID, Snapshot: snap})
}

// Regenerate produces a fresh portfolio from the stored profile.
func (h *PandoraHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	snap, err := h.workflowService.Regenerate(sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{SessionID: sessionID, Snapshot: snap})
}

// Purchase persists and buys the displayed portfolio.
func (h *PandoraHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	snap, err := h.workflowService.Purchase(sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{SessionID: sessionID, Snapshot: snap})
}

// AllocationResponse carries the allocation preview for one buying power.
type AllocationResponse struct {
	BuyingPower string                    `json:"buying_power"`
	Orders      []allocation.PlannedOrder `json:"orders"`
	Total       string                    `json:"total"`
}

// Allocation previews the per-symbol notional amounts a purchase would place.
// The buying_power query parameter overrides the account's live cash balance.
func (h *PandoraHandler) Allocation(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	buyingPower, orders, err := h.workflowService.AllocationPreview(sessionID, r.URL.Query().Get("buying_power"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AllocationResponse{
		BuyingPower: buyingPower,
		Orders:      orders,
		Total:       allocation.Total(orders),
	})
}

// Close ends the session. A completed session fires the purchase notification.
func (h *PandoraHandler) Close(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.workflowService.CloseSession(sessionID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// buildSetAnswers converts the request's string pointers to typed labels.
func buildSetAnswers(req request.UpdateAnswersRequest) workflow.SetAnswers {
	var ev workflow.SetAnswers
	if req.RiskTolerance != nil {
		v := questionnaire.RiskToleranceLabel(*req.RiskTolerance)
		ev.RiskTolerance = &v
	}
	if req.InvestmentTimeline != nil {
		v := questionnaire.TimelineLabel(*req.InvestmentTimeline)
		ev.InvestmentTimeline = &v
	}
	if req.AgeBracket != nil {
		v := questionnaire.AgeBracketLabel(*req.AgeBracket)
		ev.AgeBracket = &v
	}
	if req.AnnualIncomeBracket != nil {
		v := questionnaire.IncomeBracketLabel(*req.AnnualIncomeBracket)
		ev.AnnualIncomeBracket = &v
	}
	if req.InvestmentExperience != nil {
		v := questionnaire.ExperienceLabel(*req.InvestmentExperience)
		ev.InvestmentExperience = &v
	}
	if req.RiskCapacity != nil {
		v := questionnaire.CapacityLabel(*req.RiskCapacity)
		ev.RiskCapacity = &v
	}
	return ev
}
