package handlers

import (
	"net/http"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/middleware"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/apperrors"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/service"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Dashboard returns the account's positions, recent orders and quotes.
// Sections degrade independently; partial failures arrive in the errors map.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	creds, ok := middleware.CredentialsFromContext(r.Context())
	if !ok {
		respondServiceError(w, apperrors.ErrMissingCredentials)
		return
	}

	dashboard := h.dashboardService.Load(r.Context(), creds)
	respondJSON(w, http.StatusOK, dashboard)
}
