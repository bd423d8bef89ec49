package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/request"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/response"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/service"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/validation"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginResponse carries the platform session material the client needs for
// all subsequent calls.
type LoginResponse struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Token     string `json:"token"`
}

// Login proxies the platform login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateLogin(req); err != nil {
		respondServiceError(w, err)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{
		AccountID: result.AccountID,
		Email:     result.Email,
		Token:     result.Token,
	})
}
