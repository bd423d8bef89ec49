package handlers

import (
	"net/http"
	"strconv"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/middleware"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/response"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/apperrors"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/repository"
)

const defaultJournalLimit = 50

// JournalHandler handles journal HTTP requests
type JournalHandler struct {
	journal *repository.JournalRepository
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(journal *repository.JournalRepository) *JournalHandler {
	return &JournalHandler{
		journal: journal,
	}
}

// Events lists the account's recent workflow events, newest first.
func (h *JournalHandler) Events(w http.ResponseWriter, r *http.Request) {
	creds, ok := middleware.CredentialsFromContext(r.Context())
	if !ok {
		respondServiceError(w, apperrors.ErrMissingCredentials)
		return
	}
	limit, err := journalLimit(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid limit", err.Error())
		return
	}

	events, err := h.journal.ListEvents(creds.AccountID, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// Purchases lists the account's archived completed purchases, newest first.
func (h *JournalHandler) Purchases(w http.ResponseWriter, r *http.Request) {
	creds, ok := middleware.CredentialsFromContext(r.Context())
	if !ok {
		respondServiceError(w, apperrors.ErrMissingCredentials)
		return
	}
	limit, err := journalLimit(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid limit", err.Error())
		return
	}

	purchases, err := h.journal.ListPurchases(creds.AccountID, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, purchases)
}

func journalLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultJournalLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, strconv.ErrSyntax
	}
	return limit, nil
}
