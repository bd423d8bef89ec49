package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/rs/zerolog"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/platform"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/repository"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/service"
)

// TestCredentials returns the fixed credentials used across tests.
func TestCredentials() platform.Credentials {
	return platform.Credentials{AccountID: "acct-1", Token: "tok-1"}
}

// TestFernetKey generates a fresh fernet key for tests.
func TestFernetKey(t *testing.T) *fernet.Key {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}
	return &key
}

// NewTestWorkflowService wires a WorkflowService against the given database
// and mock platform, with logging disabled.
func NewTestWorkflowService(t *testing.T, db *sql.DB, api platform.API) *service.WorkflowService {
	t.Helper()

	log := zerolog.Nop()
	sessionRepo := repository.NewSessionRepository(db, TestFernetKey(t))
	journalRepo := repository.NewJournalRepository(db)

	return service.NewWorkflowService(
		api,
		sessionRepo,
		journalRepo,
		service.LogNotifier{Log: log},
		5*time.Second,
		log,
	)
}
