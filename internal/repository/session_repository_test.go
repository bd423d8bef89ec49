package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/apperrors"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/model"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/repository"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/testutil"
)

func newSessionRepo(t *testing.T) *repository.SessionRepository {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return repository.NewSessionRepository(db, testutil.TestFernetKey(t))
}

func sessionRecord(repo *repository.SessionRepository, t *testing.T) model.SessionRecord {
	t.Helper()
	encrypted, err := repo.EncryptToken("bearer-token")
	if err != nil {
		t.Fatalf("EncryptToken() returned unexpected error: %v", err)
	}
	now := time.Now().UTC()
	return model.SessionRecord{
		ID:             testutil.MakeID(),
		AccountID:      "acct-1",
		TokenEncrypted: encrypted,
		State:          "loading",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// TestTokenEncryption tests the fernet round trip.
//
// WHY: The bearer token is the only secret this service stores. A broken
// round trip would either leak plaintext or lock every session out.
func TestTokenEncryption(t *testing.T) {
	repo := newSessionRepo(t)

	encrypted, err := repo.EncryptToken("super-secret-token")
	if err != nil {
		t.Fatalf("EncryptToken() returned unexpected error: %v", err)
	}
	if encrypted == "super-secret-token" {
		t.Fatal("Encrypted token must not equal the plaintext")
	}

	decrypted, err := repo.DecryptToken(encrypted)
	if err != nil {
		t.Fatalf("DecryptToken() returned unexpected error: %v", err)
	}
	if decrypted != "super-secret-token" {
		t.Errorf("DecryptToken() = %q, want the original token", decrypted)
	}

	if _, err := repo.DecryptToken("not-a-fernet-token"); err == nil {
		t.Error("Expected an error for a garbage ciphertext")
	}
}

func TestSessionCRUD(t *testing.T) {
	t.Run("creates and fetches a session", func(t *testing.T) {
		repo := newSessionRepo(t)
		rec := sessionRecord(repo, t)

		if err := repo.CreateSession(rec); err != nil {
			t.Fatalf("CreateSession() returned unexpected error: %v", err)
		}

		got, err := repo.GetSession(rec.ID)
		if err != nil {
			t.Fatalf("GetSession() returned unexpected error: %v", err)
		}
		if got.AccountID != "acct-1" || got.State != "loading" {
			t.Errorf("GetSession() = %+v", got)
		}
	})

	t.Run("updates state and error banner", func(t *testing.T) {
		repo := newSessionRepo(t)
		rec := sessionRecord(repo, t)
		if err := repo.CreateSession(rec); err != nil {
			t.Fatalf("CreateSession() returned unexpected error: %v", err)
		}

		if err := repo.UpdateSessionState(rec.ID, "generating", "backend down"); err != nil {
			t.Fatalf("UpdateSessionState() returned unexpected error: %v", err)
		}

		got, err := repo.GetSession(rec.ID)
		if err != nil {
			t.Fatalf("GetSession() returned unexpected error: %v", err)
		}
		if got.State != "generating" || got.LastError != "backend down" {
			t.Errorf("GetSession() = %+v", got)
		}
	})

	t.Run("missing sessions map to ErrSessionNotFound", func(t *testing.T) {
		repo := newSessionRepo(t)

		if _, err := repo.GetSession(testutil.MakeID()); !errors.Is(err, apperrors.ErrSessionNotFound) {
			t.Errorf("GetSession() error = %v, want ErrSessionNotFound", err)
		}
		if err := repo.UpdateSessionState(testutil.MakeID(), "x", ""); !errors.Is(err, apperrors.ErrSessionNotFound) {
			t.Errorf("UpdateSessionState() error = %v, want ErrSessionNotFound", err)
		}
		if err := repo.DeleteSession(testutil.MakeID()); !errors.Is(err, apperrors.ErrSessionNotFound) {
			t.Errorf("DeleteSession() error = %v, want ErrSessionNotFound", err)
		}
	})

	t.Run("deletes a session", func(t *testing.T) {
		repo := newSessionRepo(t)
		rec := sessionRecord(repo, t)
		if err := repo.CreateSession(rec); err != nil {
			t.Fatalf("CreateSession() returned unexpected error: %v", err)
		}

		if err := repo.DeleteSession(rec.ID); err != nil {
			t.Fatalf("DeleteSession() returned unexpected error: %v", err)
		}
		if _, err := repo.GetSession(rec.ID); !errors.Is(err, apperrors.ErrSessionNotFound) {
			t.Errorf("GetSession() after delete error = %v, want ErrSessionNotFound", err)
		}
	})
}

func TestListSessionsIdleSince(t *testing.T) {
	repo := newSessionRepo(t)

	stale := sessionRecord(repo, t)
	stale.UpdatedAt = time.Now().UTC().Add(-2 * time.Hour)
	if err := repo.CreateSession(stale); err != nil {
		t.Fatalf("CreateSession() returned unexpected error: %v", err)
	}

	fresh := sessionRecord(repo, t)
	if err := repo.CreateSession(fresh); err != nil {
		t.Fatalf("CreateSession() returned unexpected error: %v", err)
	}

	idle, err := repo.ListSessionsIdleSince(time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("ListSessionsIdleSince() returned unexpected error: %v", err)
	}
	if len(idle) != 1 || idle[0].ID != stale.ID {
		t.Errorf("ListSessionsIdleSince() = %+v, want only the stale session", idle)
	}
}
