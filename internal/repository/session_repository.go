package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/apperrors"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/model"
)

// SessionRepository provides data access methods for the workflow_session
// table. Platform bearer tokens are fernet-encrypted before they are written
// and decrypted on read; plaintext never reaches storage.
type SessionRepository struct {
	db  *sql.DB
	key *fernet.Key
}

// NewSessionRepository creates a new SessionRepository with the provided
// database connection and encryption key.
func NewSessionRepository(db *sql.DB, key *fernet.Key) *SessionRepository {
	return &SessionRepository{db: db, key: key}
}

// EncryptToken encrypts a platform bearer token for storage.
func (s *SessionRepository) EncryptToken(token string) (string, error) {
	encrypted, err := fernet.EncryptAndSign([]byte(token), s.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt token: %w", err)
	}
	return string(encrypted), nil
}

// DecryptToken recovers a platform bearer token from its stored form.
func (s *SessionRepository) DecryptToken(encrypted string) (string, error) {
	plaintext := fernet.VerifyAndDecrypt([]byte(encrypted), 0, []*fernet.Key{s.key})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt token")
	}
	return string(plaintext), nil
}

// CreateSession inserts a new session record. The record's token must already
// be encrypted via EncryptToken.
func (s *SessionRepository) CreateSession(rec model.SessionRecord) error {
	query := `
          INSERT INTO workflow_session (id, account_id, token_encrypted, state, last_error, created_at, updated_at)
          VALUES (?, ?, ?, ?, ?, ?, ?)
      `
	_, err := s.db.Exec(query,
		rec.ID,
		rec.AccountID,
		rec.TokenEncrypted,
		rec.State,
		rec.LastError,
		rec.CreatedAt.UTC(),
		rec.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert workflow session: %w", err)
	}
	return nil
}

// UpdateSessionState records the session's current state and error banner.
func (s *SessionRepository) UpdateSessionState(id, state, lastError string) error {
	query := `
          UPDATE workflow_session
          SET state = ?, last_error = ?, updated_at = ?
          WHERE id = ?
      `
	result, err := s.db.Exec(query, state, lastError, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update workflow session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check workflow session update: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// GetSession retrieves one session record by ID.
func (s *SessionRepository) GetSession(id string) (model.SessionRecord, error) {
	query := `
          SELECT id, account_id, token_encrypted, state, last_error, created_at, updated_at
          FROM workflow_session
          WHERE id = ?
      `
	var rec model.SessionRecord
	err := s.db.QueryRow(query, id).Scan(
		&rec.ID,
		&rec.AccountID,
		&rec.TokenEncrypted,
		&rec.State,
		&rec.LastError,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return rec, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return rec, fmt.Errorf("failed to query workflow session: %w", err)
	}
	return rec, nil
}

// DeleteSession removes a session record once the session closes or expires.
func (s *SessionRepository) DeleteSession(id string) error {
	result, err := s.db.Exec("DELETE FROM workflow_session WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete workflow session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check workflow session delete: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// ListSessionsIdleSince returns sessions whose last update is older than the
// cutoff. Used by the reaper to find candidates for expiry.
func (s *SessionRepository) ListSessionsIdleSince(cutoff time.Time) ([]model.SessionRecord, error) {
	query := `
          SELECT id, account_id, token_encrypted, state, last_error, created_at, updated_at
          FROM workflow_session
          WHERE updated_at < ?
      `
	rows, err := s.db.Query(query, cutoff.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query idle sessions: %w", err)
	}
	defer rows.Close()

	sessions := []model.SessionRecord{}
	for rows.Next() {
		var rec model.SessionRecord
		err := rows.Scan(
			&rec.ID,
			&rec.AccountID,
			&rec.TokenEncrypted,
			&rec.State,
			&rec.LastError,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan idle session row: %w", err)
		}
		sessions = append(sessions, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating idle sessions: %w", err)
	}
	return sessions, nil
}
