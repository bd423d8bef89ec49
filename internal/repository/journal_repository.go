package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/model"
)

// JournalRepository provides data access methods for the workflow_event and
// purchase_archive tables backing the activity feed.
type JournalRepository struct {
	db *sql.DB
}

// NewJournalRepository creates a new JournalRepository with the provided
// database connection.
func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// InsertEvent records one workflow transition or outcome.
func (s *JournalRepository) InsertEvent(sessionID, accountID, eventType, detail string) error {
	query := `
          INSERT INTO workflow_event (id, session_id, account_id, event_type, detail, created_at)
          VALUES (?, ?, ?, ?, ?, ?)
      `
	_, err := s.db.Exec(query, uuid.NewString(), sessionID, accountID, eventType, detail, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert workflow event: %w", err)
	}
	return nil
}

// ListEvents retrieves the account's workflow events, most recent first.
func (s *JournalRepository) ListEvents(accountID string, limit int) ([]model.JournalEntry, error) {
	query := `
          SELECT id, session_id, account_id, event_type, detail, created_at
          FROM workflow_event
          WHERE account_id = ?
          ORDER BY created_at DESC
          LIMIT ?
      `
	rows, err := s.db.Query(query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query workflow events: %w", err)
	}
	defer rows.Close()

	entries := []model.JournalEntry{}
	for rows.Next() {
		var e model.JournalEntry
		var detail sql.NullString
		err := rows.Scan(&e.ID, &e.SessionID, &e.AccountID, &e.EventType, &detail, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow event row: %w", err)
		}
		e.Detail = detail.String
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workflow events: %w", err)
	}
	return entries, nil
}

// ArchivePurchase stores a completed purchase for the activity feed. Order
// results are stored as a JSON document.
func (s *JournalRepository) ArchivePurchase(sessionID, accountID string, result model.PurchaseResult) error {
	orderResults, err := json.Marshal(result.OrderResults)
	if err != nil {
		return fmt.Errorf("failed to encode order results: %w", err)
	}

	query := `
          INSERT INTO purchase_archive (id, session_id, account_id, total_buying_power, success_count, failure_count, order_results, created_at)
          VALUES (?, ?, ?, ?, ?, ?, ?, ?)
      `
	_, err = s.db.Exec(query,
		uuid.NewString(),
		sessionID,
		accountID,
		result.TotalBuyingPower,
		result.SuccessCount,
		result.FailureCount,
		string(orderResults),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert purchase archive: %w", err)
	}
	return nil
}

// ListPurchases retrieves the account's archived purchases, most recent first.
func (s *JournalRepository) ListPurchases(accountID string, limit int) ([]model.PurchaseRecord, error) {
	query := `
          SELECT id, session_id, account_id, total_buying_power, success_count, failure_count, order_results, created_at
          FROM purchase_archive
          WHERE account_id = ?
          ORDER BY created_at DESC
          LIMIT ?
      `
	rows, err := s.db.Query(query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase archive: %w", err)
	}
	defer rows.Close()

	records := []model.PurchaseRecord{}
	for rows.Next() {
		var rec model.PurchaseRecord
		var orderResults string
		err := rows.Scan(
			&rec.ID,
			&rec.SessionID,
			&rec.AccountID,
			&rec.TotalBuyingPower,
			&rec.SuccessCount,
			&rec.FailureCount,
			&orderResults,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase archive row: %w", err)
		}
		if err := json.Unmarshal([]byte(orderResults), &rec.OrderResults); err != nil {
			return nil, fmt.Errorf("failed to decode order results: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase archive: %w", err)
	}
	return records, nil
}
