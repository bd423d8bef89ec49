package model

import "time"

// SessionRecord is the persisted row backing an in-memory workflow session.
// The platform bearer token is fernet-encrypted before it reaches this struct;
// TokenEncrypted never holds plaintext.
type SessionRecord struct {
	ID             string
	AccountID      string
	TokenEncrypted string
	State          string
	LastError      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// JournalEntry records one workflow transition or outcome for the activity feed.
type JournalEntry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	AccountID string    `json:"account_id"`
	EventType string    `json:"event_type"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PurchaseRecord archives a completed portfolio purchase.
type PurchaseRecord struct {
	ID               string        `json:"id"`
	SessionID        string        `json:"session_id"`
	AccountID        string        `json:"account_id"`
	TotalBuyingPower string        `json:"total_buying_power"`
	SuccessCount     int           `json:"success_count"`
	FailureCount     int           `json:"failure_count"`
	OrderResults     []OrderResult `json:"order_results"`
	CreatedAt        time.Time     `json:"created_at"`
}
