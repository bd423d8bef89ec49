package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrProfileNotFound indicates that the platform holds no risk profile for
	// the account. This is the normal empty state on first use, not a failure.
	ErrProfileNotFound = errors.New("risk profile not found")

	// ErrPortfolioNotFound indicates that no stored portfolio exists for the account.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrSessionNotFound indicates that a workflow session with the given ID
	// does not exist or has already been closed.
	ErrSessionNotFound = errors.New("session not found")

	// ErrPurchaseRecordNotFound indicates that no archived purchase exists for the account.
	ErrPurchaseRecordNotFound = errors.New("purchase record not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrIncompleteAnswers indicates that the questionnaire is missing at least
	// one answer and cannot be submitted.
	ErrIncompleteAnswers = errors.New("questionnaire answers incomplete")

	// ErrUnknownLabel indicates that a questionnaire field holds a display label
	// outside its declared label set. Normalization never falls back to a default.
	ErrUnknownLabel = errors.New("unknown display label")

	// ErrUnknownToken indicates that a stored profile holds a backend token with
	// no corresponding display label.
	ErrUnknownToken = errors.New("unknown profile token")

	// ErrInvalidTransition indicates that an event is not valid in the session's
	// current workflow state.
	ErrInvalidTransition = errors.New("event not valid in current state")

	// ErrSessionBusy indicates that the session cannot be closed while a
	// generation or purchase call is outstanding.
	ErrSessionBusy = errors.New("session has a request in flight")

	// ErrConflict indicates that the platform rejected a create because the
	// resource already exists. The caller is expected to fall back to update.
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrMissingCredentials indicates that the request lacks the bearer token
	// or X-Account-ID header required for platform calls.
	ErrMissingCredentials = errors.New("missing platform credentials")

	// ErrInvalidBuyingPower indicates that a buying power value could not be
	// parsed as a non-negative decimal amount.
	ErrInvalidBuyingPower = errors.New("invalid buying power")
)

// Operation failure errors represent system-level failures when calling the
// platform or processing data. These errors indicate that an operation failed,
// but not due to missing entities or validation issues.
var (
	// ErrPlatformUnavailable indicates that a platform backend call failed at
	// the transport level before any response was received.
	ErrPlatformUnavailable = errors.New("platform backend unreachable")

	// ErrFailedToGenerate indicates that the portfolio generation call failed.
	ErrFailedToGenerate = errors.New("failed to generate portfolio")
)
