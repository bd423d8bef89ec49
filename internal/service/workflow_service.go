package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/allocation"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/apperrors"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/model"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/platform"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/repository"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/workflow"
)

// Notifier receives the purchase-completed signal fired when a Complete
// session closes, so dependent views (order list, cash balance) can refresh.
type Notifier interface {
	PurchaseCompleted(accountID string, result model.PurchaseResult)
}

// LogNotifier is the default Notifier; it records the signal in the log.
type LogNotifier struct {
	Log zerolog.Logger
}

// PurchaseCompleted logs the completed purchase.
func (n LogNotifier) PurchaseCompleted(accountID string, result model.PurchaseResult) {
	n.Log.Info().
		Str("account_id", accountID).
		Int("success_count", result.SuccessCount).
		Int("failure_count", result.FailureCount).
		Msg("purchase completed")
}

// sessionEntry pairs one workflow machine with its credentials. The mutex
// serializes all machine access; the state guards inside the machine then
// ensure at most one mutating platform call is in flight per session.
type sessionEntry struct {
	mu         sync.Mutex
	id         string
	creds      platform.Credentials
	machine    *workflow.Machine
	lastActive time.Time
}

// WorkflowService owns the live workflow sessions. Machines live in memory;
// session records, transitions and completed purchases are journaled to the
// database.
type WorkflowService struct {
	platform platform.API
	sessions *repository.SessionRepository
	journal  *repository.JournalRepository
	notifier Notifier
	timeout  time.Duration
	log      zerolog.Logger

	mu      sync.RWMutex
	entries map[string]*sessionEntry
}

// NewWorkflowService creates a new WorkflowService. timeout bounds every
// platform call made on behalf of a session.
func NewWorkflowService(
	api platform.API,
	sessions *repository.SessionRepository,
	journal *repository.JournalRepository,
	notifier Notifier,
	timeout time.Duration,
	log zerolog.Logger,
) *WorkflowService {
	return &WorkflowService{
		platform: api,
		sessions: sessions,
		journal:  journal,
		notifier: notifier,
		timeout:  timeout,
		log:      log,
		entries:  make(map[string]*sessionEntry),
	}
}

// OpenSession creates a session for the given credentials and runs the
// opening risk profile fetch. Whatever that fetch yields, the session lands
// in the questionnaire state and its snapshot is returned.
func (s *WorkflowService) OpenSession(creds platform.Credentials) (string, workflow.Snapshot, error) {
	if creds.AccountID == "" || creds.Token == "" {
		return "", workflow.Snapshot{}, apperrors.ErrMissingCredentials
	}

	entry := &sessionEntry{
		id:         uuid.NewString(),
		creds:      creds,
		machine:    workflow.New(),
		lastActive: time.Now(),
	}

	encrypted, err := s.sessions.EncryptToken(creds.Token)
	if err != nil {
		return "", workflow.Snapshot{}, err
	}
	now := time.Now().UTC()
	err = s.sessions.CreateSession(model.SessionRecord{
		ID:             entry.id,
		AccountID:      creds.AccountID,
		TokenEncrypted: encrypted,
		State:          string(workflow.StateLoading),
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return "", workflow.Snapshot{}, err
	}

	s.mu.Lock()
	s.entries[entry.id] = entry
	s.mu.Unlock()

	s.journalEvent(entry, "session_opened", "")

	snap, err := s.dispatch(entry, workflow.Open{})
	if err != nil {
		return entry.id, snap, err
	}
	return entry.id, snap, nil
}

// Snapshot returns the session's current view-layer state.
func (s *WorkflowService) Snapshot(sessionID string) (workflow.Snapshot, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return workflow.Snapshot{}, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.machine.Snapshot(), nil
}

// SetAnswers applies questionnaire answers to the session.
func (s *WorkflowService) SetAnswers(sessionID string, ev workflow.SetAnswers) (workflow.Snapshot, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return workflow.Snapshot{}, err
	}
	return s.dispatch(entry, ev)
}

// ToggleGoal flips one financial goal selection on the session.
func (s *WorkflowService) ToggleGoal(sessionID string, ev workflow.ToggleGoal) (workflow.Snapshot, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return workflow.Snapshot{}, err
	}
	return s.dispatch(entry, ev)
}

// Submit validates, normalizes, stores the risk profile and generates the
// first portfolio. The call blocks until generation resolves.
func (s *WorkflowService) Submit(sessionID string) (workflow.Snapshot, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return workflow.Snapshot{}, err
	}
	return s.dispatch(entry, workflow.Submit{})
}

// Regenerate re-runs generation with the session's normalized profile.
func (s *WorkflowService) Regenerate(sessionID string) (workflow.Snapshot, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return workflow.Snapshot{}, err
	}
	return s.dispatch(entry, workflow.Regenerate{})
}

// Purchase persists the displayed portfolio and buys it.
func (s *WorkflowService) Purchase(sessionID string) (workflow.Snapshot, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return workflow.Snapshot{}, err
	}
	return s.dispatch(entry, workflow.Purchase{})
}

// AllocationPreview computes the per-symbol order amounts the session's
// displayed portfolio would produce for the given buying power. An empty
// buyingPower falls back to the account's live cash balance. Returns the
// buying power actually used alongside the planned orders.
func (s *WorkflowService) AllocationPreview(sessionID, buyingPower string) (string, []allocation.PlannedOrder, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return "", nil, err
	}
	entry.mu.Lock()
	snap := entry.machine.Snapshot()
	entry.mu.Unlock()
	if snap.Portfolio == nil {
		return "", nil, apperrors.ErrPortfolioNotFound
	}

	if buyingPower == "" {
		ctx, cancel := s.callContext()
		defer cancel()
		buyingPower, err = s.platform.GetBuyingPower(ctx, entry.creds)
		if err != nil {
			return "", nil, err
		}
	}

	orders, err := allocation.Preview(buyingPower, snap.Portfolio.Positions)
	if err != nil {
		return "", nil, err
	}
	return buyingPower, orders, nil
}

// CloseSession ends the session. Closing a Complete session fires the
// purchase-completed notification. Refused while a platform call is in flight.
func (s *WorkflowService) CloseSession(sessionID string) error {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	_, err = entry.machine.Dispatch(workflow.Close{})
	if err != nil {
		entry.mu.Unlock()
		return err
	}
	snap := entry.machine.Snapshot()
	entry.mu.Unlock()

	if snap.State == workflow.StateComplete && snap.Purchase != nil {
		s.notifier.PurchaseCompleted(entry.creds.AccountID, *snap.Purchase)
	}

	s.remove(entry, "session_closed")
	return nil
}

// ExpireIdle removes sessions idle longer than softTTL and, past hardTTL,
// even sessions stuck with a call outstanding, so a hung backend cannot pin
// a session forever. Returns the number of sessions removed.
func (s *WorkflowService) ExpireIdle(softTTL, hardTTL time.Duration) int {
	s.mu.RLock()
	candidates := make([]*sessionEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		candidates = append(candidates, entry)
	}
	s.mu.RUnlock()

	now := time.Now()
	expired := 0
	for _, entry := range candidates {
		entry.mu.Lock()
		idle := now.Sub(entry.lastActive)
		snap := entry.machine.Snapshot()
		entry.mu.Unlock()

		switch {
		case idle > hardTTL:
			// Past the hard TTL the busy guard no longer applies.
		case idle > softTTL && snap.CanClose:
			// Normal idle expiry.
		default:
			continue
		}

		s.remove(entry, "session_expired")
		expired++
	}
	return expired
}

// lookup finds a live session entry by ID.
func (s *WorkflowService) lookup(sessionID string) (*sessionEntry, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return entry, nil
}

// remove drops the session from memory and storage and journals why.
func (s *WorkflowService) remove(entry *sessionEntry, reason string) {
	s.mu.Lock()
	delete(s.entries, entry.id)
	s.mu.Unlock()

	if err := s.sessions.DeleteSession(entry.id); err != nil && !errors.Is(err, apperrors.ErrSessionNotFound) {
		s.log.Warn().Err(err).Str("session_id", entry.id).Msg("failed to delete session record")
	}
	s.journalEvent(entry, reason, "")
}

// dispatch applies one event and, when the transition requests platform work,
// executes it and feeds the completion event back in. The entry lock is not
// held across the platform call, so snapshot reads observe the in-progress
// state and the client sees Generating/Purchasing while the call runs.
func (s *WorkflowService) dispatch(entry *sessionEntry, ev workflow.Event) (workflow.Snapshot, error) {
	entry.mu.Lock()
	effect, err := entry.machine.Dispatch(ev)
	snap := entry.machine.Snapshot()
	entry.lastActive = time.Now()
	entry.mu.Unlock()
	if err != nil {
		return snap, err
	}
	s.persistState(entry, snap)
	if effect == nil {
		return snap, nil
	}

	completion := s.runEffect(entry, effect)

	entry.mu.Lock()
	_, err = entry.machine.Dispatch(completion)
	snap = entry.machine.Snapshot()
	entry.lastActive = time.Now()
	entry.mu.Unlock()
	if err != nil {
		return snap, err
	}
	s.persistState(entry, snap)
	return snap, nil
}

// runEffect executes one platform effect and returns its completion event.
// Calls run under their own deadline, detached from the HTTP request context:
// a client disconnect must not abandon an already-issued generation or
// purchase on the backend.
func (s *WorkflowService) runEffect(entry *sessionEntry, effect workflow.Effect) workflow.Event {
	switch e := effect.(type) {
	case workflow.LoadProfile:
		ctx, cancel := s.callContext()
		defer cancel()
		profile, err := s.platform.GetRiskProfile(ctx, entry.creds)
		if err != nil {
			return workflow.ProfileLoaded{Err: err}
		}
		return workflow.ProfileLoaded{Profile: &profile}

	case workflow.GeneratePortfolio:
		if e.StoreFirst {
			if err := s.storeProfile(entry, e.Profile, e.HadProfile); err != nil {
				s.journalEvent(entry, "generation_failed", err.Error())
				return workflow.GenerationDone{Err: err}
			}
			s.journalEvent(entry, "profile_submitted", "")
		}

		ctx, cancel := s.callContext()
		defer cancel()
		portfolio, err := s.platform.GeneratePortfolio(ctx, entry.creds, e.Profile)
		if err != nil {
			s.journalEvent(entry, "generation_failed", err.Error())
			return workflow.GenerationDone{Err: err}
		}
		s.journalEvent(entry, "portfolio_generated", fmt.Sprintf("%d positions", len(portfolio.Positions)))
		return workflow.GenerationDone{Portfolio: &portfolio}

	case workflow.ExecutePurchase:
		result, err := s.persistAndPurchase(entry, e.Positions)
		if err != nil {
			s.journalEvent(entry, "purchase_failed", err.Error())
			return workflow.PurchaseDone{Err: err}
		}
		if err := s.journal.ArchivePurchase(entry.id, entry.creds.AccountID, result); err != nil {
			s.log.Warn().Err(err).Str("session_id", entry.id).Msg("failed to archive purchase")
		}
		s.journalEvent(entry, "purchase_completed",
			fmt.Sprintf("%d filled, %d failed", result.SuccessCount, result.FailureCount))
		return workflow.PurchaseDone{Result: &result}

	default:
		return workflow.GenerationDone{Err: fmt.Errorf("unknown effect %T", effect)}
	}
}

// storeProfile creates or updates the stored risk profile, selected by
// whether the session loaded one at open time. A create conflict means an
// earlier submit already stored the profile, so the update path is taken,
// same as with portfolios.
func (s *WorkflowService) storeProfile(entry *sessionEntry, profile model.RiskProfile, hadProfile bool) error {
	ctx, cancel := s.callContext()
	if hadProfile {
		defer cancel()
		return s.platform.UpdateRiskProfile(ctx, entry.creds, profile)
	}
	err := s.platform.CreateRiskProfile(ctx, entry.creds, profile)
	cancel()
	if errors.Is(err, apperrors.ErrConflict) {
		ctx, cancel = s.callContext()
		defer cancel()
		return s.platform.UpdateRiskProfile(ctx, entry.creds, profile)
	}
	return err
}

// persistAndPurchase stores the positions as the canonical portfolio and then
// purchases it. Create is attempted first; a conflict means a portfolio
// already exists and the update path is taken instead.
func (s *WorkflowService) persistAndPurchase(entry *sessionEntry, positions []model.Position) (model.PurchaseResult, error) {
	ctx, cancel := s.callContext()
	err := s.platform.CreatePortfolio(ctx, entry.creds, positions)
	cancel()
	if errors.Is(err, apperrors.ErrConflict) {
		ctx, cancel = s.callContext()
		err = s.platform.UpdatePortfolio(ctx, entry.creds, positions)
		cancel()
	}
	if err != nil {
		return model.PurchaseResult{}, err
	}

	ctx, cancel = s.callContext()
	defer cancel()
	return s.platform.PurchasePortfolio(ctx, entry.creds)
}

func (s *WorkflowService) callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// persistState records the session's state and error banner. Best effort:
// journal storage must not break the workflow.
func (s *WorkflowService) persistState(entry *sessionEntry, snap workflow.Snapshot) {
	err := s.sessions.UpdateSessionState(entry.id, string(snap.State), snap.Error)
	if err != nil && !errors.Is(err, apperrors.ErrSessionNotFound) {
		s.log.Warn().Err(err).Str("session_id", entry.id).Msg("failed to persist session state")
	}
}

func (s *WorkflowService) journalEvent(entry *sessionEntry, eventType, detail string) {
	if err := s.journal.InsertEvent(entry.id, entry.creds.AccountID, eventType, detail); err != nil {
		s.log.Warn().Err(err).Str("session_id", entry.id).Str("event", eventType).Msg("failed to journal event")
	}
}
