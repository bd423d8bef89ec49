package workflow

import (
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/model"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/questionnaire"
)

// Event is the tagged union of everything that can drive a session forward.
// User events come from the client; completion events are dispatched by the
// effect runner when a platform call resolves.
type Event interface {
	isEvent()
}

// Open starts the session: it requests the stored risk profile fetch.
type Open struct{}

// SetAnswers applies one or more questionnaire answers. Nil fields are left
// untouched, so a client can submit a single answer per request.
type SetAnswers struct {
	RiskTolerance        *questionnaire.RiskToleranceLabel
	InvestmentTimeline   *questionnaire.TimelineLabel
	AgeBracket           *questionnaire.AgeBracketLabel
	AnnualIncomeBracket  *questionnaire.IncomeBracketLabel
	InvestmentExperience *questionnaire.ExperienceLabel
	RiskCapacity         *questionnaire.CapacityLabel
}

// ToggleGoal flips one financial goal selection on or off.
type ToggleGoal struct {
	Goal questionnaire.GoalLabel
}

// Submit validates and normalizes the answers, then requests profile storage
// and portfolio generation.
type Submit struct{}

// Regenerate requests a fresh generation with the already-normalized profile.
type Regenerate struct{}

// Purchase requests persisting the displayed portfolio and buying it.
type Purchase struct{}

// Close ends the session. Rejected while a generation or purchase is in flight.
type Close struct{}

// ProfileLoaded resolves the Open fetch. Profile is nil when none exists or
// the fetch failed; Err distinguishes the two.
type ProfileLoaded struct {
	Profile *model.RiskProfile
	Err     error
}

// GenerationDone resolves a Submit or Regenerate generation request.
type GenerationDone struct {
	Portfolio *model.GeneratedPortfolio
	Err       error
}

// PurchaseDone resolves a Purchase request.
type PurchaseDone struct {
	Result *model.PurchaseResult
	Err    error
}

func (Open) isEvent()           {}
func (SetAnswers) isEvent()     {}
func (ToggleGoal) isEvent()     {}
func (Submit) isEvent()         {}
func (Regenerate) isEvent()     {}
func (Purchase) isEvent()       {}
func (Close) isEvent()          {}
func (ProfileLoaded) isEvent()  {}
func (GenerationDone) isEvent() {}
func (PurchaseDone) isEvent()   {}

// Effect is the tagged union of platform work a transition requests. The
// machine never performs I/O itself; the caller executes the effect and
// dispatches the matching completion event.
type Effect interface {
	isEffect()
}

// LoadProfile asks for the stored risk profile. Resolved by ProfileLoaded.
type LoadProfile struct{}

// GeneratePortfolio asks for portfolio generation. When StoreFirst is set the
// normalized profile must be persisted before generating: create when the
// session loaded no profile, update otherwise. Resolved by GenerationDone.
type GeneratePortfolio struct {
	Profile    model.RiskProfile
	StoreFirst bool
	HadProfile bool
}

// ExecutePurchase asks for the displayed portfolio to be persisted
// (create, falling back to update on conflict) and purchased.
// Resolved by PurchaseDone.
type ExecutePurchase struct {
	Positions []model.Position
}

func (LoadProfile) isEffect()       {}
func (GeneratePortfolio) isEffect() {}
func (ExecutePurchase) isEffect()   {}
