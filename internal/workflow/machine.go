// Package workflow implements the questionnaire-to-portfolio state machine.
// The machine is pure control flow: dispatching an event either transitions
// immediately or returns an Effect describing the platform call the caller
// must run. Completion events feed the call's outcome back in. The machine is
// not safe for concurrent use; the owning session serializes access.
package workflow

import (
	"errors"
	"fmt"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/apperrors"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/model"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/questionnaire"
)

// State identifies where a session is in the workflow.
type State string

// Workflow states. Generating and Purchasing are the two states with a
// platform call outstanding; sessions refuse Close while in them.
const (
	StateLoading     State = "loading"
	StateRiskProfile State = "risk_profile"
	StateGenerating  State = "generating"
	StatePortfolio   State = "portfolio"
	StatePurchasing  State = "purchasing"
	StateComplete    State = "complete"
)

// Snapshot is a read-only copy of session state for the view layer. Portfolio
// and Purchase are deep copies; mutating them never touches the session.
type Snapshot struct {
	State      State                     `json:"state"`
	Answers    questionnaire.Answers     `json:"answers"`
	HadProfile bool                      `json:"had_profile"`
	Portfolio  *model.GeneratedPortfolio `json:"portfolio,omitempty"`
	Purchase   *model.PurchaseResult     `json:"purchase,omitempty"`
	Error      string                    `json:"error,omitempty"`
	CanClose   bool                      `json:"can_close"`
}

// Machine holds one session's workflow state.
type Machine struct {
	state      State
	answers    questionnaire.Answers
	profile    model.RiskProfile
	hadProfile bool
	portfolio  *model.GeneratedPortfolio
	purchase   *model.PurchaseResult
	lastError  string

	// resumeState is where control returns if the outstanding generation
	// fails: RiskProfile when entered via Submit, Portfolio via Regenerate.
	resumeState State
}

// New creates a machine in Loading. Dispatch Open to request the stored
// profile fetch.
func New() *Machine {
	return &Machine{state: StateLoading}
}

// State returns the current workflow state.
func (m *Machine) State() State {
	return m.state
}

// Profile returns the normalized profile captured at the last successful
// Submit. Only meaningful once the machine has left RiskProfile.
func (m *Machine) Profile() model.RiskProfile {
	return m.profile
}

// Snapshot returns a defensive copy of everything the view layer may render.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		State:      m.state,
		Answers:    m.answers.Clone(),
		HadProfile: m.hadProfile,
		Portfolio:  m.portfolio.Clone(),
		Purchase:   m.purchase.Clone(),
		Error:      m.lastError,
		CanClose:   m.state != StateGenerating && m.state != StatePurchasing,
	}
}

// Dispatch applies one event. It returns a non-nil Effect when the transition
// requires a platform call; the caller executes it and dispatches the
// matching completion event. A returned error means the event was rejected
// and no state changed, except that completion events record their failure
// message for display before returning control to the prior interactive state.
func (m *Machine) Dispatch(ev Event) (Effect, error) {
	switch e := ev.(type) {
	case Open:
		return m.open()
	case ProfileLoaded:
		return nil, m.profileLoaded(e)
	case SetAnswers:
		return nil, m.setAnswers(e)
	case ToggleGoal:
		return nil, m.toggleGoal(e)
	case Submit:
		return m.submit()
	case GenerationDone:
		return nil, m.generationDone(e)
	case Regenerate:
		return m.regenerate()
	case Purchase:
		return m.purchaseEvent()
	case PurchaseDone:
		return nil, m.purchaseDone(e)
	case Close:
		return nil, m.closeEvent()
	default:
		return nil, fmt.Errorf("%w: unknown event %T", apperrors.ErrInvalidTransition, ev)
	}
}

func (m *Machine) invalid(event string) error {
	return fmt.Errorf("%w: %s in state %s", apperrors.ErrInvalidTransition, event, m.state)
}

func (m *Machine) open() (Effect, error) {
	if m.state != StateLoading {
		return nil, m.invalid("open")
	}
	return LoadProfile{}, nil
}

// profileLoaded lands every outcome of the opening fetch in RiskProfile:
// pre-populated when the profile exists and denormalizes cleanly, empty
// otherwise. Only a real fetch failure raises the error banner; a clean
// "no profile" is the normal first-use state.
func (m *Machine) profileLoaded(e ProfileLoaded) error {
	if m.state != StateLoading {
		return m.invalid("profile loaded")
	}
	m.state = StateRiskProfile

	if e.Err != nil {
		if !errors.Is(e.Err, apperrors.ErrProfileNotFound) {
			m.lastError = e.Err.Error()
		}
		return nil
	}
	if e.Profile == nil {
		return nil
	}

	answers, err := questionnaire.Denormalize(*e.Profile)
	if err != nil {
		// Stored profile holds tokens this build does not know. Fall back to
		// an empty questionnaire rather than guessing labels.
		m.lastError = err.Error()
		return nil
	}
	m.answers = answers
	m.hadProfile = true
	return nil
}

func (m *Machine) setAnswers(e SetAnswers) error {
	if m.state != StateRiskProfile {
		return m.invalid("set answers")
	}
	if e.RiskTolerance != nil {
		if !questionnaire.ValidRiskTolerance(*e.RiskTolerance) {
			return fmt.Errorf("%w: risk_tolerance %q", apperrors.ErrUnknownLabel, string(*e.RiskTolerance))
		}
		m.answers.RiskTolerance = *e.RiskTolerance
	}
	if e.InvestmentTimeline != nil {
		if !questionnaire.ValidTimeline(*e.InvestmentTimeline) {
			return fmt.Errorf("%w: investment_timeline %q", apperrors.ErrUnknownLabel, string(*e.InvestmentTimeline))
		}
		m.answers.InvestmentTimeline = *e.InvestmentTimeline
	}
	if e.AgeBracket != nil {
		if !questionnaire.ValidAgeBracket(*e.AgeBracket) {
			return fmt.Errorf("%w: age_bracket %q", apperrors.ErrUnknownLabel, string(*e.AgeBracket))
		}
		m.answers.AgeBracket = *e.AgeBracket
	}
	if e.AnnualIncomeBracket != nil {
		if !questionnaire.ValidIncomeBracket(*e.AnnualIncomeBracket) {
			return fmt.Errorf("%w: annual_income_bracket %q", apperrors.ErrUnknownLabel, string(*e.AnnualIncomeBracket))
		}
		m.answers.AnnualIncomeBracket = *e.AnnualIncomeBracket
	}
	if e.InvestmentExperience != nil {
		if !questionnaire.ValidExperience(*e.InvestmentExperience) {
			return fmt.Errorf("%w: investment_experience %q", apperrors.ErrUnknownLabel, string(*e.InvestmentExperience))
		}
		m.answers.InvestmentExperience = *e.InvestmentExperience
	}
	if e.RiskCapacity != nil {
		if !questionnaire.ValidCapacity(*e.RiskCapacity) {
			return fmt.Errorf("%w: risk_capacity %q", apperrors.ErrUnknownLabel, string(*e.RiskCapacity))
		}
		m.answers.RiskCapacity = *e.RiskCapacity
	}
	return nil
}

func (m *Machine) toggleGoal(e ToggleGoal) error {
	if m.state != StateRiskProfile {
		return m.invalid("toggle goal")
	}
	return m.answers.ToggleGoal(e.Goal)
}

// submit guards on completeness, normalizes, and requests store-then-generate.
// Validation failures reject the event outright; the questionnaire stays
// interactive and nothing reaches the network.
func (m *Machine) submit() (Effect, error) {
	if m.state != StateRiskProfile {
		return nil, m.invalid("submit")
	}
	if err := m.answers.Complete(); err != nil {
		return nil, err
	}
	profile, err := questionnaire.Normalize(m.answers)
	if err != nil {
		return nil, err
	}
	m.profile = profile
	m.resumeState = StateRiskProfile
	m.state = StateGenerating
	m.lastError = ""
	return GeneratePortfolio{Profile: profile, StoreFirst: true, HadProfile: m.hadProfile}, nil
}

func (m *Machine) generationDone(e GenerationDone) error {
	if m.state != StateGenerating {
		return m.invalid("generation done")
	}
	if e.Err != nil {
		// Return control to the prior interactive state. Answers are kept
		// either way; a failed regenerate keeps the last good portfolio.
		m.state = m.resumeState
		m.lastError = e.Err.Error()
		return nil
	}
	if m.resumeState == StateRiskProfile {
		// The profile store succeeded on the way here, so a later Submit in
		// this session must use the update path.
		m.hadProfile = true
	}
	m.portfolio = e.Portfolio.Clone()
	m.state = StatePortfolio
	m.lastError = ""
	return nil
}

// regenerate re-issues generation with the profile normalized at Submit.
// No re-validation: the answers already passed once this session.
func (m *Machine) regenerate() (Effect, error) {
	if m.state != StatePortfolio {
		return nil, m.invalid("regenerate")
	}
	m.resumeState = StatePortfolio
	m.state = StateGenerating
	m.lastError = ""
	return GeneratePortfolio{Profile: m.profile, StoreFirst: false}, nil
}

func (m *Machine) purchaseEvent() (Effect, error) {
	if m.state != StatePortfolio {
		return nil, m.invalid("purchase")
	}
	positions := make([]model.Position, len(m.portfolio.Positions))
	copy(positions, m.portfolio.Positions)
	m.state = StatePurchasing
	m.lastError = ""
	return ExecutePurchase{Positions: positions}, nil
}

func (m *Machine) purchaseDone(e PurchaseDone) error {
	if m.state != StatePurchasing {
		return m.invalid("purchase done")
	}
	if e.Err != nil {
		// The generated portfolio is not discarded on a failed purchase.
		m.state = StatePortfolio
		m.lastError = e.Err.Error()
		return nil
	}
	m.purchase = e.Result.Clone()
	m.state = StateComplete
	m.lastError = ""
	return nil
}

func (m *Machine) closeEvent() error {
	if m.state == StateGenerating || m.state == StatePurchasing {
		return fmt.Errorf("%w: cannot close while %s", apperrors.ErrSessionBusy, m.state)
	}
	return nil
}
