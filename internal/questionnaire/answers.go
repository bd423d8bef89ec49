package questionnaire

import (
	"fmt"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/apperrors"
)

// Answers holds one session's questionnaire state as display labels.
// Zero values mean "not answered yet".
type Answers struct {
	RiskTolerance        RiskToleranceLabel `json:"risk_tolerance"`
	InvestmentTimeline   TimelineLabel      `json:"investment_timeline"`
	FinancialGoals       []GoalLabel        `json:"financial_goals"`
	AgeBracket           AgeBracketLabel    `json:"age_bracket"`
	AnnualIncomeBracket  IncomeBracketLabel `json:"annual_income_bracket"`
	InvestmentExperience ExperienceLabel    `json:"investment_experience"`
	RiskCapacity         CapacityLabel      `json:"risk_capacity"`
}

// Clone returns a deep copy of the answers.
func (a Answers) Clone() Answers {
	out := a
	out.FinancialGoals = append([]GoalLabel(nil), a.FinancialGoals...)
	return out
}

// ToggleGoal adds the goal if absent and removes it if present. Adding is
// silently ignored once MaxGoals are selected, matching the questionnaire UI.
// Unknown labels are rejected so the goals list can never hold an unmappable value.
func (a *Answers) ToggleGoal(goal GoalLabel) error {
	if _, ok := goalTokens[goal]; !ok {
		return fmt.Errorf("%w: financial_goals %q", apperrors.ErrUnknownLabel, string(goal))
	}
	for i, g := range a.FinancialGoals {
		if g == goal {
			a.FinancialGoals = append(a.FinancialGoals[:i], a.FinancialGoals[i+1:]...)
			return nil
		}
	}
	if len(a.FinancialGoals) >= MaxGoals {
		return nil
	}
	a.FinancialGoals = append(a.FinancialGoals, goal)
	return nil
}

// Complete checks the submit guard: every field answered and at least one
// financial goal selected. The returned error names the first missing field.
func (a Answers) Complete() error {
	missing := ""
	switch {
	case a.RiskTolerance == "":
		missing = "risk_tolerance"
	case a.InvestmentTimeline == "":
		missing = "investment_timeline"
	case len(a.FinancialGoals) == 0:
		missing = "financial_goals"
	case a.AgeBracket == "":
		missing = "age_bracket"
	case a.AnnualIncomeBracket == "":
		missing = "annual_income_bracket"
	case a.InvestmentExperience == "":
		missing = "investment_experience"
	case a.RiskCapacity == "":
		missing = "risk_capacity"
	}
	if missing != "" {
		return fmt.Errorf("%w: %s", apperrors.ErrIncompleteAnswers, missing)
	}
	return nil
}
