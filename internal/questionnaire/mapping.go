package questionnaire

import (
	"fmt"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/apperrors"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/model"
)

// Forward tables: display label to platform token. The token vocabulary is
// fixed by the investment-strategy service; these tables are total over the
// declared label sets and are never extended at runtime.
var (
	riskToleranceTokens = map[RiskToleranceLabel]string{
		ToleranceSellAll:  "conservative",
		ToleranceSellSome: "conservative",
		ToleranceHold:     "moderate",
		ToleranceBuyMore:  "aggressive",
	}

	timelineTokens = map[TimelineLabel]string{
		TimelineShort:  "short_term",
		TimelineMedium: "medium_term",
		TimelineLong:   "long_term",
	}

	goalTokens = map[GoalLabel]string{
		GoalWealthPreservation: "capital_preservation",
		GoalSteadyGrowth:       "wealth_building",
		GoalAggressiveGrowth:   "wealth_building",
		GoalIncomeGeneration:   "income_generation",
		GoalRetirement:         "retirement",
		GoalEducation:          "education",
		GoalHomePurchase:       "home_purchase",
	}

	experienceTokens = map[ExperienceLabel]string{
		ExperienceBeginner:     "beginner",
		ExperienceIntermediate: "intermediate",
		ExperienceAdvanced:     "advanced",
	}
)

// Reverse tables, built from the forward tables in declared display order.
// The forward goal and tolerance mappings are many-to-one, so the reverse
// direction is lossy: the first label in display order wins and is the
// canonical label for its token (conservative -> "Sell everything
// immediately", wealth_building -> "Steady Growth").
var (
	riskToleranceLabels = make(map[string]RiskToleranceLabel)
	timelineLabels      = make(map[string]TimelineLabel)
	goalLabels          = make(map[string]GoalLabel)
	experienceLabels    = make(map[string]ExperienceLabel)
	ageBracketSet       = make(map[AgeBracketLabel]bool)
	incomeBracketSet    = make(map[IncomeBracketLabel]bool)
	capacitySet         = make(map[CapacityLabel]bool)
)

func init() {
	for _, l := range riskToleranceOrder {
		if _, taken := riskToleranceLabels[riskToleranceTokens[l]]; !taken {
			riskToleranceLabels[riskToleranceTokens[l]] = l
		}
	}
	for _, l := range timelineOrder {
		if _, taken := timelineLabels[timelineTokens[l]]; !taken {
			timelineLabels[timelineTokens[l]] = l
		}
	}
	for _, l := range goalOrder {
		if _, taken := goalLabels[goalTokens[l]]; !taken {
			goalLabels[goalTokens[l]] = l
		}
	}
	for _, l := range experienceOrder {
		if _, taken := experienceLabels[experienceTokens[l]]; !taken {
			experienceLabels[experienceTokens[l]] = l
		}
	}
	for _, l := range ageBracketOrder {
		ageBracketSet[l] = true
	}
	for _, l := range incomeBracketOrder {
		incomeBracketSet[l] = true
	}
	for _, l := range capacityOrder {
		capacitySet[l] = true
	}
}

// Normalize maps answers to the platform's token vocabulary. An unmapped
// label on any field is an error naming that field, never a silent default.
// Goal tokens are deduplicated (set union) in first-seen order, so selecting
// both growth labels submits a single wealth_building token.
func Normalize(a Answers) (model.RiskProfile, error) {
	var p model.RiskProfile

	tolerance, ok := riskToleranceTokens[a.RiskTolerance]
	if !ok {
		return p, fmt.Errorf("%w: risk_tolerance %q", apperrors.ErrUnknownLabel, string(a.RiskTolerance))
	}
	timeline, ok := timelineTokens[a.InvestmentTimeline]
	if !ok {
		return p, fmt.Errorf("%w: investment_timeline %q", apperrors.ErrUnknownLabel, string(a.InvestmentTimeline))
	}

	goals := make([]string, 0, len(a.FinancialGoals))
	seen := make(map[string]bool, len(a.FinancialGoals))
	for _, g := range a.FinancialGoals {
		token, ok := goalTokens[g]
		if !ok {
			return p, fmt.Errorf("%w: financial_goals %q", apperrors.ErrUnknownLabel, string(g))
		}
		if seen[token] {
			continue
		}
		seen[token] = true
		goals = append(goals, token)
	}

	experience, ok := experienceTokens[a.InvestmentExperience]
	if !ok {
		return p, fmt.Errorf("%w: investment_experience %q", apperrors.ErrUnknownLabel, string(a.InvestmentExperience))
	}
	if !ageBracketSet[a.AgeBracket] {
		return p, fmt.Errorf("%w: age_bracket %q", apperrors.ErrUnknownLabel, string(a.AgeBracket))
	}
	if !incomeBracketSet[a.AnnualIncomeBracket] {
		return p, fmt.Errorf("%w: annual_income_bracket %q", apperrors.ErrUnknownLabel, string(a.AnnualIncomeBracket))
	}
	if !capacitySet[a.RiskCapacity] {
		return p, fmt.Errorf("%w: risk_capacity %q", apperrors.ErrUnknownLabel, string(a.RiskCapacity))
	}

	p = model.RiskProfile{
		RiskTolerance:        tolerance,
		InvestmentTimeline:   timeline,
		FinancialGoals:       goals,
		AgeBracket:           string(a.AgeBracket),
		AnnualIncomeBracket:  string(a.AnnualIncomeBracket),
		InvestmentExperience: experience,
		RiskCapacity:         string(a.RiskCapacity),
	}
	return p, nil
}

// Denormalize reconstructs questionnaire answers from a stored profile. It is
// the exact inverse of Normalize up to the documented many-to-one collapse:
// re-normalizing the result always reproduces the input profile. An unknown
// token on any field is an error naming that field.
func Denormalize(p model.RiskProfile) (Answers, error) {
	var a Answers

	tolerance, ok := riskToleranceLabels[p.RiskTolerance]
	if !ok {
		return a, fmt.Errorf("%w: risk_tolerance %q", apperrors.ErrUnknownToken, p.RiskTolerance)
	}
	timeline, ok := timelineLabels[p.InvestmentTimeline]
	if !ok {
		return a, fmt.Errorf("%w: investment_timeline %q", apperrors.ErrUnknownToken, p.InvestmentTimeline)
	}

	goals := make([]GoalLabel, 0, len(p.FinancialGoals))
	for _, token := range p.FinancialGoals {
		label, ok := goalLabels[token]
		if !ok {
			return a, fmt.Errorf("%w: financial_goals %q", apperrors.ErrUnknownToken, token)
		}
		goals = append(goals, label)
	}

	experience, ok := experienceLabels[p.InvestmentExperience]
	if !ok {
		return a, fmt.Errorf("%w: investment_experience %q", apperrors.ErrUnknownToken, p.InvestmentExperience)
	}
	age := AgeBracketLabel(p.AgeBracket)
	if !ageBracketSet[age] {
		return a, fmt.Errorf("%w: age_bracket %q", apperrors.ErrUnknownToken, p.AgeBracket)
	}
	income := IncomeBracketLabel(p.AnnualIncomeBracket)
	if !incomeBracketSet[income] {
		return a, fmt.Errorf("%w: annual_income_bracket %q", apperrors.ErrUnknownToken, p.AnnualIncomeBracket)
	}
	capacity := CapacityLabel(p.RiskCapacity)
	if !capacitySet[capacity] {
		return a, fmt.Errorf("%w: risk_capacity %q", apperrors.ErrUnknownToken, p.RiskCapacity)
	}

	a = Answers{
		RiskTolerance:        tolerance,
		InvestmentTimeline:   timeline,
		FinancialGoals:       goals,
		AgeBracket:           age,
		AnnualIncomeBracket:  income,
		InvestmentExperience: experience,
		RiskCapacity:         capacity,
	}
	return a, nil
}
