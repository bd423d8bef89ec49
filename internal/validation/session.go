package validation

import (
	"strings"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/request"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/questionnaire"
)

// ValidateUpdateAnswers checks every supplied answer against the
// questionnaire's known options.
func ValidateUpdateAnswers(req request.UpdateAnswersRequest) error {
	errors := make(map[string]string)

	if req.RiskTolerance != nil && !questionnaire.ValidRiskTolerance(questionnaire.RiskToleranceLabel(*req.RiskTolerance)) {
		errors["risk_tolerance"] = "unknown risk tolerance option"
	}
	if req.InvestmentTimeline != nil && !questionnaire.ValidTimeline(questionnaire.TimelineLabel(*req.InvestmentTimeline)) {
		errors["investment_timeline"] = "unknown investment timeline option"
	}
	if req.AgeBracket != nil && !questionnaire.ValidAgeBracket(questionnaire.AgeBracketLabel(*req.AgeBracket)) {
		errors["age_bracket"] = "unknown age bracket option"
	}
	if req.AnnualIncomeBracket != nil && !questionnaire.ValidIncomeBracket(questionnaire.IncomeBracketLabel(*req.AnnualIncomeBracket)) {
		errors["annual_income_bracket"] = "unknown income bracket option"
	}
	if req.InvestmentExperience != nil && !questionnaire.ValidExperience(questionnaire.ExperienceLabel(*req.InvestmentExperience)) {
		errors["investment_experience"] = "unknown investment experience option"
	}
	if req.RiskCapacity != nil && !questionnaire.ValidCapacity(questionnaire.CapacityLabel(*req.RiskCapacity)) {
		errors["risk_capacity"] = "unknown risk capacity option"
	}
	if req.ToggleGoal != nil && !questionnaire.ValidGoal(questionnaire.GoalLabel(*req.ToggleGoal)) {
		errors["toggle_goal"] = "unknown financial goal option"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateLogin checks the login request for required fields.
func ValidateLogin(req request.LoginRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	}
	if req.Password == "" {
		errors["password"] = "password is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
