package request

// UpdateAnswersRequest carries a partial questionnaire update. Absent fields
// leave the stored answer untouched; toggle_goal flips one goal selection.
type UpdateAnswersRequest struct {
	RiskTolerance        *string `json:"risk_tolerance,omitempty"`
	InvestmentTimeline   *string `json:"investment_timeline,omitempty"`
	AgeBracket           *string `json:"age_bracket,omitempty"`
	AnnualIncomeBracket  *string `json:"annual_income_bracket,omitempty"`
	InvestmentExperience *string `json:"investment_experience,omitempty"`
	RiskCapacity         *string `json:"risk_capacity,omitempty"`
	ToggleGoal           *string `json:"toggle_goal,omitempty"`
}

// LoginRequest represents the request body for platform login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
