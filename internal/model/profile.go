package model

// RiskProfile is the backend-facing, normalized form of the questionnaire.
// Every field holds a canonical platform token, never a display label.
// The JSON shape matches the investment-strategy service contract.
type RiskProfile struct {
	RiskTolerance        string   `json:"risk_tolerance"`
	InvestmentTimeline   string   `json:"investment_timeline"`
	FinancialGoals       []string `json:"financial_goals"`
	AgeBracket           string   `json:"age_bracket"`
	AnnualIncomeBracket  string   `json:"annual_income_bracket"`
	InvestmentExperience string   `json:"investment_experience"`
	RiskCapacity         string   `json:"risk_capacity"`
}
