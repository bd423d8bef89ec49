package testutil

import (
	"github.com/google/uuid"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/model"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/questionnaire"
)

// MakeID generates a unique ID for test data.
func MakeID() string {
	return uuid.NewString()
}

// CompleteAnswers returns a fully answered questionnaire.
func CompleteAnswers() questionnaire.Answers {
	return questionnaire.Answers{
		RiskTolerance:        questionnaire.ToleranceHold,
		InvestmentTimeline:   questionnaire.TimelineMedium,
		FinancialGoals:       []questionnaire.GoalLabel{questionnaire.GoalSteadyGrowth, questionnaire.GoalRetirement},
		AgeBracket:           questionnaire.Age26To35,
		AnnualIncomeBracket:  questionnaire.Income50To75K,
		InvestmentExperience: questionnaire.ExperienceIntermediate,
		RiskCapacity:         questionnaire.CapacityMedium,
	}
}

// SampleProfile returns the normalized form of CompleteAnswers.
func SampleProfile() model.RiskProfile {
	return model.RiskProfile{
		RiskTolerance:        "moderate",
		InvestmentTimeline:   "medium_term",
		FinancialGoals:       []string{"wealth_building", "retirement"},
		AgeBracket:           "26-35",
		AnnualIncomeBracket:  "50000-75000",
		InvestmentExperience: "intermediate",
		RiskCapacity:         "medium",
	}
}

// SamplePortfolio returns a small generated portfolio.
func SamplePortfolio() model.GeneratedPortfolio {
	return model.GeneratedPortfolio{
		Positions: []model.Position{
			{Symbol: "VTI", Weight: 0.6},
			{Symbol: "BND", Weight: 0.4},
		},
		Explanation: "Balanced mix of equities and bonds.",
	}
}

// SamplePurchaseResult returns a fully successful purchase outcome.
func SamplePurchaseResult() model.PurchaseResult {
	return model.PurchaseResult{
		TotalBuyingPower: "1000.00",
		OrderResults: []model.OrderResult{
			{Symbol: "VTI", Notional: "600.00", Success: true, OrderID: MakeID()},
			{Symbol: "BND", Notional: "400.00", Success: true, OrderID: MakeID()},
		},
		SuccessCount: 2,
	}
}
