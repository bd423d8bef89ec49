// Package questionnaire holds the Pandora questionnaire model: the display
// label vocabulary shown to users and the bidirectional mapping between those
// labels and the platform's canonical profile tokens.
package questionnaire

// RiskToleranceLabel is the display label for the portfolio-drop reaction question.
type RiskToleranceLabel string

// TimelineLabel is the display label for the investment time horizon question.
type TimelineLabel string

// GoalLabel is the display label for a financial goal choice.
type GoalLabel string

// ExperienceLabel is the display label for investment experience.
type ExperienceLabel string

// AgeBracketLabel is the display label for an age bracket. Brackets map to
// platform tokens verbatim.
type AgeBracketLabel string

// IncomeBracketLabel is the display label for an annual income bracket.
// Brackets map to platform tokens verbatim.
type IncomeBracketLabel string

// CapacityLabel is the display label for risk capacity. Capacity levels map
// to platform tokens verbatim.
type CapacityLabel string

// Risk tolerance labels, in declared display order. Order matters: when a
// platform token maps back to more than one label, denormalization picks the
// first label in this order.
const (
	ToleranceSellAll  RiskToleranceLabel = "Sell everything immediately"
	ToleranceSellSome RiskToleranceLabel = "Sell some positions"
	ToleranceHold     RiskToleranceLabel = "Hold my positions"
	ToleranceBuyMore  RiskToleranceLabel = "Buy more"
)

// Investment timeline labels, in declared display order.
const (
	TimelineShort  TimelineLabel = "Short-term (< 2 years)"
	TimelineMedium TimelineLabel = "Medium-term (2-10 years)"
	TimelineLong   TimelineLabel = "Long-term (10+ years)"
)

// Financial goal labels, in declared display order. "Steady Growth" and
// "Aggressive Growth" both normalize to wealth_building; "Steady Growth" is
// the canonical label recovered when denormalizing that token.
const (
	GoalWealthPreservation GoalLabel = "Wealth Preservation"
	GoalSteadyGrowth       GoalLabel = "Steady Growth"
	GoalAggressiveGrowth   GoalLabel = "Aggressive Growth"
	GoalIncomeGeneration   GoalLabel = "Income Generation"
	GoalRetirement         GoalLabel = "Retirement"
	GoalEducation          GoalLabel = "Education"
	GoalHomePurchase       GoalLabel = "Home Purchase"
)

// Investment experience labels, in declared display order.
const (
	ExperienceBeginner     ExperienceLabel = "Beginner"
	ExperienceIntermediate ExperienceLabel = "Intermediate"
	ExperienceAdvanced     ExperienceLabel = "Advanced"
)

// Age bracket labels, in declared display order.
const (
	Age18To25 AgeBracketLabel = "18-25"
	Age26To35 AgeBracketLabel = "26-35"
	Age36To45 AgeBracketLabel = "36-45"
	Age46To55 AgeBracketLabel = "46-55"
	Age56To65 AgeBracketLabel = "56-65"
	AgeOver65 AgeBracketLabel = "65+"
)

// Annual income bracket labels, in declared display order.
const (
	IncomeUnder25K  IncomeBracketLabel = "0-25000"
	Income25To50K   IncomeBracketLabel = "25000-50000"
	Income50To75K   IncomeBracketLabel = "50000-75000"
	Income75To100K  IncomeBracketLabel = "75000-100000"
	Income100To150K IncomeBracketLabel = "100000-150000"
	IncomeOver150K  IncomeBracketLabel = "150000+"
)

// Risk capacity labels, in declared display order.
const (
	CapacityLow    CapacityLabel = "low"
	CapacityMedium CapacityLabel = "medium"
	CapacityHigh   CapacityLabel = "high"
)

// MaxGoals caps the financial goals selection. Attempts to toggle a fourth
// goal on are silently ignored.
const MaxGoals = 3

// riskToleranceOrder and friends fix iteration order for table construction
// and exhaustiveness checks. Each slice must list every declared constant of
// its label type.
var (
	riskToleranceOrder = []RiskToleranceLabel{ToleranceSellAll, ToleranceSellSome, ToleranceHold, ToleranceBuyMore}
	timelineOrder      = []TimelineLabel{TimelineShort, TimelineMedium, TimelineLong}
	goalOrder          = []GoalLabel{GoalWealthPreservation, GoalSteadyGrowth, GoalAggressiveGrowth, GoalIncomeGeneration, GoalRetirement, GoalEducation, GoalHomePurchase}
	experienceOrder    = []ExperienceLabel{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced}
	ageBracketOrder    = []AgeBracketLabel{Age18To25, Age26To35, Age36To45, Age46To55, Age56To65, AgeOver65}
	incomeBracketOrder = []IncomeBracketLabel{IncomeUnder25K, Income25To50K, Income50To75K, Income75To100K, Income100To150K, IncomeOver150K}
	capacityOrder      = []CapacityLabel{CapacityLow, CapacityMedium, CapacityHigh}
)

// RiskToleranceLabels returns the selectable labels in display order.
func RiskToleranceLabels() []RiskToleranceLabel {
	return append([]RiskToleranceLabel(nil), riskToleranceOrder...)
}

// TimelineLabels returns the selectable labels in display order.
func TimelineLabels() []TimelineLabel {
	return append([]TimelineLabel(nil), timelineOrder...)
}

// GoalLabels returns the selectable labels in display order.
func GoalLabels() []GoalLabel {
	return append([]GoalLabel(nil), goalOrder...)
}

// ExperienceLabels returns the selectable labels in display order.
func ExperienceLabels() []ExperienceLabel {
	return append([]ExperienceLabel(nil), experienceOrder...)
}

// AgeBracketLabels returns the selectable labels in display order.
func AgeBracketLabels() []AgeBracketLabel {
	return append([]AgeBracketLabel(nil), ageBracketOrder...)
}

// IncomeBracketLabels returns the selectable labels in display order.
func IncomeBracketLabels() []IncomeBracketLabel {
	return append([]IncomeBracketLabel(nil), incomeBracketOrder...)
}

// CapacityLabels returns the selectable labels in display order.
func CapacityLabels() []CapacityLabel {
	return append([]CapacityLabel(nil), capacityOrder...)
}
