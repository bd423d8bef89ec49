package questionnaire

// Membership checks over the declared label sets. Used by the workflow to
// reject unknown labels at answer time rather than letting them linger until
// normalization.

// ValidRiskTolerance reports whether the label is in the declared set.
func ValidRiskTolerance(l RiskToleranceLabel) bool {
	_, ok := riskToleranceTokens[l]
	return ok
}

// ValidTimeline reports whether the label is in the declared set.
func ValidTimeline(l TimelineLabel) bool {
	_, ok := timelineTokens[l]
	return ok
}

// ValidGoal reports whether the label is in the declared set.
func ValidGoal(l GoalLabel) bool {
	_, ok := goalTokens[l]
	return ok
}

// ValidExperience reports whether the label is in the declared set.
func ValidExperience(l ExperienceLabel) bool {
	_, ok := experienceTokens[l]
	return ok
}

// ValidAgeBracket reports whether the label is in the declared set.
func ValidAgeBracket(l AgeBracketLabel) bool {
	return ageBracketSet[l]
}

// ValidIncomeBracket reports whether the label is in the declared set.
func ValidIncomeBracket(l IncomeBracketLabel) bool {
	return incomeBracketSet[l]
}

// ValidCapacity reports whether the label is in the declared set.
func ValidCapacity(l CapacityLabel) bool {
	return capacitySet[l]
}
