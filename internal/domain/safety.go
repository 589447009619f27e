package domain

// ModerationResult is the verdict from the content moderation collaborator
type ModerationResult struct {
	Flagged    bool            `json:"flagged"`
	Categories map[string]bool `json:"categories"`
}

// SafetyAssessment is the combined outcome of the safety escalation sequence.
// Moderation is nil when the pre-check was skipped (no context text).
// RiskClassification is set only when the secondary classifier actually ran.
type SafetyAssessment struct {
	Flag               SafetyFlag        `json:"flag"`
	Moderation         *ModerationResult `json:"moderation,omitempty"`
	RiskClassification *SafetyFlag       `json:"risk_classification,omitempty"`
}

// Elevated reports whether the assessment requires escalation
func (a *SafetyAssessment) Elevated() bool {
	return a != nil && a.Flag == SafetyFlagElevate
}
