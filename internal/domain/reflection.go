package domain

import (
	"fmt"
	"unicode/utf8"
)

// SafetyFlag is the outcome of safety screening for a submission
type SafetyFlag string

const (
	SafetyFlagOK      SafetyFlag = "ok"
	SafetyFlagElevate SafetyFlag = "elevate"
)

// IsValidSafetyFlag reports whether f is a recognized safety flag
func IsValidSafetyFlag(f SafetyFlag) bool {
	return f == SafetyFlagOK || f == SafetyFlagElevate
}

// Reflection field constraints, matching the generation response schema
const (
	MaxReflectionTextLen   = 360
	MaxActionSuggestionLen = 120
	MaxShareCaptionLen     = 90
	MinTags                = 3
	MaxTags                = 6
)

// ReflectionResult is the AI-generated reflection for one mood submission.
// Tags are ordered for display and may contain duplicates.
type ReflectionResult struct {
	ReflectionText   string     `json:"reflection_text"`
	ActionSuggestion string     `json:"action_suggestion"`
	ShareCaption     string     `json:"share_caption"`
	SoundtrackHint   string     `json:"soundtrack_hint"`
	Tags             []string   `json:"tags"`
	SafetyFlag       SafetyFlag `json:"safety_flag"`
}

// Validate checks the field-length and cardinality constraints and returns
// every violation, not just the first. Lengths are counted in characters,
// not bytes; Arabic and accented text must not shrink the budget.
func (r *ReflectionResult) Validate() []string {
	var violations []string

	if n := utf8.RuneCountInString(r.ReflectionText); n > MaxReflectionTextLen {
		violations = append(violations, fmt.Sprintf("reflection_text too long: %d chars (max %d)", n, MaxReflectionTextLen))
	}
	if n := utf8.RuneCountInString(r.ActionSuggestion); n > MaxActionSuggestionLen {
		violations = append(violations, fmt.Sprintf("action_suggestion too long: %d chars (max %d)", n, MaxActionSuggestionLen))
	}
	if n := utf8.RuneCountInString(r.ShareCaption); n > MaxShareCaptionLen {
		violations = append(violations, fmt.Sprintf("share_caption too long: %d chars (max %d)", n, MaxShareCaptionLen))
	}
	if n := len(r.Tags); n < MinTags || n > MaxTags {
		violations = append(violations, fmt.Sprintf("tags must have %d-%d items, got %d", MinTags, MaxTags, n))
	}
	if !IsValidSafetyFlag(r.SafetyFlag) {
		violations = append(violations, fmt.Sprintf("safety_flag must be %q or %q, got %q", SafetyFlagOK, SafetyFlagElevate, r.SafetyFlag))
	}

	return violations
}
