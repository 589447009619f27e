package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResult() ReflectionResult {
	return ReflectionResult{
		ReflectionText:   "It sounds like today asked a lot of you.",
		ActionSuggestion: "Take three slow breaths before bed.",
		ShareCaption:     "Made it through today.",
		SoundtrackHint:   "ambient",
		Tags:             []string{"tired", "resilience", "rest"},
		SafetyFlag:       SafetyFlagOK,
	}
}

func TestValidate_Valid(t *testing.T) {
	r := validResult()
	assert.Empty(t, r.Validate())
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	r := validResult()
	r.ReflectionText = strings.Repeat("x", MaxReflectionTextLen+1)
	r.ActionSuggestion = strings.Repeat("y", MaxActionSuggestionLen+1)
	r.ShareCaption = strings.Repeat("z", MaxShareCaptionLen+1)
	r.Tags = []string{"one", "two"}
	r.SafetyFlag = "panic"

	violations := r.Validate()

	require.Len(t, violations, 5)
	assert.Contains(t, violations[0], "reflection_text too long")
	assert.Contains(t, violations[1], "action_suggestion too long")
	assert.Contains(t, violations[2], "share_caption too long")
	assert.Contains(t, violations[3], "tags must have 3-6 items, got 2")
	assert.Contains(t, violations[4], "safety_flag")
}

func TestValidate_TagBounds(t *testing.T) {
	tests := []struct {
		name  string
		tags  []string
		valid bool
	}{
		{"no tags", nil, false},
		{"two tags", []string{"a", "b"}, false},
		{"three tags", []string{"a", "b", "c"}, true},
		{"six tags", []string{"a", "b", "c", "d", "e", "f"}, true},
		{"seven tags", []string{"a", "b", "c", "d", "e", "f", "g"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResult()
			r.Tags = tt.tags
			assert.Equal(t, tt.valid, len(r.Validate()) == 0)
		})
	}
}

func TestValidate_ElevateFlagIsValid(t *testing.T) {
	r := validResult()
	r.SafetyFlag = SafetyFlagElevate
	assert.Empty(t, r.Validate())
}

func TestValidate_CountsCharactersNotBytes(t *testing.T) {
	// Arabic is 2 bytes per character in UTF-8; a 300-character reflection
	// is well under the 360-character limit and must pass
	r := validResult()
	r.ReflectionText = strings.Repeat("س", 300)
	assert.Empty(t, r.Validate())
}

func TestValidate_MultiByteTextOverCharacterLimit(t *testing.T) {
	r := validResult()
	r.ShareCaption = strings.Repeat("é", MaxShareCaptionLen+1)

	violations := r.Validate()

	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "share_caption too long")
}
