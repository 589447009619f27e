package domain

import "time"

// Unlockable feature identifiers
const (
	FeatureCustomGradient  = "custom_gradient"
	FeatureVoiceReflection = "voice_reflection"
)

// UserProgressState is a user's gamification state. It is owned by the
// persistence layer; core logic only computes transitions over it and
// never mutates it in place.
type UserProgressState struct {
	UserID           string     `json:"user_id"`
	StreakDays       int        `json:"streak_days"`
	MoodCoins        int        `json:"moodcoins"`
	LastActivityDate *time.Time `json:"last_mood_date,omitempty"`
	UnlockedFeatures []string   `json:"unlocked_features"`
}

// HasUnlocked reports whether the feature has already been granted
func (s *UserProgressState) HasUnlocked(feature string) bool {
	for _, f := range s.UnlockedFeatures {
		if f == feature {
			return true
		}
	}
	return false
}

// SubmissionOutcome aggregates everything the workflow computed for one
// submission. All state mutation is expressed here as new values; nothing
// is persisted by the workflow itself.
type SubmissionOutcome struct {
	Success        bool              `json:"success"`
	Reflection     *ReflectionResult `json:"reflection,omitempty"`
	Safety         *SafetyAssessment `json:"safety_check,omitempty"`
	CoinsAwarded   int               `json:"coins_awarded"`
	StreakUpdated  bool              `json:"streak_updated"`
	NewStreak      int               `json:"new_streak"`
	NewCoinTotal   int               `json:"new_coin_total"`
	UnlocksGranted []string          `json:"unlocks"`
	Errors         []string          `json:"errors"`
}
