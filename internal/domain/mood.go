package domain

// TimeBucket identifies the part of day a mood was logged in
type TimeBucket string

const (
	TimeBucketMorning   TimeBucket = "morning"
	TimeBucketAfternoon TimeBucket = "afternoon"
	TimeBucketEvening   TimeBucket = "evening"
	TimeBucketLateNight TimeBucket = "late-night"
)

// AgeBucket is the coarse age group of a user
type AgeBucket string

const (
	AgeBucketTeen       AgeBucket = "teen"
	AgeBucketYoungAdult AgeBucket = "young-adult"
	AgeBucketAdult      AgeBucket = "adult"
	AgeBucketSenior     AgeBucket = "senior"
)

// IsValidTimeBucket reports whether b is a recognized time bucket
func IsValidTimeBucket(b TimeBucket) bool {
	switch b {
	case TimeBucketMorning, TimeBucketAfternoon, TimeBucketEvening, TimeBucketLateNight:
		return true
	}
	return false
}

// IsValidAgeBucket reports whether b is a recognized age bucket
func IsValidAgeBucket(b AgeBucket) bool {
	switch b {
	case AgeBucketTeen, AgeBucketYoungAdult, AgeBucketAdult, AgeBucketSenior:
		return true
	}
	return false
}

// Intensity bounds for a mood submission
const (
	IntensityMin = 0
	IntensityMax = 10
)

// MoodSubmission is a single mood entry as submitted by the client.
// It is transient: created per request and discarded after processing.
type MoodSubmission struct {
	Emoji       string     `json:"mood_emoji"`
	ColorHex    string     `json:"mood_color"`
	Intensity   int        `json:"intensity_0_10"`
	ContextText string     `json:"context_text,omitempty"`
	HasMedia    bool       `json:"media_present"`
	TimeBucket  TimeBucket `json:"time_bucket"`
	GeoHint     string     `json:"geo_hint,omitempty"`
	Locale      Locale     `json:"user_locale"`
	AgeBucket   AgeBucket  `json:"user_age_bucket"`
}
