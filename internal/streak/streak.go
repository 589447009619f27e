// Package streak computes consecutive-day activity streaks with
// calendar-date granularity.
package streak

import "time"

// Kind describes what happened to a streak on a given activity
type Kind string

const (
	// KindFirst is the first-ever activity for a user
	KindFirst Kind = "first"
	// KindUnchanged means a second activity on an already-counted day
	KindUnchanged Kind = "unchanged"
	// KindIncrement means activity on the day after the last one
	KindIncrement Kind = "increment"
	// KindReset means the streak broke (gap of more than one day)
	KindReset Kind = "reset"
)

// Transition is the result of applying one activity to a streak
type Transition struct {
	Kind      Kind
	NewStreak int
	Changed   bool
	IsNewDay  bool
}

// Compute derives the streak transition for an activity happening today.
// Comparison is by calendar date, never by timestamp: two submissions at
// 00:01 and 23:59 of the same day are the same day.
//
// A last-activity date in the future (clock skew, backdated record) is
// treated as a broken streak and resets to 1.
func Compute(lastActivity *time.Time, today time.Time, currentStreak int) Transition {
	if lastActivity == nil {
		return Transition{Kind: KindFirst, NewStreak: 1, Changed: true, IsNewDay: true}
	}

	switch days := daysBetween(*lastActivity, today); {
	case days == 0:
		return Transition{Kind: KindUnchanged, NewStreak: currentStreak, Changed: false, IsNewDay: false}
	case days == 1:
		return Transition{Kind: KindIncrement, NewStreak: currentStreak + 1, Changed: true, IsNewDay: true}
	default:
		// Gap > 1 day, or a negative difference
		return Transition{Kind: KindReset, NewStreak: 1, Changed: true, IsNewDay: true}
	}
}

// daysBetween counts whole calendar days from a to b, ignoring time of day
// and location.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start) / (24 * time.Hour))
}
