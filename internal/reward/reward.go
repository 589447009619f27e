// Package reward maps engagement events to MoodCoin awards and feature
// unlock grants.
package reward

import "github.com/moodi-labs/moodi-backend/internal/domain"

// Coin awards
const (
	// DailyPostCoins is the flat award for the first submission of a day
	DailyPostCoins = 5
	// StreakBonusCoins is the extra award on a streak milestone
	StreakBonusCoins = 5
	// StreakBonusInterval is the milestone spacing in consecutive days
	StreakBonusInterval = 3
	// ReferralCoins is the award for a successful referral
	ReferralCoins = 25
)

// Unlock thresholds (cumulative coin totals, never revoked once granted)
const (
	UnlockCustomGradientCost  = 50
	UnlockVoiceReflectionCost = 120
)

// Result holds the coins awarded for one event and the unlocks whose
// threshold the new total satisfies.
type Result struct {
	CoinsAwarded int
	NewCoinTotal int
	Unlocks      []string
}

// Compute calculates the coin award for a submission given its streak
// transition. Daily award applies on the first submission of a calendar day;
// the streak bonus applies exactly once when the streak grows onto a
// milestone (a positive multiple of StreakBonusInterval), never
// retroactively for days already rewarded.
func Compute(isNewDay bool, newStreak, oldStreak, oldCoinTotal int) Result {
	coins := 0
	if isNewDay {
		coins += DailyPostCoins
	}
	if newStreak > oldStreak && newStreak%StreakBonusInterval == 0 {
		coins += StreakBonusCoins
	}

	total := oldCoinTotal + coins
	return Result{
		CoinsAwarded: coins,
		NewCoinTotal: total,
		Unlocks:      UnlocksForTotal(total),
	}
}

// Referral calculates the coin award for a successful referral.
func Referral(oldCoinTotal int) Result {
	total := oldCoinTotal + ReferralCoins
	return Result{
		CoinsAwarded: ReferralCoins,
		NewCoinTotal: total,
		Unlocks:      UnlocksForTotal(total),
	}
}

// UnlocksForTotal returns every feature whose threshold the coin total
// satisfies. It reports all satisfied unlocks, not just newly crossed ones;
// callers diff against previously granted state.
func UnlocksForTotal(total int) []string {
	var unlocks []string
	if total >= UnlockCustomGradientCost {
		unlocks = append(unlocks, domain.FeatureCustomGradient)
	}
	if total >= UnlockVoiceReflectionCost {
		unlocks = append(unlocks, domain.FeatureVoiceReflection)
	}
	return unlocks
}
