package submission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodi-labs/moodi-backend/internal/domain"
	"github.com/moodi-labs/moodi-backend/internal/reward"
)

type fakeGenerator struct {
	reflection *domain.ReflectionResult
	err        error
	calls      int
}

func (f *fakeGenerator) GenerateReflection(ctx context.Context, sub domain.MoodSubmission) (*domain.ReflectionResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.reflection, nil
}

type fakeAssessor struct {
	assessment domain.SafetyAssessment
}

func (f *fakeAssessor) Assess(ctx context.Context, contextText string) domain.SafetyAssessment {
	return f.assessment
}

func validReflection() *domain.ReflectionResult {
	return &domain.ReflectionResult{
		ReflectionText:   "A walk by the sea sounds like a gentle way to close the day.",
		ActionSuggestion: "Write down one thing you noticed on your walk.",
		ShareCaption:     "Small pause, big calm.",
		SoundtrackHint:   "acoustic chill",
		Tags:             []string{"calm", "evening", "gratitude"},
		SafetyFlag:       domain.SafetyFlagOK,
	}
}

func okAssessor() *fakeAssessor {
	return &fakeAssessor{assessment: domain.SafetyAssessment{Flag: domain.SafetyFlagOK}}
}

// newTestService pins the clock so streak math is deterministic
func newTestService(gen Generator, assessor Assessor, now time.Time) Service {
	return &service{generator: gen, assessor: assessor, now: func() time.Time { return now }}
}

func daysAgo(now time.Time, days int) *time.Time {
	t := now.AddDate(0, 0, -days)
	return &t
}

func TestProcess_FirstSubmission(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeGenerator{reflection: validReflection()}, okAssessor(), now)

	state := domain.UserProgressState{UserID: "user-1"}
	outcome := svc.Process(context.Background(), domain.MoodSubmission{ContextText: "long day"}, state)

	require.True(t, outcome.Success)
	assert.Empty(t, outcome.Errors)
	assert.NotNil(t, outcome.Reflection)
	assert.True(t, outcome.StreakUpdated)
	assert.Equal(t, 1, outcome.NewStreak)
	assert.Equal(t, reward.DailyPostCoins, outcome.CoinsAwarded)
	assert.Equal(t, reward.DailyPostCoins, outcome.NewCoinTotal)
	assert.Empty(t, outcome.UnlocksGranted)
}

func TestProcess_SameDayNoReward(t *testing.T) {
	now := time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeGenerator{reflection: validReflection()}, okAssessor(), now)

	state := domain.UserProgressState{
		UserID:           "user-1",
		StreakDays:       4,
		MoodCoins:        40,
		LastActivityDate: daysAgo(now, 0),
	}
	outcome := svc.Process(context.Background(), domain.MoodSubmission{}, state)

	require.True(t, outcome.Success)
	assert.NotNil(t, outcome.Reflection)
	assert.False(t, outcome.StreakUpdated)
	assert.Equal(t, 4, outcome.NewStreak)
	assert.Equal(t, 0, outcome.CoinsAwarded)
	assert.Equal(t, 40, outcome.NewCoinTotal)
}

func TestProcess_StreakMilestoneBonus(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeGenerator{reflection: validReflection()}, okAssessor(), now)

	// Streak 2 -> 3 hits the milestone
	state := domain.UserProgressState{
		UserID:           "user-1",
		StreakDays:       2,
		MoodCoins:        10,
		LastActivityDate: daysAgo(now, 1),
	}
	outcome := svc.Process(context.Background(), domain.MoodSubmission{}, state)

	require.True(t, outcome.Success)
	assert.Equal(t, 3, outcome.NewStreak)
	assert.Equal(t, reward.DailyPostCoins+reward.StreakBonusCoins, outcome.CoinsAwarded)
	assert.Equal(t, 20, outcome.NewCoinTotal)
}

func TestProcess_UnlockGrantedOnThreshold(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeGenerator{reflection: validReflection()}, okAssessor(), now)

	state := domain.UserProgressState{
		UserID:           "user-1",
		StreakDays:       1,
		MoodCoins:        reward.UnlockCustomGradientCost - reward.DailyPostCoins,
		LastActivityDate: daysAgo(now, 1),
	}
	outcome := svc.Process(context.Background(), domain.MoodSubmission{}, state)

	require.True(t, outcome.Success)
	assert.Equal(t, reward.UnlockCustomGradientCost, outcome.NewCoinTotal)
	assert.Equal(t, []string{domain.FeatureCustomGradient}, outcome.UnlocksGranted)
}

func TestProcess_UnlockNotRegranted(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeGenerator{reflection: validReflection()}, okAssessor(), now)

	state := domain.UserProgressState{
		UserID:           "user-1",
		StreakDays:       1,
		MoodCoins:        60,
		LastActivityDate: daysAgo(now, 1),
		UnlockedFeatures: []string{domain.FeatureCustomGradient},
	}
	outcome := svc.Process(context.Background(), domain.MoodSubmission{}, state)

	require.True(t, outcome.Success)
	assert.Empty(t, outcome.UnlocksGranted)
}

func TestProcess_GenerationFailureShortCircuits(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	gen := &fakeGenerator{err: errors.New("provider unavailable")}
	svc := newTestService(gen, okAssessor(), now)

	state := domain.UserProgressState{
		UserID:           "user-1",
		StreakDays:       5,
		MoodCoins:        30,
		LastActivityDate: daysAgo(now, 1),
	}
	outcome := svc.Process(context.Background(), domain.MoodSubmission{}, state)

	assert.False(t, outcome.Success)
	assert.Nil(t, outcome.Reflection)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], domain.ErrMsgReflectionFailed)
	// No mutation: streak and coins hold the snapshot values
	assert.False(t, outcome.StreakUpdated)
	assert.Equal(t, 5, outcome.NewStreak)
	assert.Equal(t, 0, outcome.CoinsAwarded)
	assert.Equal(t, 30, outcome.NewCoinTotal)
}

func TestProcess_ValidationFailureReportsAllViolations(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	bad := validReflection()
	bad.ReflectionText = string(make([]byte, domain.MaxReflectionTextLen+40))
	bad.Tags = []string{"only-one"}
	svc := newTestService(&fakeGenerator{reflection: bad}, okAssessor(), now)

	state := domain.UserProgressState{
		UserID:           "user-1",
		StreakDays:       5,
		MoodCoins:        30,
		LastActivityDate: daysAgo(now, 1),
	}
	outcome := svc.Process(context.Background(), domain.MoodSubmission{}, state)

	assert.False(t, outcome.Success)
	assert.Nil(t, outcome.Reflection)
	require.Len(t, outcome.Errors, 2)
	assert.Contains(t, outcome.Errors[0], "reflection_text too long")
	assert.Contains(t, outcome.Errors[1], "tags must have")
	assert.Equal(t, 0, outcome.CoinsAwarded)
	assert.Equal(t, 30, outcome.NewCoinTotal)
}

func TestProcess_EscalationIsAdvisory(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	elevated := &fakeAssessor{assessment: domain.SafetyAssessment{
		Flag:       domain.SafetyFlagElevate,
		Moderation: &domain.ModerationResult{Flagged: true, Categories: map[string]bool{"self-harm": true}},
	}}
	svc := newTestService(&fakeGenerator{reflection: validReflection()}, elevated, now)

	state := domain.UserProgressState{
		UserID:           "user-1",
		StreakDays:       2,
		MoodCoins:        10,
		LastActivityDate: daysAgo(now, 1),
	}
	outcome := svc.Process(context.Background(), domain.MoodSubmission{ContextText: "struggling"}, state)

	// Escalation surfaces but the workflow still completes with rewards
	require.True(t, outcome.Success)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], domain.ErrMsgSafetyEscalation)
	assert.NotNil(t, outcome.Reflection)
	assert.Equal(t, 3, outcome.NewStreak)
	assert.Equal(t, reward.DailyPostCoins+reward.StreakBonusCoins, outcome.CoinsAwarded)
}

func TestProcess_ModelElevationRecordedOnce(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	refl := validReflection()
	refl.SafetyFlag = domain.SafetyFlagElevate
	svc := newTestService(&fakeGenerator{reflection: refl}, okAssessor(), now)

	state := domain.UserProgressState{UserID: "user-1"}
	outcome := svc.Process(context.Background(), domain.MoodSubmission{ContextText: "hard week"}, state)

	require.True(t, outcome.Success)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], domain.ErrMsgSafetyEscalation)
}

func TestProcess_StreakResetAfterGap(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeGenerator{reflection: validReflection()}, okAssessor(), now)

	state := domain.UserProgressState{
		UserID:           "user-1",
		StreakDays:       9,
		MoodCoins:        100,
		LastActivityDate: daysAgo(now, 3),
	}
	outcome := svc.Process(context.Background(), domain.MoodSubmission{}, state)

	require.True(t, outcome.Success)
	assert.Equal(t, 1, outcome.NewStreak)
	// Daily award only: streak 9 -> 1 is not growth onto a milestone
	assert.Equal(t, reward.DailyPostCoins, outcome.CoinsAwarded)
	assert.Equal(t, 105, outcome.NewCoinTotal)
}
