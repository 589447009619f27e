// Package submission orchestrates the mood submission workflow: safety
// screening, reflection generation, output validation, then streak and
// reward computation.
package submission

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/moodi-labs/moodi-backend/internal/domain"
	"github.com/moodi-labs/moodi-backend/internal/logger"
	"github.com/moodi-labs/moodi-backend/internal/metrics"
	"github.com/moodi-labs/moodi-backend/internal/reward"
	"github.com/moodi-labs/moodi-backend/internal/streak"
)

// Generator produces the AI reflection for a submission
type Generator interface {
	GenerateReflection(ctx context.Context, sub domain.MoodSubmission) (*domain.ReflectionResult, error)
}

// Assessor runs safety screening over the submission's context text
type Assessor interface {
	Assess(ctx context.Context, contextText string) domain.SafetyAssessment
}

// Service runs the submission workflow against a snapshot of the user's
// progress state. It computes new values but persists nothing; callers
// apply the outcome transactionally.
type Service interface {
	Process(ctx context.Context, sub domain.MoodSubmission, state domain.UserProgressState) domain.SubmissionOutcome
}

type service struct {
	generator Generator
	assessor  Assessor
	now       func() time.Time
}

func NewService(generator Generator, assessor Assessor) Service {
	return &service{
		generator: generator,
		assessor:  assessor,
		now:       time.Now,
	}
}

// Process runs the stages in strict order and short-circuits on hard
// failure:
//  1. Safety screening. Never fails; an elevate verdict is recorded as
//     advisory and the workflow continues.
//  2. Reflection generation. Provider failure fails the submission.
//  3. Output validation. Any constraint violation fails the submission
//     and reports every violation. No rewards are computed.
//  4. Streak transition and reward computation over the state snapshot.
//
// A failed outcome carries the unchanged streak and coin values so the
// caller can respond without re-reading state.
func (s *service) Process(ctx context.Context, sub domain.MoodSubmission, state domain.UserProgressState) domain.SubmissionOutcome {
	log := logger.FromContext(ctx)

	outcome := domain.SubmissionOutcome{
		NewStreak:    state.StreakDays,
		NewCoinTotal: state.MoodCoins,
	}

	assessment := s.assessor.Assess(ctx, sub.ContextText)
	outcome.Safety = &assessment
	if assessment.Elevated() {
		outcome.Errors = append(outcome.Errors, domain.ErrMsgSafetyEscalation)
	}

	reflection, err := s.generator.GenerateReflection(ctx, sub)
	if err != nil {
		log.Error("Reflection generation failed",
			slog.String("user_id", state.UserID),
			slog.String("error", err.Error()))
		metrics.ReflectionFailures.WithLabelValues(metrics.ReasonProviderError).Inc()
		metrics.SubmissionsProcessed.WithLabelValues(metrics.ResultFailed).Inc()
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s: %v", domain.ErrMsgReflectionFailed, err))
		return outcome
	}

	if violations := reflection.Validate(); len(violations) > 0 {
		log.Error("Reflection failed output validation",
			slog.String("user_id", state.UserID),
			slog.Any("violations", violations))
		metrics.ReflectionFailures.WithLabelValues(metrics.ReasonInvalidOutput).Inc()
		metrics.SubmissionsProcessed.WithLabelValues(metrics.ResultFailed).Inc()
		for _, v := range violations {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s: %s", domain.ErrMsgInvalidReflection, v))
		}
		return outcome
	}
	outcome.Reflection = reflection

	// The model can elevate independently of input screening
	if reflection.SafetyFlag == domain.SafetyFlagElevate && !assessment.Elevated() {
		metrics.SafetyEscalations.Inc()
		outcome.Errors = append(outcome.Errors, domain.ErrMsgSafetyEscalation)
	}

	transition := streak.Compute(state.LastActivityDate, s.now(), state.StreakDays)
	award := reward.Compute(transition.IsNewDay, transition.NewStreak, state.StreakDays, state.MoodCoins)

	outcome.Success = true
	outcome.StreakUpdated = transition.Changed
	outcome.NewStreak = transition.NewStreak
	outcome.CoinsAwarded = award.CoinsAwarded
	outcome.NewCoinTotal = award.NewCoinTotal
	for _, feature := range award.Unlocks {
		if !state.HasUnlocked(feature) {
			outcome.UnlocksGranted = append(outcome.UnlocksGranted, feature)
			metrics.UnlocksGranted.WithLabelValues(feature).Inc()
		}
	}

	if transition.IsNewDay {
		metrics.CoinsAwarded.WithLabelValues(metrics.SourceDaily).Add(float64(reward.DailyPostCoins))
	}
	if award.CoinsAwarded > reward.DailyPostCoins {
		metrics.CoinsAwarded.WithLabelValues(metrics.SourceStreakBonus).Add(float64(reward.StreakBonusCoins))
	}
	if len(outcome.Errors) > 0 {
		metrics.SubmissionsProcessed.WithLabelValues(metrics.ResultEscalated).Inc()
	} else {
		metrics.SubmissionsProcessed.WithLabelValues(metrics.ResultSuccess).Inc()
	}

	log.Info("Mood submission processed",
		slog.String("user_id", state.UserID),
		slog.String("streak_transition", string(transition.Kind)),
		slog.Int("new_streak", outcome.NewStreak),
		slog.Int("coins_awarded", outcome.CoinsAwarded),
		slog.Int("new_coin_total", outcome.NewCoinTotal))

	return outcome
}
