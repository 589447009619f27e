// Package progress coordinates the submission workflow with persisted
// user state.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/moodi-labs/moodi-backend/internal/concurrency"
	"github.com/moodi-labs/moodi-backend/internal/domain"
	"github.com/moodi-labs/moodi-backend/internal/logger"
	"github.com/moodi-labs/moodi-backend/internal/metrics"
	"github.com/moodi-labs/moodi-backend/internal/repository"
	"github.com/moodi-labs/moodi-backend/internal/reward"
	"github.com/moodi-labs/moodi-backend/internal/submission"
)

// ReferralAward reports the result of crediting a successful referral
type ReferralAward struct {
	CoinsAwarded   int      `json:"coins_awarded"`
	NewCoinTotal   int      `json:"new_coin_total"`
	UnlocksGranted []string `json:"unlocks"`
}

// Service exposes the user-facing progress operations
type Service interface {
	// SubmitMood runs the full submission workflow and persists the
	// resulting state under a row lock. A failed outcome is returned with
	// a nil error and leaves state untouched.
	SubmitMood(ctx context.Context, userID string, sub domain.MoodSubmission) (*domain.SubmissionOutcome, error)

	// GetProgress returns the user's current gamification state
	GetProgress(ctx context.Context, userID string) (*domain.UserProgressState, error)

	// AwardReferral credits the referral bonus and grants any unlocks the
	// new total satisfies.
	AwardReferral(ctx context.Context, userID string) (*ReferralAward, error)
}

type service struct {
	repo     repository.Progress
	workflow submission.Service
	locks    *concurrency.LockManager
	now      func() time.Time
}

func NewService(repo repository.Progress, workflow submission.Service) Service {
	return &service{
		repo:     repo,
		workflow: workflow,
		locks:    concurrency.NewLockManager(),
		now:      time.Now,
	}
}

func (s *service) SubmitMood(ctx context.Context, userID string, sub domain.MoodSubmission) (*domain.SubmissionOutcome, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	// Serialize per user before taking the row lock, so a double-tap does
	// not hold a second database transaction open behind the first
	mu := s.locks.GetLock(userID)
	mu.Lock()
	defer mu.Unlock()

	var outcome domain.SubmissionOutcome

	_, err := s.repo.UpdateProgress(ctx, userID, func(state *domain.UserProgressState) (*repository.ProgressUpdate, error) {
		outcome = s.workflow.Process(ctx, sub, *state)
		if !outcome.Success {
			// Commit nothing; the outcome carries the failure detail
			return nil, nil
		}
		if !outcome.StreakUpdated && outcome.CoinsAwarded == 0 && len(outcome.UnlocksGranted) == 0 {
			return nil, nil
		}

		lastActivity := state.LastActivityDate
		if outcome.StreakUpdated {
			t := s.now()
			lastActivity = &t
		}
		return &repository.ProgressUpdate{
			StreakDays:       outcome.NewStreak,
			MoodCoins:        outcome.NewCoinTotal,
			LastActivityDate: lastActivity,
			NewUnlocks:       outcome.UnlocksGranted,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist submission outcome: %w", err)
	}

	return &outcome, nil
}

func (s *service) GetProgress(ctx context.Context, userID string) (*domain.UserProgressState, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	return s.repo.GetProgress(ctx, userID)
}

func (s *service) AwardReferral(ctx context.Context, userID string) (*ReferralAward, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	mu := s.locks.GetLock(userID)
	mu.Lock()
	defer mu.Unlock()

	var award ReferralAward

	_, err := s.repo.UpdateProgress(ctx, userID, func(state *domain.UserProgressState) (*repository.ProgressUpdate, error) {
		result := reward.Referral(state.MoodCoins)

		award = ReferralAward{
			CoinsAwarded: result.CoinsAwarded,
			NewCoinTotal: result.NewCoinTotal,
		}
		for _, feature := range result.Unlocks {
			if !state.HasUnlocked(feature) {
				award.UnlocksGranted = append(award.UnlocksGranted, feature)
			}
		}

		return &repository.ProgressUpdate{
			StreakDays:       state.StreakDays,
			MoodCoins:        result.NewCoinTotal,
			LastActivityDate: state.LastActivityDate,
			NewUnlocks:       award.UnlocksGranted,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to credit referral: %w", err)
	}

	metrics.CoinsAwarded.WithLabelValues(metrics.SourceReferral).Add(float64(award.CoinsAwarded))
	for _, feature := range award.UnlocksGranted {
		metrics.UnlocksGranted.WithLabelValues(feature).Inc()
	}
	logger.FromContext(ctx).Info("Referral credited",
		slog.String("user_id", userID),
		slog.Int("new_coin_total", award.NewCoinTotal))

	return &award, nil
}
