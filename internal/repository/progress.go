// Package repository defines the persistence interfaces the services
// depend on.
package repository

import (
	"context"
	"time"

	"github.com/moodi-labs/moodi-backend/internal/domain"
)

// ProgressUpdate is the new progress values to persist for a user.
// NewUnlocks lists only features granted by this update; already-held
// unlocks are never restated or revoked.
type ProgressUpdate struct {
	StreakDays       int
	MoodCoins        int
	LastActivityDate *time.Time
	NewUnlocks       []string
}

// Progress defines the interface for user progress persistence
type Progress interface {
	// GetProgress returns the user's progress state, or a zeroed state
	// for a user with no activity yet.
	GetProgress(ctx context.Context, userID string) (*domain.UserProgressState, error)

	// UpdateProgress loads the user's state under a row lock, applies fn,
	// and persists the update fn returns. A nil update commits without
	// writing. An error from fn rolls the transaction back and is
	// returned unchanged. The returned state reflects the committed
	// values.
	UpdateProgress(ctx context.Context, userID string, fn func(state *domain.UserProgressState) (*ProgressUpdate, error)) (*domain.UserProgressState, error)
}
