package progress

import (
	"context"
	"sync"

	"github.com/moodi-labs/moodi-backend/internal/domain"
	"github.com/moodi-labs/moodi-backend/internal/repository"
)

// FakeRepository is a stateful in-memory implementation of
// repository.Progress for testing. It mirrors the transactional
// semantics of the real repository: updates are serialized and a nil
// update from fn leaves state untouched.
//
// It must remain in this package so handler tests can reuse it without
// an import cycle.
type FakeRepository struct {
	mu     sync.Mutex
	states map[string]*domain.UserProgressState
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{states: make(map[string]*domain.UserProgressState)}
}

// Seed installs a starting state for a user
func (f *FakeRepository) Seed(state domain.UserProgressState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[state.UserID] = &state
}

func (f *FakeRepository) GetProgress(ctx context.Context, userID string) (*domain.UserProgressState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot(userID), nil
}

func (f *FakeRepository) UpdateProgress(ctx context.Context, userID string, fn func(state *domain.UserProgressState) (*repository.ProgressUpdate, error)) (*domain.UserProgressState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	state := f.snapshot(userID)
	update, err := fn(state)
	if err != nil {
		return nil, err
	}
	if update == nil {
		return state, nil
	}

	state.StreakDays = update.StreakDays
	state.MoodCoins = update.MoodCoins
	state.LastActivityDate = update.LastActivityDate
	state.UnlockedFeatures = append(state.UnlockedFeatures, update.NewUnlocks...)
	f.states[userID] = state
	return f.snapshot(userID), nil
}

// snapshot returns a copy so callers never alias stored state
func (f *FakeRepository) snapshot(userID string) *domain.UserProgressState {
	stored, ok := f.states[userID]
	if !ok {
		return &domain.UserProgressState{UserID: userID}
	}
	copied := *stored
	copied.UnlockedFeatures = append([]string(nil), stored.UnlockedFeatures...)
	return &copied
}
