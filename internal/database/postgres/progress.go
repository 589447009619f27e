// Package postgres implements the persistence interfaces over pgx.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moodi-labs/moodi-backend/internal/database"
	"github.com/moodi-labs/moodi-backend/internal/domain"
	"github.com/moodi-labs/moodi-backend/internal/logger"
	"github.com/moodi-labs/moodi-backend/internal/repository"
)

// ProgressRepository implements repository.Progress for PostgreSQL
type ProgressRepository struct {
	db *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository
func NewProgressRepository(db *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// GetProgress returns the user's progress state. Users without a row yet
// get a zeroed state rather than an error so first submissions and fresh
// progress lookups share one path.
func (r *ProgressRepository) GetProgress(ctx context.Context, userID string) (*domain.UserProgressState, error) {
	state, err := loadState(ctx, r.db, userID, false)
	if err != nil {
		return nil, err
	}
	return state, nil
}

// UpdateProgress runs fn against the user's row under SELECT FOR UPDATE.
// Concurrent submissions for the same user serialize here, so streak and
// coin math always sees the latest committed values.
func (r *ProgressRepository) UpdateProgress(ctx context.Context, userID string, fn func(state *domain.UserProgressState) (*repository.ProgressUpdate, error)) (*domain.UserProgressState, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToBeginTransaction, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}()

	// Ensure the row exists before locking it
	_, err = tx.Exec(ctx, `
		INSERT INTO user_progress (user_id, streak_days, mood_coins, last_activity_date)
		VALUES ($1, 0, 0, NULL)
		ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure progress row: %w", err)
	}

	state, err := loadState(ctx, tx, userID, true)
	if err != nil {
		return nil, err
	}

	update, err := fn(state)
	if err != nil {
		return nil, err
	}
	if update == nil {
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return state, nil
	}

	_, err = tx.Exec(ctx, `
		UPDATE user_progress
		SET streak_days = $2, mood_coins = $3, last_activity_date = $4, updated_at = now()
		WHERE user_id = $1`,
		userID, update.StreakDays, update.MoodCoins, update.LastActivityDate)
	if err != nil {
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}

	for _, feature := range update.NewUnlocks {
		_, err = tx.Exec(ctx, `
			INSERT INTO user_unlocks (user_id, feature)
			VALUES ($1, $2)
			ON CONFLICT (user_id, feature) DO NOTHING`, userID, feature)
		if err != nil {
			return nil, fmt.Errorf("failed to record unlock %s: %w", feature, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	state.StreakDays = update.StreakDays
	state.MoodCoins = update.MoodCoins
	state.LastActivityDate = update.LastActivityDate
	state.UnlockedFeatures = append(state.UnlockedFeatures, update.NewUnlocks...)
	return state, nil
}

// querier covers both pool and transaction query surfaces
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func loadState(ctx context.Context, q querier, userID string, forUpdate bool) (*domain.UserProgressState, error) {
	query := `
		SELECT streak_days, mood_coins, last_activity_date
		FROM user_progress
		WHERE user_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	state := &domain.UserProgressState{UserID: userID}
	var lastActivity *time.Time
	err := q.QueryRow(ctx, query, userID).Scan(&state.StreakDays, &state.MoodCoins, &lastActivity)
	if err != nil {
		if err == pgx.ErrNoRows {
			return state, nil
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	state.LastActivityDate = lastActivity

	unlocks, err := loadUnlocks(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	state.UnlockedFeatures = unlocks
	return state, nil
}

func loadUnlocks(ctx context.Context, q querier, userID string) ([]string, error) {
	rows, err := q.Query(ctx, `
		SELECT feature
		FROM user_unlocks
		WHERE user_id = $1
		ORDER BY granted_at, feature`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unlocks: %w", err)
	}
	defer rows.Close()

	var unlocks []string
	for rows.Next() {
		var feature string
		if err := rows.Scan(&feature); err != nil {
			return nil, fmt.Errorf("failed to scan unlock: %w", err)
		}
		unlocks = append(unlocks, feature)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read unlocks: %w", err)
	}
	return unlocks, nil
}
