package notification

import (
	"context"
	"log/slog"

	"github.com/moodi-labs/moodi-backend/internal/domain"
	"github.com/moodi-labs/moodi-backend/internal/logger"
)

// Notification themes the copy generator knows how to write for.
const (
	ThemeGentleReminder = "gentle_reminder"
	ThemeStreakNudge    = "streak_nudge"
	ThemeEveningCheckin = "evening_checkin"
	ThemeMilestone      = "milestone"
)

// Static copy served when the provider is unavailable. Notifications are
// best-effort and must never fail the caller.
var fallbackCopy = domain.NotificationCopy{
	Title: "MOODI",
	Body:  "How are you feeling today?",
}

const fallbackCaption = "Check out MOODI!"

// CopyGenerator produces localized notification and caption text.
type CopyGenerator interface {
	GenerateNotification(ctx context.Context, locale domain.Locale, theme string, daysStreak int) (*domain.NotificationCopy, error)
	GenerateReferralCaption(ctx context.Context, locale domain.Locale, emoji, benefit string) (string, error)
}

// Service produces engagement copy, falling back to static strings when
// the generator fails.
type Service interface {
	NotificationCopy(ctx context.Context, locale domain.Locale, theme string, daysStreak int) domain.NotificationCopy
	ReferralCaption(ctx context.Context, locale domain.Locale, emoji, benefit string) string
}

type service struct {
	generator CopyGenerator
}

func NewService(generator CopyGenerator) Service {
	return &service{generator: generator}
}

func (s *service) NotificationCopy(ctx context.Context, locale domain.Locale, theme string, daysStreak int) domain.NotificationCopy {
	nc, err := s.generator.GenerateNotification(ctx, locale, theme, daysStreak)
	if err != nil {
		logger.FromContext(ctx).Warn("notification copy generation failed, using fallback",
			slog.String("theme", theme),
			slog.String("locale", string(locale)),
			slog.String("error", err.Error()))
		return fallbackCopy
	}
	return *nc
}

func (s *service) ReferralCaption(ctx context.Context, locale domain.Locale, emoji, benefit string) string {
	caption, err := s.generator.GenerateReferralCaption(ctx, locale, emoji, benefit)
	if err != nil {
		logger.FromContext(ctx).Warn("referral caption generation failed, using fallback",
			slog.String("locale", string(locale)),
			slog.String("error", err.Error()))
		return fallbackCaption
	}
	return caption
}
