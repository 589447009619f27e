package reflection

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moodi-labs/moodi-backend/internal/domain"
)

// GenerateNotification produces push notification microcopy for the
// given locale, theme, and streak count.
func (c *Client) GenerateNotification(ctx context.Context, locale domain.Locale, theme string, daysStreak int) (*domain.NotificationCopy, error) {
	content, err := c.chatJSON(ctx, opNotification, notificationSystemPrompt,
		buildNotificationPrompt(string(locale), theme, daysStreak), 0.7)
	if err != nil {
		return nil, err
	}

	var nc domain.NotificationCopy
	if err := json.Unmarshal(content, &nc); err != nil {
		return nil, fmt.Errorf("failed to decode notification copy: %w", err)
	}
	if nc.Title == "" || nc.Body == "" {
		return nil, fmt.Errorf("notification copy missing title or body")
	}

	return &nc, nil
}

// GenerateReferralCaption produces a short social share caption
func (c *Client) GenerateReferralCaption(ctx context.Context, locale domain.Locale, emoji, benefit string) (string, error) {
	content, err := c.chatJSON(ctx, opCaption, captionSystemPrompt,
		buildCaptionPrompt(string(locale), emoji, benefit), 0.8)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Caption string `json:"caption"`
	}
	if err := json.Unmarshal(content, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode caption: %w", err)
	}
	if parsed.Caption == "" {
		return "", fmt.Errorf("caption missing from response")
	}

	return parsed.Caption, nil
}
