package reflection

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/moodi-labs/moodi-backend/internal/domain"
	"github.com/moodi-labs/moodi-backend/internal/metrics"
)

type moderationRequest struct {
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []struct {
		Flagged    bool            `json:"flagged"`
		Categories map[string]bool `json:"categories"`
	} `json:"results"`
}

// CheckContent runs the provider's moderation endpoint over the text.
// Callers treat any returned error as a non-flagged result (fail-open).
func (c *Client) CheckContent(ctx context.Context, text string) (*domain.ModerationResult, error) {
	body, err := json.Marshal(moderationRequest{Input: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode moderation request: %w", err)
	}

	start := time.Now()
	respBody, err := c.post(ctx, "/moderations", body)
	metrics.ProviderLatency.WithLabelValues(opModeration).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(opModeration, "error").Inc()
		return nil, err
	}
	metrics.ProviderRequests.WithLabelValues(opModeration, "ok").Inc()

	var parsed moderationResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode moderation response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return nil, fmt.Errorf("moderation returned no results")
	}

	result := parsed.Results[0]
	categories := result.Categories
	if categories == nil {
		categories = map[string]bool{}
	}

	return &domain.ModerationResult{
		Flagged:    result.Flagged,
		Categories: categories,
	}, nil
}
