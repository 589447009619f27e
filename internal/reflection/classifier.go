package reflection

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moodi-labs/moodi-backend/internal/domain"
)

// ClassifyRisk asks the secondary classifier whether the text implies
// self-harm intent or severe distress. Callers treat any returned error
// as an ok verdict (fail-open).
func (c *Client) ClassifyRisk(ctx context.Context, text string) (domain.SafetyFlag, error) {
	content, err := c.chatJSON(ctx, opClassifier, classifierSystemPrompt, buildClassifierPrompt(text), 0.3)
	if err != nil {
		return "", err
	}

	var parsed struct {
		SafetyFlag domain.SafetyFlag `json:"safety_flag"`
	}
	if err := json.Unmarshal(content, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode classifier response: %w", err)
	}

	// A missing or unknown flag defaults to the permissive verdict
	if !domain.IsValidSafetyFlag(parsed.SafetyFlag) {
		return domain.SafetyFlagOK, nil
	}
	return parsed.SafetyFlag, nil
}
