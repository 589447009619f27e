// Package reflection talks to the AI provider: reflection generation,
// content moderation, risk classification, and notification microcopy.
// One client implements every collaborator interface the core consumes.
package reflection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/moodi-labs/moodi-backend/internal/domain"
	"github.com/moodi-labs/moodi-backend/internal/logger"
	"github.com/moodi-labs/moodi-backend/internal/metrics"
)

// DefaultRequestTimeout bounds each provider round-trip. A timeout is
// treated exactly like a failed call by the callers (fail-open for the
// safety stages, hard failure for generation).
const DefaultRequestTimeout = 30 * time.Second

// Operation labels for provider metrics
const (
	opReflection   = "reflection"
	opModeration   = "moderation"
	opClassifier   = "risk_classifier"
	opNotification = "notification"
	opCaption      = "referral_caption"
)

// Client is an OpenAI-compatible API client
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient creates a provider client. baseURL is the API root without a
// trailing slash, e.g. "https://api.openai.com/v1".
func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: DefaultRequestTimeout},
	}
}

// GenerateReflection produces the empathetic reflection for one mood
// submission. The raw provider output is schema-checked before decoding;
// malformed output is a generation failure, not a validation failure.
func (c *Client) GenerateReflection(ctx context.Context, sub domain.MoodSubmission) (*domain.ReflectionResult, error) {
	payload, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encoding payload: %v", domain.ErrReflectionFailed, err)
	}

	content, err := c.chatJSON(ctx, opReflection, reflectionSystemPrompt, buildReflectionPrompt(payload), 0.7)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReflectionFailed, err)
	}

	if err := validateReflectionOutput(content); err != nil {
		logger.FromContext(ctx).Error("Provider returned malformed reflection", "error", err)
		return nil, fmt.Errorf("%w: malformed provider output: %v", domain.ErrReflectionFailed, err)
	}

	var result domain.ReflectionResult
	if err := json.Unmarshal(content, &result); err != nil {
		return nil, fmt.Errorf("%w: decoding provider output: %v", domain.ErrReflectionFailed, err)
	}

	return &result, nil
}

// chatCompletionRequest is the provider wire format for chat calls
type chatCompletionRequest struct {
	Model          string         `json:"model"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []chatMessage  `json:"messages"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatJSON performs one chat completion in JSON mode and returns the raw
// content of the first choice.
func (c *Client) chatJSON(ctx context.Context, operation, systemPrompt, userPrompt string, temperature float64) ([]byte, error) {
	reqBody := chatCompletionRequest{
		Model:          c.model,
		Temperature:    temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	start := time.Now()
	respBody, err := c.post(ctx, "/chat/completions", body)
	metrics.ProviderLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(operation, "error").Inc()
		return nil, err
	}
	metrics.ProviderRequests.WithLabelValues(operation, "ok").Inc()

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, fmt.Errorf("failed to decode completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("provider returned no choices")
	}

	return []byte(completion.Choices[0].Message.Content), nil
}

// post sends an authenticated JSON POST and returns the response body
func (c *Client) post(ctx context.Context, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return buf.Bytes(), nil
}
