package reflection

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodi-labs/moodi-backend/internal/domain"
)

// fakeProvider builds an httptest server speaking the provider wire format.
// chatContent is returned as the completion message content; moderation
// requests get the scripted moderation body.
func fakeProvider(t *testing.T, chatContent string, moderationBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/chat/completions":
			resp := map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"content": chatContent}},
				},
			}
			_ = json.NewEncoder(w).Encode(resp)
		case "/moderations":
			fmt.Fprint(w, moderationBody)
		default:
			http.NotFound(w, r)
		}
	}))
}

func sampleSubmission() domain.MoodSubmission {
	return domain.MoodSubmission{
		Emoji:       "\U0001F60C",
		ColorHex:    "#7FD1AE",
		Intensity:   4,
		ContextText: "petite promenade au bord de mer",
		HasMedia:    true,
		TimeBucket:  domain.TimeBucketEvening,
		GeoHint:     "Casablanca",
		Locale:      domain.LocaleFrench,
		AgeBucket:   domain.AgeBucketAdult,
	}
}

func validReflectionJSON() string {
	return `{
		"reflection_text": "Une promenade au bord de mer, quel beau moyen de souffler.",
		"action_suggestion": "Note une chose que tu as remarquee pendant ta promenade.",
		"share_caption": "Petite pause, grand calme.",
		"soundtrack_hint": "acoustic chill",
		"tags": ["calm", "evening", "gratitude"],
		"safety_flag": "ok"
	}`
}

func TestGenerateReflection_Success(t *testing.T) {
	srv := fakeProvider(t, validReflectionJSON(), "")
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gpt-4.1-mini")
	result, err := client.GenerateReflection(context.Background(), sampleSubmission())

	require.NoError(t, err)
	assert.Equal(t, domain.SafetyFlagOK, result.SafetyFlag)
	assert.Equal(t, "acoustic chill", result.SoundtrackHint)
	assert.Len(t, result.Tags, 3)
}

func TestGenerateReflection_MissingFieldFailsSchema(t *testing.T) {
	// No safety_flag in the output
	srv := fakeProvider(t, `{
		"reflection_text": "ok",
		"action_suggestion": "ok",
		"share_caption": "ok",
		"soundtrack_hint": "ok",
		"tags": ["a","b","c"]
	}`, "")
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gpt-4.1-mini")
	_, err := client.GenerateReflection(context.Background(), sampleSubmission())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReflectionFailed)
	assert.Contains(t, err.Error(), "malformed provider output")
}

func TestGenerateReflection_ExtraKeyFailsSchema(t *testing.T) {
	srv := fakeProvider(t, `{
		"reflection_text": "ok",
		"action_suggestion": "ok",
		"share_caption": "ok",
		"soundtrack_hint": "ok",
		"tags": ["a","b","c"],
		"safety_flag": "ok",
		"extra": true
	}`, "")
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gpt-4.1-mini")
	_, err := client.GenerateReflection(context.Background(), sampleSubmission())

	assert.ErrorIs(t, err, domain.ErrReflectionFailed)
}

func TestGenerateReflection_NonJSONOutput(t *testing.T) {
	srv := fakeProvider(t, "sorry, I can't do JSON today", "")
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gpt-4.1-mini")
	_, err := client.GenerateReflection(context.Background(), sampleSubmission())

	assert.ErrorIs(t, err, domain.ErrReflectionFailed)
}

func TestGenerateReflection_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gpt-4.1-mini")
	_, err := client.GenerateReflection(context.Background(), sampleSubmission())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReflectionFailed)
	assert.Contains(t, err.Error(), "status 502")
}

func TestCheckContent(t *testing.T) {
	srv := fakeProvider(t, "", `{"results":[{"flagged":true,"categories":{"self-harm":true,"violence":false}}]}`)
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gpt-4.1-mini")
	result, err := client.CheckContent(context.Background(), "some text")

	require.NoError(t, err)
	assert.True(t, result.Flagged)
	assert.True(t, result.Categories["self-harm"])
}

func TestCheckContent_EmptyResults(t *testing.T) {
	srv := fakeProvider(t, "", `{"results":[]}`)
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gpt-4.1-mini")
	_, err := client.CheckContent(context.Background(), "some text")

	assert.ErrorContains(t, err, "no results")
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    domain.SafetyFlag
	}{
		{"elevate", `{"safety_flag":"elevate"}`, domain.SafetyFlagElevate},
		{"ok", `{"safety_flag":"ok"}`, domain.SafetyFlagOK},
		{"missing flag defaults to ok", `{}`, domain.SafetyFlagOK},
		{"unknown flag defaults to ok", `{"safety_flag":"panic"}`, domain.SafetyFlagOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeProvider(t, tt.content, "")
			defer srv.Close()

			client := NewClient("test-key", srv.URL, "gpt-4.1-mini")
			flag, err := client.ClassifyRisk(context.Background(), "text")

			require.NoError(t, err)
			assert.Equal(t, tt.want, flag)
		})
	}
}

func TestGenerateNotification(t *testing.T) {
	srv := fakeProvider(t, `{"title":"MOODI","body":"Ton moment calme t'attend"}`, "")
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gpt-4.1-mini")
	nc, err := client.GenerateNotification(context.Background(), domain.LocaleFrench, "streak_nudge", 3)

	require.NoError(t, err)
	assert.Equal(t, "MOODI", nc.Title)
	assert.NotEmpty(t, nc.Body)
}

func TestGenerateReferralCaption(t *testing.T) {
	srv := fakeProvider(t, `{"caption":"Mon humeur, mon moment."}`, "")
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gpt-4.1-mini")
	caption, err := client.GenerateReferralCaption(context.Background(), domain.LocaleFrench, "\U0001F60C", "tiny AI nudge")

	require.NoError(t, err)
	assert.Equal(t, "Mon humeur, mon moment.", caption)
}
