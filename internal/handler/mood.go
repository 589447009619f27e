package handler

import (
	"encoding/json"
	"net/http"

	"github.com/moodi-labs/moodi-backend/internal/domain"
	"github.com/moodi-labs/moodi-backend/internal/logger"
	"github.com/moodi-labs/moodi-backend/internal/progress"
	"github.com/moodi-labs/moodi-backend/internal/submission"
)

// SubmitMoodRequest represents a mood submission
type SubmitMoodRequest struct {
	UserID        string `json:"user_id" validate:"required,max=255"`
	MoodEmoji     string `json:"mood_emoji" validate:"required,max=16"`
	MoodColor     string `json:"mood_color" validate:"omitempty,hexcolor"`
	Intensity     int    `json:"intensity_0_10" validate:"min=0,max=10"`
	ContextText   string `json:"context_text" validate:"omitempty,max=2000"`
	MediaPresent  bool   `json:"media_present"`
	TimeBucket    string `json:"time_bucket" validate:"omitempty,time_bucket"`
	GeoHint       string `json:"geo_hint" validate:"omitempty,max=120"`
	UserLocale    string `json:"user_locale"`
	UserAgeBucket string `json:"user_age_bucket" validate:"omitempty,age_bucket"`
}

// toSubmission converts the request into the domain submission,
// normalizing the client locale onto a supported one.
func (req *SubmitMoodRequest) toSubmission() domain.MoodSubmission {
	return domain.MoodSubmission{
		Emoji:       req.MoodEmoji,
		ColorHex:    req.MoodColor,
		Intensity:   req.Intensity,
		ContextText: req.ContextText,
		HasMedia:    req.MediaPresent,
		TimeBucket:  domain.TimeBucket(req.TimeBucket),
		GeoHint:     req.GeoHint,
		Locale:      domain.NormalizeLocale(req.UserLocale),
		AgeBucket:   domain.AgeBucket(req.UserAgeBucket),
	}
}

// decodeAndValidate decodes the request body into req and runs struct
// validation, writing the error response itself on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error("Failed to decode request body", "error", err)
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Warn("Request validation failed", "error", err)
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   ErrMsgInvalidRequestError,
			Details: FormatValidationError(err),
		})
		return false
	}
	return true
}

// HandleSubmitMood runs the full submission workflow: safety screening,
// reflection generation, then streak and reward updates.
// @Summary Submit a mood entry
// @Description Generates an AI reflection and updates streaks, MoodCoins, and unlocks
// @Tags mood
// @Accept json
// @Produce json
// @Success 200 {object} domain.SubmissionOutcome
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/mood/submit [post]
func HandleSubmitMood(progressService progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SubmitMoodRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		outcome, err := progressService.SubmitMood(r.Context(), req.UserID, req.toSubmission())
		if err != nil {
			log.Error("Failed to process mood submission", "error", err, "user_id", req.UserID)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		// A failed outcome is a well-formed response, not a transport error
		respondJSON(w, http.StatusOK, outcome)
	}
}

// ReflectRequest asks for a reflection without touching gamification state
type ReflectRequest struct {
	MoodEmoji     string `json:"mood_emoji" validate:"required,max=16"`
	MoodColor     string `json:"mood_color" validate:"omitempty,hexcolor"`
	Intensity     int    `json:"intensity_0_10" validate:"min=0,max=10"`
	ContextText   string `json:"context_text" validate:"omitempty,max=2000"`
	MediaPresent  bool   `json:"media_present"`
	TimeBucket    string `json:"time_bucket" validate:"omitempty,time_bucket"`
	GeoHint       string `json:"geo_hint" validate:"omitempty,max=120"`
	UserLocale    string `json:"user_locale"`
	UserAgeBucket string `json:"user_age_bucket" validate:"omitempty,age_bucket"`
}

// ReflectResponse carries the reflection and the safety assessment
type ReflectResponse struct {
	Reflection *domain.ReflectionResult `json:"reflection,omitempty"`
	Safety     *domain.SafetyAssessment `json:"safety_check,omitempty"`
	Errors     []string                 `json:"errors,omitempty"`
}

// HandleReflect generates a reflection for a mood without any state change
// @Summary Generate a reflection
// @Description Runs safety screening and reflection generation only; no streaks or coins
// @Tags mood
// @Accept json
// @Produce json
// @Success 200 {object} ReflectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ReflectResponse
// @Router /api/v1/mood/reflect [post]
func HandleReflect(generator submission.Generator, assessor submission.Assessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ReflectRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		sub := domain.MoodSubmission{
			Emoji:       req.MoodEmoji,
			ColorHex:    req.MoodColor,
			Intensity:   req.Intensity,
			ContextText: req.ContextText,
			HasMedia:    req.MediaPresent,
			TimeBucket:  domain.TimeBucket(req.TimeBucket),
			GeoHint:     req.GeoHint,
			Locale:      domain.NormalizeLocale(req.UserLocale),
			AgeBucket:   domain.AgeBucket(req.UserAgeBucket),
		}

		assessment := assessor.Assess(r.Context(), sub.ContextText)
		resp := ReflectResponse{Safety: &assessment}
		if assessment.Elevated() {
			resp.Errors = append(resp.Errors, domain.ErrMsgSafetyEscalation)
		}

		reflection, err := generator.GenerateReflection(r.Context(), sub)
		if err != nil {
			log.Error("Failed to generate reflection", "error", err)
			resp.Errors = append(resp.Errors, domain.ErrMsgReflectionFailed)
			respondJSON(w, http.StatusBadGateway, resp)
			return
		}
		if violations := reflection.Validate(); len(violations) > 0 {
			log.Error("Reflection failed output validation", "violations", violations)
			resp.Errors = append(resp.Errors, violations...)
			respondJSON(w, http.StatusBadGateway, resp)
			return
		}

		resp.Reflection = reflection
		respondJSON(w, http.StatusOK, resp)
	}
}
