package handler

import (
	"net/http"

	"github.com/moodi-labs/moodi-backend/internal/domain"
	"github.com/moodi-labs/moodi-backend/internal/logger"
	"github.com/moodi-labs/moodi-backend/internal/notification"
	"github.com/moodi-labs/moodi-backend/internal/progress"
)

// HandleGetProgress returns the user's streak, coins, and unlocks
// @Summary Get user progress
// @Description Returns the user's current streak, MoodCoin balance, and unlocked features
// @Tags progress
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.UserProgressState
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/progress [get]
func HandleGetProgress(progressService progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			respondError(w, http.StatusBadRequest, "user_id is required")
			return
		}

		state, err := progressService.GetProgress(r.Context(), userID)
		if err != nil {
			log.Error("Failed to get progress", "error", err, "user_id", userID)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, state)
	}
}

// ReferralRequest credits a successful referral to a user
type ReferralRequest struct {
	UserID     string `json:"user_id" validate:"required,max=255"`
	MoodEmoji  string `json:"mood_emoji" validate:"omitempty,max=16"`
	UserLocale string `json:"user_locale"`
}

// ReferralResponse carries the award and a shareable caption
type ReferralResponse struct {
	CoinsAwarded   int      `json:"coins_awarded"`
	NewCoinTotal   int      `json:"new_coin_total"`
	UnlocksGranted []string `json:"unlocks"`
	ShareCaption   string   `json:"share_caption"`
}

// Shown alongside the referral caption to describe what the friend gets
const referralBenefit = "a tiny AI reflection for every mood"

// HandleAwardReferral credits the referral bonus and returns share copy
// @Summary Credit a referral
// @Description Awards referral MoodCoins, grants any newly satisfied unlocks, and returns a share caption
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} ReferralResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/referral [post]
func HandleAwardReferral(progressService progress.Service, notificationService notification.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ReferralRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		award, err := progressService.AwardReferral(r.Context(), req.UserID)
		if err != nil {
			log.Error("Failed to credit referral", "error", err, "user_id", req.UserID)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		caption := notificationService.ReferralCaption(r.Context(),
			domain.NormalizeLocale(req.UserLocale), req.MoodEmoji, referralBenefit)

		respondJSON(w, http.StatusOK, ReferralResponse{
			CoinsAwarded:   award.CoinsAwarded,
			NewCoinTotal:   award.NewCoinTotal,
			UnlocksGranted: award.UnlocksGranted,
			ShareCaption:   caption,
		})
	}
}
