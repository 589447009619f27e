package handler

import (
	"net/http"

	"github.com/moodi-labs/moodi-backend/internal/domain"
	"github.com/moodi-labs/moodi-backend/internal/notification"
)

// NotificationRequest asks for push notification microcopy
type NotificationRequest struct {
	UserLocale string `json:"user_locale"`
	Theme      string `json:"theme" validate:"required,oneof=gentle_reminder streak_nudge evening_checkin milestone"`
	DaysStreak int    `json:"days_streak" validate:"min=0"`
}

// HandleNotificationCopy returns localized notification copy for a theme
// @Summary Generate notification copy
// @Description Returns localized push notification title and body; falls back to static copy if generation fails
// @Tags notification
// @Accept json
// @Produce json
// @Success 200 {object} domain.NotificationCopy
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/notification [post]
func HandleNotificationCopy(notificationService notification.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req NotificationRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		nc := notificationService.NotificationCopy(r.Context(),
			domain.NormalizeLocale(req.UserLocale), req.Theme, req.DaysStreak)

		respondJSON(w, http.StatusOK, nc)
	}
}
