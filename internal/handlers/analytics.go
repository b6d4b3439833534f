package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tubeautomator/backend/internal/models"
)

// AnalyticsHandler reports the user's scheduled videos in publish order.
type AnalyticsHandler struct {
	Schedules ScheduleStore
}

// Handle dispatches GET /api/v1/analytics?userId=.
func (h AnalyticsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		respondError(ctx, w, http.StatusBadRequest, "User ID is required", CodeBadRequest)
		return
	}

	videos, err := h.Schedules.ListForUser(ctx, userID)
	if err != nil {
		respondInternal(ctx, w, fmt.Errorf("list scheduled videos: %w", err))
		return
	}

	if videos == nil {
		videos = []models.ScheduledVideo{}
	}

	respondSuccess(ctx, w, map[string]any{"videos": videos})
}
