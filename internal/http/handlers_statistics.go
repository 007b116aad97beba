package httpx

import (
	"errors"
	"net/http"

	"github.com/socialgrid/socialgrid/internal/service"
)

const maxPopularPostsLimit = 100

// StatisticsHandlers provides HTTP handlers for aggregate read models.
type StatisticsHandlers struct {
	Svc *service.StatisticsService
}

// PopularPosts handles GET /api/statistics/popular-posts?limit=10.
func (h *StatisticsHandlers) PopularPosts(w http.ResponseWriter, r *http.Request) {
	if !Authorize(w, r, anyAccount) {
		return
	}

	limit := parseIntQuery(r, "limit", 10)
	if limit < 1 {
		limit = 1
	}
	if limit > maxPopularPostsLimit {
		limit = maxPopularPostsLimit
	}

	posts, err := h.Svc.PopularPosts(r.Context(), limit)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "statistics_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"posts": posts,
		"limit": limit,
	})
}

// UserActivity handles GET /api/statistics/user-activity?userId=... Admin only.
func (h *StatisticsHandlers) UserActivity(w http.ResponseWriter, r *http.Request) {
	if !Authorize(w, r, adminOnly) {
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: errors.New("userId is required")})
		return
	}

	activity, err := h.Svc.UserActivity(r.Context(), userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, activity)
}
