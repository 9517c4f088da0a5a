package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/word-problem-tutor/backend/internal/service"
)

// ProgressHandler handles progress and leaderboard HTTP requests
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
	}
}

// GetUserProgress returns a user's progress records and aggregate stats
// GET /api/progress/:userId
func (h *ProgressHandler) GetUserProgress(c *gin.Context) {
	userID := c.Param("userId")

	progress, err := h.progressService.GetUserProgress(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve progress")
		return
	}

	respondOK(c, progress)
}

// GetLeaderboard returns the top users by total score
// GET /api/leaderboard
func (h *ProgressHandler) GetLeaderboard(c *gin.Context) {
	limit := service.DefaultLeaderboardSize
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.progressService.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve leaderboard")
		return
	}

	respondOK(c, entries)
}
