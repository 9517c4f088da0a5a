package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/word-problem-tutor/backend/internal/domain"
	"github.com/word-problem-tutor/backend/internal/service"
)

// SubmissionHandler handles answer submission HTTP requests
type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

// submitResponse extends the envelope with the user's cumulative score for
// the problem
type submitResponse struct {
	Success bool             `json:"success"`
	Data    *domain.Feedback `json:"data"`
	Score   int              `json:"score"`
}

// SubmitAnswer verifies an answer and records the attempt
// POST /api/submit
func (h *SubmissionHandler) SubmitAnswer(c *gin.Context) {
	var req domain.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.submissionService.Submit(c.Request.Context(), &req)
	if err != nil {
		switch err {
		case domain.ErrInvalidAnswer:
			respondError(c, http.StatusBadRequest, "Invalid answer format. Please enter a number.")
		case domain.ErrProblemNotFound:
			respondError(c, http.StatusNotFound, "Problem not found")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to submit answer")
		}
		return
	}

	c.JSON(http.StatusOK, submitResponse{
		Success: true,
		Data:    result.Feedback,
		Score:   result.Score,
	})
}
