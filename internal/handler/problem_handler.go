package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/word-problem-tutor/backend/internal/domain"
	"github.com/word-problem-tutor/backend/internal/service"
)

// ProblemHandler handles catalog-related HTTP requests
type ProblemHandler struct {
	problemService *service.ProblemService
}

// NewProblemHandler creates a new problem handler
func NewProblemHandler(problemService *service.ProblemService) *ProblemHandler {
	return &ProblemHandler{
		problemService: problemService,
	}
}

// GetProblems returns all problems sorted by difficulty
// GET /api/problems
func (h *ProblemHandler) GetProblems(c *gin.Context) {
	problems, err := h.problemService.GetAllProblems(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve problems")
		return
	}

	respondOK(c, problems)
}

// GetProblem returns a single problem by ID
// GET /api/problems/:id
func (h *ProblemHandler) GetProblem(c *gin.Context) {
	// Problem ids are opaque strings to clients; anything that doesn't
	// parse cannot be in the catalog.
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Problem not found")
		return
	}

	problem, err := h.problemService.GetProblemByID(c.Request.Context(), id)
	if err != nil {
		switch err {
		case domain.ErrProblemNotFound:
			respondError(c, http.StatusNotFound, "Problem not found")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to retrieve problem")
		}
		return
	}

	respondOK(c, problem)
}

// CreateProblem adds a new problem to the catalog
// POST /api/problems
func (h *ProblemHandler) CreateProblem(c *gin.Context) {
	var req domain.CreateProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	problem, err := h.problemService.CreateProblem(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create problem")
		return
	}

	respondCreated(c, problem)
}

// ExplainProblem returns the detailed explanation for a problem
// GET /api/explain/:problemId
func (h *ProblemHandler) ExplainProblem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("problemId"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Problem not found")
		return
	}

	explanation, err := h.problemService.ExplainProblem(c.Request.Context(), id)
	if err != nil {
		switch err {
		case domain.ErrProblemNotFound:
			respondError(c, http.StatusNotFound, "Problem not found")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to build explanation")
		}
		return
	}

	respondOK(c, explanation)
}

// GetProblemStats returns statistics about the catalog
// GET /api/problems/stats
func (h *ProblemHandler) GetProblemStats(c *gin.Context) {
	stats, err := h.problemService.GetProblemStats(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve problem statistics")
		return
	}

	respondOK(c, stats)
}
