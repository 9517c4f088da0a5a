package service

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/word-problem-tutor/backend/internal/domain"
	"github.com/word-problem-tutor/backend/internal/infrastructure"
)

// ProblemService handles catalog-related business logic
type ProblemService struct {
	problemRepo    domain.ProblemRepository
	submissionRepo domain.SubmissionRepository
	metrics        *infrastructure.TelemetryMetrics
	tracer         trace.Tracer
	logger         *zap.Logger
}

// NewProblemService creates a new problem service
func NewProblemService(
	problemRepo domain.ProblemRepository,
	submissionRepo domain.SubmissionRepository,
	metrics *infrastructure.TelemetryMetrics,
	tracer trace.Tracer,
	logger *zap.Logger,
) *ProblemService {
	return &ProblemService{
		problemRepo:    problemRepo,
		submissionRepo: submissionRepo,
		metrics:        metrics,
		tracer:         tracer,
		logger:         logger,
	}
}

// GetAllProblems returns the catalog ordered by difficulty
func (s *ProblemService) GetAllProblems(ctx context.Context) ([]domain.Problem, error) {
	ctx, span := s.tracer.Start(ctx, "ProblemService.GetAllProblems")
	defer span.End()

	return s.problemRepo.FindAll()
}

// GetProblemByID returns a specific problem
func (s *ProblemService) GetProblemByID(ctx context.Context, id uuid.UUID) (*domain.Problem, error) {
	ctx, span := s.tracer.Start(ctx, "ProblemService.GetProblemByID")
	defer span.End()

	span.SetAttributes(attribute.String("problem.id", id.String()))
	return s.problemRepo.FindByID(id)
}

// CreateProblem stores a new problem with a generated id and timestamp
func (s *ProblemService) CreateProblem(ctx context.Context, req *domain.CreateProblemRequest) (*domain.Problem, error) {
	ctx, span := s.tracer.Start(ctx, "ProblemService.CreateProblem")
	defer span.End()

	problem := req.ToProblem()
	if err := s.problemRepo.Create(problem); err != nil {
		s.logger.Error("Failed to create problem", zap.Error(err))
		return nil, err
	}

	s.metrics.ProblemsCreated.Add(ctx, 1)
	s.logger.Info("Problem created",
		zap.String("problem_id", problem.ID.String()),
		zap.String("title", problem.Title),
		zap.String("difficulty", string(problem.Difficulty)),
	)

	span.SetAttributes(attribute.String("problem.id", problem.ID.String()))
	return problem, nil
}

// ExplainProblem builds the step-by-step explanation for a problem
func (s *ProblemService) ExplainProblem(ctx context.Context, id uuid.UUID) (*domain.DetailedExplanation, error) {
	ctx, span := s.tracer.Start(ctx, "ProblemService.ExplainProblem")
	defer span.End()

	span.SetAttributes(attribute.String("problem.id", id.String()))

	problem, err := s.problemRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	explanation := problem.Explain()
	return &explanation, nil
}

// GetProblemStats returns statistics about the catalog and submission volume
func (s *ProblemService) GetProblemStats(ctx context.Context) (*domain.ProblemStats, error) {
	ctx, span := s.tracer.Start(ctx, "ProblemService.GetProblemStats")
	defer span.End()

	problems, err := s.problemRepo.FindAll()
	if err != nil {
		return nil, err
	}

	submissions, err := s.submissionRepo.Count()
	if err != nil {
		return nil, err
	}

	stats := &domain.ProblemStats{
		Total:        len(problems),
		ByDifficulty: make(map[domain.Difficulty]int),
		ByOperation:  make(map[domain.Operation]int),
		Submissions:  submissions,
	}
	for _, p := range problems {
		stats.ByDifficulty[p.Difficulty]++
		stats.ByOperation[p.Operation]++
	}

	return stats, nil
}
