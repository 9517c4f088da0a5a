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

// SubmissionService handles the answer submission flow: problem lookup,
// verification, submission logging and progress accumulation.
type SubmissionService struct {
	problemRepo    domain.ProblemRepository
	submissionRepo domain.SubmissionRepository
	progressRepo   domain.ProgressRepository
	metrics        *infrastructure.TelemetryMetrics
	tracer         trace.Tracer
	logger         *zap.Logger
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	problemRepo domain.ProblemRepository,
	submissionRepo domain.SubmissionRepository,
	progressRepo domain.ProgressRepository,
	metrics *infrastructure.TelemetryMetrics,
	tracer trace.Tracer,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		problemRepo:    problemRepo,
		submissionRepo: submissionRepo,
		progressRepo:   progressRepo,
		metrics:        metrics,
		tracer:         tracer,
		logger:         logger,
	}
}

// Submit verifies an answer, appends it to the submission log and updates
// the user's progress record for the problem. The answer is parsed before
// the problem lookup, so malformed input never produces a correctness
// verdict and fails even for unknown problems. No state is touched when
// parsing or the lookup fails.
func (s *SubmissionService) Submit(ctx context.Context, req *domain.SubmitRequest) (*domain.SubmitResult, error) {
	ctx, span := s.tracer.Start(ctx, "SubmissionService.Submit")
	defer span.End()

	span.SetAttributes(
		attribute.String("user.id", req.UserID),
		attribute.String("problem.id", req.ProblemID),
	)

	answer, err := domain.ParseAnswer(string(req.UserAnswer))
	if err != nil {
		return nil, err
	}

	problemID, err := uuid.Parse(req.ProblemID)
	if err != nil {
		// Identifiers are opaque to clients; an unparseable one is simply
		// not in the catalog.
		return nil, domain.ErrProblemNotFound
	}

	problem, err := s.problemRepo.FindByID(problemID)
	if err != nil {
		return nil, err
	}

	feedback := domain.NewFeedback(problem, answer)
	span.SetAttributes(attribute.Bool("submission.correct", feedback.IsCorrect))

	submission := &domain.Submission{
		ID:         uuid.New(),
		UserID:     req.UserID,
		ProblemID:  problemID,
		UserAnswer: answer,
		IsCorrect:  feedback.IsCorrect,
		TimeTaken:  req.TimeTaken,
	}
	if err := s.submissionRepo.Create(submission); err != nil {
		s.logger.Error("Failed to log submission", zap.Error(err))
		return nil, err
	}

	record, err := s.progressRepo.RecordAttempt(req.UserID, problemID, feedback.IsCorrect)
	if err != nil {
		s.logger.Error("Failed to update progress", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordSubmission(ctx, feedback.IsCorrect)
	s.logger.Info("Answer submitted",
		zap.String("user_id", req.UserID),
		zap.String("problem_id", problemID.String()),
		zap.Bool("correct", feedback.IsCorrect),
		zap.Int("attempts", record.Attempts),
		zap.Int("score", record.TotalScore),
	)

	return &domain.SubmitResult{
		Feedback: feedback,
		Score:    record.TotalScore,
	}, nil
}
