package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/word-problem-tutor/backend/internal/domain"
)

// DefaultLeaderboardSize is the number of entries a leaderboard query
// returns when the caller does not ask for a specific count.
const DefaultLeaderboardSize = 10

// ProgressService derives per-user progress views and the leaderboard from
// the progress store. Everything here is recomputed per call; nothing is
// cached.
type ProgressService struct {
	progressRepo domain.ProgressRepository
	problemRepo  domain.ProblemRepository
	tracer       trace.Tracer
	logger       *zap.Logger
}

// NewProgressService creates a new progress service
func NewProgressService(
	progressRepo domain.ProgressRepository,
	problemRepo domain.ProblemRepository,
	tracer trace.Tracer,
	logger *zap.Logger,
) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		problemRepo:  problemRepo,
		tracer:       tracer,
		logger:       logger,
	}
}

// GetUserProgress returns a user's progress records with their problems
// resolved, plus aggregate stats. Records whose problem has been removed
// from the catalog are kept and flagged, not dropped.
func (s *ProgressService) GetUserProgress(ctx context.Context, userID string) (*domain.UserProgress, error) {
	ctx, span := s.tracer.Start(ctx, "ProgressService.GetUserProgress")
	defer span.End()

	span.SetAttributes(attribute.String("user.id", userID))

	records, err := s.progressRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(records))
	for i, r := range records {
		ids[i] = r.ProblemID
	}
	problems, err := s.problemRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	progress := &domain.UserProgress{
		Progress: make([]domain.ProgressEntry, len(records)),
	}
	for i, record := range records {
		entry := domain.ProgressEntry{ProgressRecord: record}
		if problem, ok := problems[record.ProblemID]; ok {
			entry.Problem = &problem
		} else {
			entry.ProblemUnknown = true
		}
		progress.Progress[i] = entry

		progress.Stats.TotalScore += record.TotalScore
		progress.Stats.TotalAttempts += record.Attempts
		progress.Stats.TotalCorrect += record.CorrectAttempts
	}
	progress.Stats.Accuracy = accuracy(progress.Stats.TotalCorrect, progress.Stats.TotalAttempts)

	return progress, nil
}

// GetLeaderboard returns the top users ranked by total score
func (s *ProgressService) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	ctx, span := s.tracer.Start(ctx, "ProgressService.GetLeaderboard")
	defer span.End()

	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}
	span.SetAttributes(attribute.Int("leaderboard.limit", limit))

	entries, err := s.progressRepo.TopByScore(limit)
	if err != nil {
		return nil, err
	}

	// Empty leaderboards serialize as [] rather than null
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	return entries, nil
}

// accuracy is the percentage of correct attempts, rounded to one decimal.
// It is defined as 0 when there are no attempts.
func accuracy(correct, attempts int) float64 {
	if attempts == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(attempts)*1000) / 10
}
