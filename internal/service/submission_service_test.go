package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/word-problem-tutor/backend/internal/domain"
	"github.com/word-problem-tutor/backend/internal/infrastructure"
	"github.com/word-problem-tutor/backend/internal/repository"
	"github.com/word-problem-tutor/backend/internal/service"
)

type testEnv struct {
	db                *gorm.DB
	problemRepo       domain.ProblemRepository
	submissionRepo    domain.SubmissionRepository
	progressRepo      domain.ProgressRepository
	submissionService *service.SubmissionService
	progressService   *service.ProgressService
	problemService    *service.ProblemService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&domain.Problem{}, &domain.Submission{}, &domain.ProgressRecord{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	// noop instruments from the global (unset) providers
	metrics, err := (&infrastructure.Telemetry{Meter: otel.Meter("test")}).CreateMetrics()
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	tracer := otel.Tracer("test")
	log := zap.NewNop()

	problemRepo := repository.NewProblemRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	return &testEnv{
		db:                db,
		problemRepo:       problemRepo,
		submissionRepo:    submissionRepo,
		progressRepo:      progressRepo,
		submissionService: service.NewSubmissionService(problemRepo, submissionRepo, progressRepo, metrics, tracer, log),
		progressService:   service.NewProgressService(progressRepo, problemRepo, tracer, log),
		problemService:    service.NewProblemService(problemRepo, submissionRepo, metrics, tracer, log),
	}
}

func (e *testEnv) seedAppleBasket(t *testing.T) *domain.Problem {
	t.Helper()
	problem := &domain.Problem{
		ID:            uuid.New(),
		Title:         "Apple Basket",
		Story:         "Sarah has 5 apples in her basket. Her friend gives her 3 more apples.",
		Difficulty:    domain.DifficultyEasy,
		CorrectAnswer: 8,
		Steps:         []string{"Start with 5 apples", "Add 3 more apples", "5 + 3 = 8 apples total"},
		VisualType:    "apples",
		InitialCount:  5,
		AddCount:      3,
		Operation:     domain.OperationAddition,
	}
	if err := e.problemRepo.Create(problem); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return problem
}

func (e *testEnv) submissionCount(t *testing.T) int64 {
	t.Helper()
	count, err := e.submissionRepo.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return count
}

func TestSubmitAppleBasketScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	problem := env.seedAppleBasket(t)

	// correct answer first
	result, err := env.submissionService.Submit(ctx, &domain.SubmitRequest{
		ProblemID:  problem.ID.String(),
		UserAnswer: "8",
		UserID:     "user123",
		TimeTaken:  4.2,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !result.Feedback.IsCorrect {
		t.Error("expected correct verdict")
	}
	if result.Score != 10 {
		t.Errorf("expected score 10, got %d", result.Score)
	}

	// wrong answer for the same pair
	result, err = env.submissionService.Submit(ctx, &domain.SubmitRequest{
		ProblemID:  problem.ID.String(),
		UserAnswer: "5",
		UserID:     "user123",
		TimeTaken:  2.0,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Feedback.IsCorrect {
		t.Error("expected incorrect verdict")
	}
	if result.Feedback.Difference != 3 {
		t.Errorf("expected difference 3, got %d", result.Feedback.Difference)
	}
	if result.Score != 10 {
		t.Errorf("expected score to stay at 10, got %d", result.Score)
	}

	records, err := env.progressRepo.FindByUserID("user123")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 progress record, got %d", len(records))
	}
	record := records[0]
	if record.Attempts != 2 || record.CorrectAttempts != 1 || record.TotalScore != 10 {
		t.Errorf("unexpected record: %+v", record)
	}

	if count := env.submissionCount(t); count != 2 {
		t.Errorf("expected 2 logged submissions, got %d", count)
	}
}

func TestSubmitInvalidAnswerLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	problem := env.seedAppleBasket(t)

	_, err := env.submissionService.Submit(ctx, &domain.SubmitRequest{
		ProblemID:  problem.ID.String(),
		UserAnswer: "abc",
		UserID:     "user123",
	})
	if err != domain.ErrInvalidAnswer {
		t.Fatalf("expected ErrInvalidAnswer, got %v", err)
	}

	if count := env.submissionCount(t); count != 0 {
		t.Errorf("expected no logged submissions, got %d", count)
	}
	records, _ := env.progressRepo.FindByUserID("user123")
	if len(records) != 0 {
		t.Errorf("expected no progress records, got %d", len(records))
	}

	// malformed input fails before the lookup, even for unknown problems
	_, err = env.submissionService.Submit(ctx, &domain.SubmitRequest{
		ProblemID:  uuid.New().String(),
		UserAnswer: "abc",
		UserID:     "user123",
	})
	if err != domain.ErrInvalidAnswer {
		t.Fatalf("expected ErrInvalidAnswer, got %v", err)
	}
}

func TestSubmitUnknownProblemLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedAppleBasket(t)

	for _, problemID := range []string{uuid.New().String(), "not-a-real-id"} {
		_, err := env.submissionService.Submit(ctx, &domain.SubmitRequest{
			ProblemID:  problemID,
			UserAnswer: "8",
			UserID:     "user123",
		})
		if err != domain.ErrProblemNotFound {
			t.Fatalf("problem %q: expected ErrProblemNotFound, got %v", problemID, err)
		}
	}

	if count := env.submissionCount(t); count != 0 {
		t.Errorf("expected no logged submissions, got %d", count)
	}
	records, _ := env.progressRepo.FindByUserID("user123")
	if len(records) != 0 {
		t.Errorf("expected no progress records, got %d", len(records))
	}
}

func TestRepeatedCorrectSubmissionsAccumulate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	problem := env.seedAppleBasket(t)

	for i := 1; i <= 3; i++ {
		result, err := env.submissionService.Submit(ctx, &domain.SubmitRequest{
			ProblemID:  problem.ID.String(),
			UserAnswer: "8",
			UserID:     "user123",
		})
		if err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
		if result.Score != i*10 {
			t.Errorf("submit %d: expected score %d, got %d", i, i*10, result.Score)
		}
	}

	records, _ := env.progressRepo.FindByUserID("user123")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Attempts != 3 || records[0].CorrectAttempts != 3 || records[0].TotalScore != 30 {
		t.Errorf("unexpected record: %+v", records[0])
	}
}
