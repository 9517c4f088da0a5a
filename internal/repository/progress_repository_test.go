package repository_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/word-problem-tutor/backend/internal/domain"
	"github.com/word-problem-tutor/backend/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func TestRecordAttemptUpsert(t *testing.T) {
	repo := repository.NewProgressRepository(newTestDB(t))
	problemID := uuid.New()

	first, err := repo.RecordAttempt("user-1", problemID, true)
	if err != nil {
		t.Fatalf("record attempt failed: %v", err)
	}
	if first.Attempts != 1 || first.CorrectAttempts != 1 || first.TotalScore != 10 {
		t.Fatalf("unexpected first record: %+v", first)
	}

	second, err := repo.RecordAttempt("user-1", problemID, false)
	if err != nil {
		t.Fatalf("record attempt failed: %v", err)
	}
	if second.ID != first.ID {
		t.Error("expected the same record to be mutated in place")
	}
	if second.Attempts != 2 || second.CorrectAttempts != 1 || second.TotalScore != 10 {
		t.Fatalf("unexpected second record: %+v", second)
	}
	if !second.LastAttempt.After(first.LastAttempt) && !second.LastAttempt.Equal(first.LastAttempt) {
		t.Error("expected lastAttempt to move forward")
	}

	third, err := repo.RecordAttempt("user-1", problemID, true)
	if err != nil {
		t.Fatalf("record attempt failed: %v", err)
	}
	if third.Attempts != 3 || third.CorrectAttempts != 2 || third.TotalScore != 20 {
		t.Fatalf("unexpected third record: %+v", third)
	}

	records, err := repo.FindByUserID("user-1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected a single record per (user, problem) pair, got %d", len(records))
	}
}

func TestRecordAttemptSeparatePairs(t *testing.T) {
	repo := repository.NewProgressRepository(newTestDB(t))
	problemA, problemB := uuid.New(), uuid.New()

	if _, err := repo.RecordAttempt("user-1", problemA, true); err != nil {
		t.Fatalf("record attempt failed: %v", err)
	}
	if _, err := repo.RecordAttempt("user-1", problemB, false); err != nil {
		t.Fatalf("record attempt failed: %v", err)
	}
	if _, err := repo.RecordAttempt("user-2", problemA, true); err != nil {
		t.Fatalf("record attempt failed: %v", err)
	}

	records, err := repo.FindByUserID("user-1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records for user-1, got %d", len(records))
	}
}

func TestTopByScoreOrderingAndTruncation(t *testing.T) {
	repo := repository.NewProgressRepository(newTestDB(t))
	problemA, problemB := uuid.New(), uuid.New()

	// alice: 2 correct (20 points), bob: 1 correct + 1 wrong (10 points),
	// carol: 1 wrong (0 points)
	for _, attempt := range []struct {
		user    string
		problem uuid.UUID
		correct bool
	}{
		{"alice", problemA, true},
		{"alice", problemB, true},
		{"bob", problemA, true},
		{"bob", problemB, false},
		{"carol", problemA, false},
	} {
		if _, err := repo.RecordAttempt(attempt.user, attempt.problem, attempt.correct); err != nil {
			t.Fatalf("record attempt failed: %v", err)
		}
	}

	entries, err := repo.TopByScore(10)
	if err != nil {
		t.Fatalf("leaderboard query failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].TotalScore > entries[i-1].TotalScore {
			t.Fatalf("leaderboard not sorted descending: %+v", entries)
		}
	}
	if entries[0].UserID != "alice" || entries[0].TotalScore != 20 {
		t.Errorf("expected alice to lead with 20, got %+v", entries[0])
	}
	if entries[1].UserID != "bob" || entries[1].TotalAttempts != 2 || entries[1].TotalCorrect != 1 {
		t.Errorf("unexpected second entry: %+v", entries[1])
	}

	truncated, err := repo.TopByScore(2)
	if err != nil {
		t.Fatalf("leaderboard query failed: %v", err)
	}
	if len(truncated) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(truncated))
	}
}

func TestTopByScoreTieBreakFirstSeen(t *testing.T) {
	repo := repository.NewProgressRepository(newTestDB(t))
	problemID := uuid.New()

	// same score; dana's record was created first
	if _, err := repo.RecordAttempt("dana", problemID, true); err != nil {
		t.Fatalf("record attempt failed: %v", err)
	}
	if _, err := repo.RecordAttempt("erin", problemID, true); err != nil {
		t.Fatalf("record attempt failed: %v", err)
	}

	entries, err := repo.TopByScore(10)
	if err != nil {
		t.Fatalf("leaderboard query failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != "dana" {
		t.Errorf("expected first-seen user to rank first on ties, got %+v", entries)
	}
}
