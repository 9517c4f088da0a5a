package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/word-problem-tutor/backend/internal/domain"
)

// progressRepository implements domain.ProgressRepository using GORM.
// The mutex serializes the read-modify-write in RecordAttempt: the HTTP
// server handles requests concurrently, and without it two submissions for
// the same (user, problem) pair could lose an update.
type progressRepository struct {
	db *gorm.DB
	mu sync.Mutex
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *gorm.DB) domain.ProgressRepository {
	return &progressRepository{db: db}
}

// RecordAttempt upserts the progress record for the (userID, problemID) pair
func (r *progressRepository) RecordAttempt(userID string, problemID uuid.UUID, correct bool) (*domain.ProgressRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()

	var record domain.ProgressRecord
	err := r.db.Where("user_id = ? AND problem_id = ?", userID, problemID).First(&record).Error
	switch {
	case err == nil:
		record.Attempts++
		if correct {
			record.CorrectAttempts++
			record.TotalScore += domain.ScorePerCorrectAnswer
		}
		record.LastAttempt = now
		if err := r.db.Save(&record).Error; err != nil {
			return nil, err
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		record = domain.ProgressRecord{
			ID:          uuid.New(),
			UserID:      userID,
			ProblemID:   problemID,
			Attempts:    1,
			LastAttempt: now,
		}
		if correct {
			record.CorrectAttempts = 1
			record.TotalScore = domain.ScorePerCorrectAnswer
		}
		if err := r.db.Create(&record).Error; err != nil {
			return nil, err
		}

	default:
		return nil, err
	}

	return &record, nil
}

// FindByUserID returns all progress records for a user
func (r *progressRepository) FindByUserID(userID string) ([]domain.ProgressRecord, error) {
	var records []domain.ProgressRecord
	result := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&records)
	return records, result.Error
}

// leaderboardRow is the scan target for the aggregation query. first_seen is
// selected only for the tie-break and not exposed.
type leaderboardRow struct {
	UserID        string
	TotalScore    int
	TotalCorrect  int
	TotalAttempts int
}

// TopByScore groups progress records by user, sums their counters and
// returns the highest-scoring users. Ties are broken by the user's earliest
// progress record, so first-seen users rank ahead.
func (r *progressRepository) TopByScore(limit int) ([]domain.LeaderboardEntry, error) {
	var rows []leaderboardRow
	result := r.db.Model(&domain.ProgressRecord{}).
		Select("user_id, " +
			"SUM(total_score) AS total_score, " +
			"SUM(correct_attempts) AS total_correct, " +
			"SUM(attempts) AS total_attempts, " +
			"MIN(created_at) AS first_seen").
		Group("user_id").
		Order("total_score DESC, first_seen ASC").
		Limit(limit).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]domain.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.LeaderboardEntry{
			UserID:        row.UserID,
			TotalScore:    row.TotalScore,
			TotalCorrect:  row.TotalCorrect,
			TotalAttempts: row.TotalAttempts,
		}
	}
	return entries, nil
}
