package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScorePerCorrectAnswer is added to a progress record's total score for
// every correct attempt.
const ScorePerCorrectAnswer = 10

// ProgressRecord is the cumulative performance counter for one (user,
// problem) pair. The composite unique index guarantees upsert semantics:
// exactly one record per pair, mutated in place on each attempt.
type ProgressRecord struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          string    `json:"userId" gorm:"not null;uniqueIndex:idx_progress_user_problem"`
	ProblemID       uuid.UUID `json:"problemId" gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_problem"`
	Attempts        int       `json:"attempts"`
	CorrectAttempts int       `json:"correctAttempts"`
	TotalScore      int       `json:"totalScore"`
	LastAttempt     time.Time `json:"lastAttempt"`
	CreatedAt       time.Time `json:"-"`
}

// TableName specifies the table name for GORM
func (ProgressRecord) TableName() string {
	return "progress_records"
}

// ProgressRepository defines the interface for progress data access
type ProgressRepository interface {
	// RecordAttempt upserts the record for the (userID, problemID) pair:
	// attempts +1, and when correct, correctAttempts +1 and totalScore
	// +ScorePerCorrectAnswer. Implementations must serialize the
	// read-modify-write so concurrent submissions cannot lose updates.
	RecordAttempt(userID string, problemID uuid.UUID, correct bool) (*ProgressRecord, error)
	FindByUserID(userID string) ([]ProgressRecord, error)
	// TopByScore aggregates records per user and returns the top entries by
	// summed score, descending. Ties rank the earliest-seen user first.
	TopByScore(limit int) ([]LeaderboardEntry, error)
}

// ProgressEntry is a progress record with its problem reference resolved
// against the catalog. A record whose problem no longer exists keeps its
// problemId and carries an explicit unknown marker instead of being dropped.
type ProgressEntry struct {
	ProgressRecord
	Problem        *Problem `json:"problem"`
	ProblemUnknown bool     `json:"problemUnknown,omitempty"`
}

// UserStats are totals summed across all of a user's progress records
type UserStats struct {
	TotalScore    int     `json:"totalScore"`
	TotalAttempts int     `json:"totalAttempts"`
	TotalCorrect  int     `json:"totalCorrect"`
	Accuracy      float64 `json:"accuracy"`
}

// UserProgress is the payload of the progress endpoint
type UserProgress struct {
	Progress []ProgressEntry `json:"progress"`
	Stats    UserStats       `json:"stats"`
}

// LeaderboardEntry is a derived ranking row; it is recomputed on every
// leaderboard query and never stored.
type LeaderboardEntry struct {
	UserID        string `json:"userId"`
	TotalScore    int    `json:"totalScore"`
	TotalCorrect  int    `json:"totalCorrect"`
	TotalAttempts int    `json:"totalAttempts"`
}
