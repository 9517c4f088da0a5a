package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is one user's answer event for one problem. Submissions form an
// append-only audit log; they are never mutated or deleted.
type Submission struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     string    `json:"userId" gorm:"not null;index"`
	ProblemID  uuid.UUID `json:"problemId" gorm:"type:uuid;not null;index"`
	UserAnswer int       `json:"userAnswer"`
	IsCorrect  bool      `json:"isCorrect"`
	TimeTaken  float64   `json:"timeTaken"`
	CreatedAt  time.Time `json:"timestamp"`
}

// TableName specifies the table name for GORM
func (Submission) TableName() string {
	return "submissions"
}

// SubmissionRepository defines the interface for the submission log.
// The log is write-mostly; only an aggregate count is read back.
type SubmissionRepository interface {
	Create(submission *Submission) error
	Count() (int64, error)
}

// SubmitRequest is the POST /api/submit body
type SubmitRequest struct {
	ProblemID  string    `json:"problemId"`
	UserAnswer RawAnswer `json:"userAnswer"`
	UserID     string    `json:"userId"`
	TimeTaken  float64   `json:"timeTaken"`
}

// SubmitResult carries the feedback plus the user's cumulative score for the
// problem after this attempt
type SubmitResult struct {
	Feedback *Feedback
	Score    int
}
