package repository

import (
	"gorm.io/gorm"

	"github.com/word-problem-tutor/backend/internal/domain"
)

// submissionRepository implements domain.SubmissionRepository using GORM
type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *gorm.DB) domain.SubmissionRepository {
	return &submissionRepository{db: db}
}

// Create appends a submission to the log
func (r *submissionRepository) Create(submission *domain.Submission) error {
	return r.db.Create(submission).Error
}

// Count returns the total number of submissions
func (r *submissionRepository) Count() (int64, error) {
	var count int64
	result := r.db.Model(&domain.Submission{}).Count(&count)
	return count, result.Error
}
