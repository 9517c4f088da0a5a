package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/word-problem-tutor/backend/internal/domain"
)

// difficultyRank orders rows easy < medium < hard in a dialect-portable way
const difficultyRank = "CASE difficulty WHEN 'easy' THEN 1 WHEN 'medium' THEN 2 WHEN 'hard' THEN 3 ELSE 4 END"

// problemRepository implements domain.ProblemRepository using GORM
type problemRepository struct {
	db *gorm.DB
}

// NewProblemRepository creates a new problem repository
func NewProblemRepository(db *gorm.DB) domain.ProblemRepository {
	return &problemRepository{db: db}
}

// Create stores a new problem
func (r *problemRepository) Create(problem *domain.Problem) error {
	return r.db.Create(problem).Error
}

// CreateBatch stores multiple problems in a single batch
func (r *problemRepository) CreateBatch(problems []domain.Problem) error {
	return r.db.CreateInBatches(problems, 50).Error
}

// FindByID finds a problem by its ID
func (r *problemRepository) FindByID(id uuid.UUID) (*domain.Problem, error) {
	var problem domain.Problem
	result := r.db.Where("id = ?", id).First(&problem)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProblemNotFound
		}
		return nil, result.Error
	}
	return &problem, nil
}

// FindAll returns all problems ordered by difficulty rank, insertion order
// breaking ties
func (r *problemRepository) FindAll() ([]domain.Problem, error) {
	var problems []domain.Problem
	result := r.db.Order(difficultyRank + ", created_at ASC").Find(&problems)
	return problems, result.Error
}

// FindByIDs returns the problems for the given IDs keyed by ID. IDs with no
// matching problem are simply absent from the map.
func (r *problemRepository) FindByIDs(ids []uuid.UUID) (map[uuid.UUID]domain.Problem, error) {
	found := make(map[uuid.UUID]domain.Problem, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var problems []domain.Problem
	result := r.db.Where("id IN ?", ids).Find(&problems)
	if result.Error != nil {
		return nil, result.Error
	}
	for _, p := range problems {
		found[p.ID] = p
	}
	return found, nil
}

// Count returns the total number of problems
func (r *problemRepository) Count() (int64, error) {
	var count int64
	result := r.db.Model(&domain.Problem{}).Count(&count)
	return count, result.Error
}
