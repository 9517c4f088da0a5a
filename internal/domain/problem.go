package domain

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty represents the difficulty level of a word problem
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Weight returns a numeric rank for sorting by difficulty
func (d Difficulty) Weight() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 4
	}
}

// Operation is the arithmetic operation a problem exercises
type Operation string

const (
	OperationAddition    Operation = "addition"
	OperationSubtraction Operation = "subtraction"
)

// Problem represents a single arithmetic word problem with a known integer
// answer, explanatory steps and visual metadata.
// Exactly one of AddCount/RemoveCount is meaningful, depending on Operation.
type Problem struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Title         string     `json:"title" gorm:"not null"`
	Story         string     `json:"story" gorm:"not null"`
	Difficulty    Difficulty `json:"difficulty" gorm:"type:varchar(10);not null;index"`
	CorrectAnswer int        `json:"correctAnswer" gorm:"not null"`
	Steps         []string   `json:"steps" gorm:"serializer:json"`
	VisualType    string     `json:"visualType"`
	InitialCount  int        `json:"initialCount"`
	AddCount      int        `json:"addCount,omitempty"`
	RemoveCount   int        `json:"removeCount,omitempty"`
	Operation     Operation  `json:"operation" gorm:"type:varchar(16)"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Problem) TableName() string {
	return "problems"
}

// ProblemRepository defines the interface for problem data access
type ProblemRepository interface {
	Create(problem *Problem) error
	CreateBatch(problems []Problem) error
	FindByID(id uuid.UUID) (*Problem, error)
	// FindAll returns problems ordered by difficulty rank (easy, medium,
	// hard), ties broken by insertion order.
	FindAll() ([]Problem, error)
	FindByIDs(ids []uuid.UUID) (map[uuid.UUID]Problem, error)
	Count() (int64, error)
}

// CreateProblemRequest is the POST /api/problems body. Content is stored as
// given; arithmetic consistency between the counts and CorrectAnswer is not
// checked at creation time.
type CreateProblemRequest struct {
	Title         string     `json:"title"`
	Story         string     `json:"story"`
	Difficulty    Difficulty `json:"difficulty"`
	CorrectAnswer int        `json:"correctAnswer"`
	Steps         []string   `json:"steps"`
	VisualType    string     `json:"visualType"`
	InitialCount  int        `json:"initialCount"`
	AddCount      int        `json:"addCount"`
	RemoveCount   int        `json:"removeCount"`
	Operation     Operation  `json:"operation"`
}

// ToProblem builds a Problem with a fresh identifier and creation timestamp
func (r *CreateProblemRequest) ToProblem() *Problem {
	return &Problem{
		ID:            uuid.New(),
		Title:         r.Title,
		Story:         r.Story,
		Difficulty:    r.Difficulty,
		CorrectAnswer: r.CorrectAnswer,
		Steps:         r.Steps,
		VisualType:    r.VisualType,
		InitialCount:  r.InitialCount,
		AddCount:      r.AddCount,
		RemoveCount:   r.RemoveCount,
		Operation:     r.Operation,
		CreatedAt:     time.Now(),
	}
}

// ProblemStats represents statistics about the problem catalog
type ProblemStats struct {
	Total        int                `json:"total"`
	ByDifficulty map[Difficulty]int `json:"byDifficulty"`
	ByOperation  map[Operation]int  `json:"byOperation"`
	Submissions  int64              `json:"submissions"`
}
