package data

import (
	_ "embed"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/word-problem-tutor/backend/internal/domain"
)

//go:embed problems.json
var problemsData []byte

// problemJSON represents the JSON structure of the seed catalog
type problemJSON struct {
	Title         string   `json:"title"`
	Story         string   `json:"story"`
	Difficulty    string   `json:"difficulty"`
	CorrectAnswer int      `json:"correctAnswer"`
	Steps         []string `json:"steps"`
	VisualType    string   `json:"visualType"`
	InitialCount  int      `json:"initialCount"`
	AddCount      int      `json:"addCount"`
	RemoveCount   int      `json:"removeCount"`
	Operation     string   `json:"operation"`
}

// Seeder populates the catalog with the starter problem set
type Seeder struct {
	problemRepo domain.ProblemRepository
	logger      *zap.Logger
}

// NewSeeder creates a new catalog seeder
func NewSeeder(problemRepo domain.ProblemRepository, logger *zap.Logger) *Seeder {
	return &Seeder{
		problemRepo: problemRepo,
		logger:      logger,
	}
}

// SeedProblems loads the embedded starter problems into the catalog. It is
// skipped when the catalog already has content, so a persistent database is
// not reseeded.
func (s *Seeder) SeedProblems() error {
	count, err := s.problemRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("Problems already seeded, skipping",
			zap.Int64("count", count),
		)
		return nil
	}

	problems, err := EmbeddedProblems()
	if err != nil {
		return err
	}

	if err := s.problemRepo.CreateBatch(problems); err != nil {
		return err
	}

	s.logger.Info("Successfully seeded problems",
		zap.Int("count", len(problems)),
	)
	return nil
}

// EmbeddedProblems parses the embedded starter catalog into domain problems.
// Creation timestamps are staggered so difficulty ties keep the file order.
func EmbeddedProblems() ([]domain.Problem, error) {
	var problemsJSON []problemJSON
	if err := json.Unmarshal(problemsData, &problemsJSON); err != nil {
		return nil, err
	}

	now := time.Now()
	problems := make([]domain.Problem, len(problemsJSON))
	for i, p := range problemsJSON {
		problems[i] = domain.Problem{
			ID:            uuid.New(),
			Title:         p.Title,
			Story:         p.Story,
			Difficulty:    domain.Difficulty(p.Difficulty),
			CorrectAnswer: p.CorrectAnswer,
			Steps:         p.Steps,
			VisualType:    p.VisualType,
			InitialCount:  p.InitialCount,
			AddCount:      p.AddCount,
			RemoveCount:   p.RemoveCount,
			Operation:     domain.Operation(p.Operation),
			CreatedAt:     now.Add(time.Duration(i) * time.Millisecond),
		}
	}
	return problems, nil
}
