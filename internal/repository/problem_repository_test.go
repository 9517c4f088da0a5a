package repository_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/word-problem-tutor/backend/internal/domain"
	"github.com/word-problem-tutor/backend/internal/repository"
)

func seedProblem(t *testing.T, repo domain.ProblemRepository, title string, difficulty domain.Difficulty, createdAt time.Time) *domain.Problem {
	t.Helper()
	problem := &domain.Problem{
		ID:            uuid.New(),
		Title:         title,
		Story:         title + " story",
		Difficulty:    difficulty,
		CorrectAnswer: 8,
		Steps:         []string{"step one", "step two"},
		VisualType:    "apples",
		InitialCount:  5,
		AddCount:      3,
		Operation:     domain.OperationAddition,
		CreatedAt:     createdAt,
	}
	if err := repo.Create(problem); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return problem
}

func TestFindAllOrdersByDifficultyThenInsertion(t *testing.T) {
	repo := repository.NewProblemRepository(newTestDB(t))
	base := time.Now()

	// inserted out of difficulty order on purpose
	seedProblem(t, repo, "Hard One", domain.DifficultyHard, base)
	seedProblem(t, repo, "Easy Two", domain.DifficultyEasy, base.Add(3*time.Millisecond))
	seedProblem(t, repo, "Medium One", domain.DifficultyMedium, base.Add(1*time.Millisecond))
	seedProblem(t, repo, "Easy One", domain.DifficultyEasy, base.Add(2*time.Millisecond))

	problems, err := repo.FindAll()
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}

	var titles []string
	for _, p := range problems {
		titles = append(titles, p.Title)
	}
	want := []string{"Easy One", "Easy Two", "Medium One", "Hard One"}
	for i, title := range want {
		if titles[i] != title {
			t.Fatalf("expected order %v, got %v", want, titles)
		}
	}
}

func TestFindByIDRoundTrip(t *testing.T) {
	repo := repository.NewProblemRepository(newTestDB(t))
	created := seedProblem(t, repo, "Apple Basket", domain.DifficultyEasy, time.Now())

	found, err := repo.FindByID(created.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Title != "Apple Basket" || found.CorrectAnswer != 8 {
		t.Errorf("unexpected problem: %+v", found)
	}
	if len(found.Steps) != 2 || found.Steps[0] != "step one" {
		t.Errorf("steps not round-tripped: %v", found.Steps)
	}

	if _, err := repo.FindByID(uuid.New()); err != domain.ErrProblemNotFound {
		t.Errorf("expected ErrProblemNotFound, got %v", err)
	}
}

func TestFindByIDsSkipsMissing(t *testing.T) {
	repo := repository.NewProblemRepository(newTestDB(t))
	created := seedProblem(t, repo, "Cookie Jar", domain.DifficultyEasy, time.Now())
	missing := uuid.New()

	found, err := repo.FindByIDs([]uuid.UUID{created.ID, missing})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 problem, got %d", len(found))
	}
	if _, ok := found[missing]; ok {
		t.Error("missing id should be absent from the result")
	}
}
