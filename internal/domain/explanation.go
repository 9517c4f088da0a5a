package domain

import "fmt"

// Visualization describes how a client should animate a problem
type Visualization struct {
	Type         string `json:"type"`
	Operation    string `json:"operation"`
	InitialCount int    `json:"initialCount"`
	ChangeCount  int    `json:"changeCount"`
	FinalCount   int    `json:"finalCount"`
}

// DetailedExplanation is the payload of the explain endpoint
type DetailedExplanation struct {
	Steps           []string      `json:"steps"`
	Visualization   Visualization `json:"visualization"`
	Hints           []string      `json:"hints"`
	RelatedConcepts []string      `json:"relatedConcepts"`
}

// Explain assembles the full step-by-step explanation for a problem
func (p *Problem) Explain() DetailedExplanation {
	return DetailedExplanation{
		Steps:           p.Steps,
		Visualization:   p.Visualize(),
		Hints:           p.Hints(),
		RelatedConcepts: p.RelatedConcepts(),
	}
}

// Visualize builds the visualization descriptor. A problem with an AddCount
// animates as an addition, otherwise as a removal.
func (p *Problem) Visualize() Visualization {
	operation, change := "subtract", p.RemoveCount
	if p.AddCount != 0 {
		operation, change = "add", p.AddCount
	}
	return Visualization{
		Type:         p.VisualType,
		Operation:    operation,
		InitialCount: p.InitialCount,
		ChangeCount:  change,
		FinalCount:   p.CorrectAnswer,
	}
}

// Hints generates ordered counting hints phrased around the problem's visual
func (p *Problem) Hints() []string {
	var hints []string
	switch {
	case p.AddCount != 0:
		hints = append(hints,
			fmt.Sprintf("Start by counting the initial %s", p.VisualType),
			fmt.Sprintf("Then add the new %s one by one", p.VisualType),
			"Count the total at the end",
		)
	case p.RemoveCount != 0:
		hints = append(hints,
			fmt.Sprintf("Begin with the total %s", p.VisualType),
			fmt.Sprintf("Remove the %s that are taken away", p.VisualType),
			"Count what remains",
		)
	}
	return hints
}

// RelatedConcepts returns concept tags for the problem. Medium and hard
// problems additionally involve multi-step reasoning.
func (p *Problem) RelatedConcepts() []string {
	concepts := []string{"Addition", "Subtraction", "Counting"}
	if p.Difficulty == DifficultyMedium || p.Difficulty == DifficultyHard {
		concepts = append(concepts, "Multi-step Problems", "Mental Math")
	}
	return concepts
}
