package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RawAnswer is a learner's answer as it arrives on the wire. Clients send it
// either as a JSON string ("8") or a JSON number (8); both decode to the
// textual form and are parsed by ParseAnswer.
type RawAnswer string

// UnmarshalJSON accepts both string and numeric JSON values
func (a *RawAnswer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = RawAnswer(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = RawAnswer(n.String())
	return nil
}

// ParseAnswer parses a raw answer as a base-10 integer. Fractional or
// non-numeric input yields ErrInvalidAnswer, which is a client error distinct
// from an incorrect answer.
func ParseAnswer(raw string) (int, error) {
	answer, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidAnswer
	}
	return answer, nil
}

// Explanation is the human-readable part of the feedback
type Explanation struct {
	Message       string `json:"message"`
	Reasoning     string `json:"reasoning"`
	Encouragement string `json:"encouragement"`
}

// Feedback is the structured correctness verdict returned to the caller
type Feedback struct {
	IsCorrect     bool        `json:"isCorrect"`
	UserAnswer    int         `json:"userAnswer"`
	CorrectAnswer int         `json:"correctAnswer"`
	Difference    int         `json:"difference"`
	Steps         []string    `json:"steps"`
	Explanation   Explanation `json:"explanation"`
}

// VerifyAnswer checks a raw answer against a problem and produces feedback.
// It is a pure function; persisting the attempt is the caller's concern.
func VerifyAnswer(problem *Problem, raw string) (*Feedback, error) {
	answer, err := ParseAnswer(raw)
	if err != nil {
		return nil, err
	}
	return NewFeedback(problem, answer), nil
}

// NewFeedback builds feedback for an already-parsed answer
func NewFeedback(problem *Problem, answer int) *Feedback {
	isCorrect := answer == problem.CorrectAnswer

	return &Feedback{
		IsCorrect:     isCorrect,
		UserAnswer:    answer,
		CorrectAnswer: problem.CorrectAnswer,
		Difference:    abs(answer - problem.CorrectAnswer),
		Steps:         problem.Steps,
		Explanation:   explainAnswer(problem, answer, isCorrect),
	}
}

// explainAnswer selects the feedback phrasing. An incorrect answer gets a
// directional hint: too high or too low by the magnitude of the delta.
func explainAnswer(problem *Problem, answer int, isCorrect bool) Explanation {
	if isCorrect {
		return Explanation{
			Message:       "Perfect! You got it right! 🎉",
			Reasoning:     fmt.Sprintf("You correctly calculated that %d is the answer.", problem.CorrectAnswer),
			Encouragement: "Great job! Keep up the excellent work!",
		}
	}

	diff := answer - problem.CorrectAnswer
	var hint string
	if diff > 0 {
		hint = fmt.Sprintf("Your answer is %d too high. Try counting more carefully!", diff)
	} else {
		hint = fmt.Sprintf("Your answer is %d too low. Did you count everything?", -diff)
	}

	return Explanation{
		Message:       "Not quite right, but don't give up! 💪",
		Reasoning:     hint,
		Encouragement: "Review the steps and try again. You can do it!",
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
