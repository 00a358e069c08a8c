// Package scoring turns a completed quiz submission into a result.
//
// The engine is a pure computation over an immutable quiz snapshot: it performs no I/O and keeps no
// state between calls, so it can be called concurrently for independent submissions.
package scoring

import (
	"fmt"

	"quiz-result-service/internal/domain"
)

// CalculationType tags the algorithm-specific trace carried by a Calculation.
type CalculationType string

const (
	CalculationPersonality CalculationType = "personality"
	CalculationKnowledge   CalculationType = "knowledge"
	CalculationPuzzle      CalculationType = "puzzle"
)

// Details is implemented by *PersonalityDetails, *KnowledgeDetails and *PuzzleDetails.
type Details interface {
	calculationType() CalculationType
}

// Calculation explains how a result was reached. It is for display and debugging only.
type Calculation struct {
	Type    CalculationType `json:"type"`
	Details Details         `json:"details"`
}

// ScoringResult is the outcome of scoring one submission.
type ScoringResult struct {
	ResultID         int64       `json:"resultId"`
	Score            int         `json:"score"`
	MaxPossibleScore int         `json:"maxPossibleScore"`
	Calculation      Calculation `json:"calculation"`
}

type algorithm func(quiz domain.Quiz, selected domain.Selections) (ScoringResult, error)

var algorithms = map[domain.QuizType]algorithm{
	domain.QuizTypePersonality: calculatePersonality,
	domain.QuizTypeKnowledge:   calculateKnowledge,
	domain.QuizTypePuzzle:      calculatePuzzle,
}

// CalculateResult scores selected against quiz using the algorithm for quiz.QuizType.
//
// selected is expected to cover every question of the quiz; callers reject incomplete submissions
// before scoring.
func CalculateResult(quiz domain.Quiz, selected domain.Selections) (ScoringResult, error) {
	calc, ok := algorithms[quiz.QuizType]
	if !ok {
		return ScoringResult{}, fmt.Errorf("%w: %d", domain.ErrUnsupportedQuizType, quiz.QuizType)
	}
	return calc(quiz, selected)
}

// GenerateScoreDescription renders the numeric score for display. Personality quizzes have no
// meaningful numeric score and get an empty string.
func GenerateScoreDescription(result ScoringResult, quiz domain.Quiz) string {
	switch quiz.QuizType {
	case domain.QuizTypeKnowledge, domain.QuizTypePuzzle:
		return fmt.Sprintf("%d of %d", result.Score, result.MaxPossibleScore)
	default:
		return ""
	}
}
