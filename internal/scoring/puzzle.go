package scoring

import (
	"fmt"

	"quiz-result-service/internal/domain"
)

// PuzzleDetails is the trace of a puzzle calculation.
type PuzzleDetails struct {
	IsCorrect        bool  `json:"isCorrect"`
	SelectedAnswerID int64 `json:"selectedAnswerId"`
	CorrectAnswerID  int64 `json:"correctAnswerId"`
	Points           int   `json:"points"`
}

func (*PuzzleDetails) calculationType() CalculationType { return CalculationPuzzle }

const puzzleMaxScore = 1

func calculatePuzzle(quiz domain.Quiz, selected domain.Selections) (ScoringResult, error) {
	if len(quiz.Questions) != 1 {
		return ScoringResult{}, fmt.Errorf("%w: expected exactly one question, got %d",
			domain.ErrInvalidPuzzleConfiguration, len(quiz.Questions))
	}
	question := quiz.Questions[0]

	correctAnswer, ok := firstAnswer(question, func(a domain.Answer) bool { return a.Points == 1 })
	if !ok {
		return ScoringResult{}, fmt.Errorf("%w: question %d has no correct answer",
			domain.ErrInvalidPuzzleConfiguration, question.ID)
	}

	selectedID, ok := selected[question.ID]
	if !ok {
		return ScoringResult{}, fmt.Errorf("%w: no answer selected for question %d",
			domain.ErrInvalidPuzzleConfiguration, question.ID)
	}
	if _, ok := firstAnswer(question, func(a domain.Answer) bool { return a.ID == selectedID }); !ok {
		return ScoringResult{}, fmt.Errorf("%w: answer %d is not part of question %d",
			domain.ErrInvalidPuzzleConfiguration, selectedID, question.ID)
	}

	isCorrect := selectedID == correctAnswer.ID
	points := 0
	if isCorrect {
		points = 1
	}

	var matched *domain.Result
	for i := range quiz.Results {
		if quiz.Results[i].PointFrom == points && quiz.Results[i].PointTo == points {
			matched = &quiz.Results[i]
			break
		}
	}
	if matched == nil {
		return ScoringResult{}, fmt.Errorf("%w: no [%d,%d] result for puzzle", domain.ErrNoMatchingResult, points, points)
	}

	return ScoringResult{
		ResultID:         matched.ID,
		Score:            points,
		MaxPossibleScore: puzzleMaxScore,
		Calculation: Calculation{
			Type: CalculationPuzzle,
			Details: &PuzzleDetails{
				IsCorrect:        isCorrect,
				SelectedAnswerID: selectedID,
				CorrectAnswerID:  correctAnswer.ID,
				Points:           points,
			},
		},
	}, nil
}

func firstAnswer(question domain.Question, match func(domain.Answer) bool) (domain.Answer, bool) {
	for _, answer := range question.Answers {
		if match(answer) {
			return answer, true
		}
	}
	return domain.Answer{}, false
}
