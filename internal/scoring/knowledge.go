package scoring

import (
	"fmt"

	"quiz-result-service/internal/domain"
)

// QuestionScore is the points earned on one question.
type QuestionScore struct {
	QuestionID int64 `json:"questionId"`
	AnswerID   int64 `json:"answerId"`
	Points     int   `json:"points"`
	IsCorrect  bool  `json:"isCorrect"`
}

// KnowledgeDetails is the trace of a knowledge calculation.
type KnowledgeDetails struct {
	TotalPoints       int             `json:"totalPoints"`
	MaxPossiblePoints int             `json:"maxPossiblePoints"`
	CorrectAnswers    int             `json:"correctAnswers"`
	TotalQuestions    int             `json:"totalQuestions"`
	QuestionScores    []QuestionScore `json:"questionScores"`
}

func (*KnowledgeDetails) calculationType() CalculationType { return CalculationKnowledge }

func calculateKnowledge(quiz domain.Quiz, selected domain.Selections) (ScoringResult, error) {
	answers := newAnswerIndex(quiz)

	total, correct := 0, 0
	questionScores := make([]QuestionScore, 0, len(selected))
	for _, sel := range orderedSelections(quiz, selected) {
		entry, ok := answers[sel.answerID]
		if !ok {
			continue
		}
		points := entry.answer.Points
		total += points
		isCorrect := points > 0
		if isCorrect {
			correct++
		}
		questionScores = append(questionScores, QuestionScore{
			QuestionID: sel.questionID,
			AnswerID:   sel.answerID,
			Points:     points,
			IsCorrect:  isCorrect,
		})
	}

	matched, ok := resultInBand(quiz.Results, total)
	if !ok {
		return ScoringResult{}, fmt.Errorf("%w: no result band contains %d points", domain.ErrNoMatchingResult, total)
	}

	// The ceiling is the authored top of the bands, not the best reachable total.
	maxPoints := maxPointTo(quiz.Results)

	return ScoringResult{
		ResultID:         matched.ID,
		Score:            total,
		MaxPossibleScore: maxPoints,
		Calculation: Calculation{
			Type: CalculationKnowledge,
			Details: &KnowledgeDetails{
				TotalPoints:       total,
				MaxPossiblePoints: maxPoints,
				CorrectAnswers:    correct,
				TotalQuestions:    len(quiz.Questions),
				QuestionScores:    questionScores,
			},
		},
	}, nil
}

// resultInBand returns the first result whose inclusive [PointFrom, PointTo] band holds points.
func resultInBand(results []domain.Result, points int) (domain.Result, bool) {
	for _, result := range results {
		if points >= result.PointFrom && points <= result.PointTo {
			return result, true
		}
	}
	return domain.Result{}, false
}

func maxPointTo(results []domain.Result) int {
	top := 0
	for i, result := range results {
		if i == 0 || result.PointTo > top {
			top = result.PointTo
		}
	}
	return top
}
