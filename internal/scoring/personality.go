package scoring

import (
	"fmt"

	"quiz-result-service/internal/domain"
)

// Contribution is one score edge that fed a result's total.
type Contribution struct {
	QuestionID int64 `json:"questionId"`
	AnswerID   int64 `json:"answerId"`
	ScoreValue int   `json:"scoreValue"`
}

// ResultScore is the accumulated total of one personality result.
type ResultScore struct {
	ResultID      int64          `json:"resultId"`
	TotalScore    int            `json:"totalScore"`
	Contributions []Contribution `json:"contributions"`
}

// WinningResult names the result that was chosen.
type WinningResult struct {
	ResultID   int64 `json:"resultId"`
	TotalScore int   `json:"totalScore"`
}

// PersonalityDetails is the trace of a personality calculation, one entry per result in quiz order.
type PersonalityDetails struct {
	ResultScores  []ResultScore `json:"resultScores"`
	WinningResult WinningResult `json:"winningResult"`
}

func (*PersonalityDetails) calculationType() CalculationType { return CalculationPersonality }

func calculatePersonality(quiz domain.Quiz, selected domain.Selections) (ScoringResult, error) {
	if len(quiz.Results) == 0 {
		return ScoringResult{}, fmt.Errorf("%w: personality quiz %d has no results", domain.ErrNoMatchingResult, quiz.ID)
	}

	scores := make([]ResultScore, len(quiz.Results))
	position := make(map[int64]int, len(quiz.Results))
	for i, result := range quiz.Results {
		scores[i] = ResultScore{ResultID: result.ID, Contributions: []Contribution{}}
		if _, ok := position[result.ID]; !ok {
			position[result.ID] = i
		}
	}

	answers := newAnswerIndex(quiz)
	for _, sel := range orderedSelections(quiz, selected) {
		entry, ok := answers[sel.answerID]
		if !ok {
			continue
		}
		for _, score := range entry.answer.Scores {
			i, ok := position[score.ResultID]
			if !ok {
				// Edge to a result outside this quiz.
				continue
			}
			scores[i].TotalScore += score.ScoreValue
			scores[i].Contributions = append(scores[i].Contributions, Contribution{
				QuestionID: sel.questionID,
				AnswerID:   sel.answerID,
				ScoreValue: score.ScoreValue,
			})
		}
	}

	// Strictly greater only: the earliest result wins a tie.
	winner := scores[0]
	for _, rs := range scores[1:] {
		if rs.TotalScore > winner.TotalScore {
			winner = rs
		}
	}

	return ScoringResult{
		ResultID:         winner.ResultID,
		Score:            winner.TotalScore,
		MaxPossibleScore: maxPersonalityScore(quiz),
		Calculation: Calculation{
			Type: CalculationPersonality,
			Details: &PersonalityDetails{
				ResultScores:  scores,
				WinningResult: WinningResult{ResultID: winner.ResultID, TotalScore: winner.TotalScore},
			},
		},
	}, nil
}

// maxPersonalityScore sums, per question, the highest score value attached to any of its answers.
// It is a theoretical ceiling and may not be reachable by a real combination of answers.
func maxPersonalityScore(quiz domain.Quiz) int {
	total := 0
	for _, question := range quiz.Questions {
		best, found := 0, false
		for _, answer := range question.Answers {
			for _, score := range answer.Scores {
				if !found || score.ScoreValue > best {
					best, found = score.ScoreValue, true
				}
			}
		}
		total += best
	}
	return total
}
