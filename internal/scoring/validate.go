package scoring

import (
	"fmt"
	"sort"

	"quiz-result-service/internal/domain"
)

// Validation is the outcome of checking a quiz before it is published.
type Validation struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// ValidateQuizConfiguration checks the structural rules for quiz's type and reports every
// violation found, not just the first.
func ValidateQuizConfiguration(quiz domain.Quiz) Validation {
	errs := []string{}

	if len(quiz.Questions) == 0 {
		errs = append(errs, "Quiz must have at least one question")
	}
	if len(quiz.Results) == 0 {
		errs = append(errs, "Quiz must have at least one result")
	}
	for qi, question := range quiz.Questions {
		if len(question.Answers) == 0 {
			errs = append(errs, fmt.Sprintf("Question %d has no answers", qi+1))
		}
	}

	switch quiz.QuizType {
	case domain.QuizTypePersonality:
		errs = validatePersonality(quiz, errs)
	case domain.QuizTypeKnowledge:
		errs = validateKnowledge(quiz, errs)
	case domain.QuizTypePuzzle:
		errs = validatePuzzle(quiz, errs)
	default:
		errs = append(errs, fmt.Sprintf("Unsupported quiz type: %d", quiz.QuizType))
	}

	return Validation{IsValid: len(errs) == 0, Errors: errs}
}

func validatePersonality(quiz domain.Quiz, errs []string) []string {
	positive := make(map[int64]bool)
	for qi, question := range quiz.Questions {
		for ai, answer := range question.Answers {
			if len(answer.Scores) == 0 {
				errs = append(errs, fmt.Sprintf("Question %d, Answer %d has no score associations", qi+1, ai+1))
			}
			for _, score := range answer.Scores {
				if score.ScoreValue > 0 {
					positive[score.ResultID] = true
				}
			}
		}
	}
	for ri, result := range quiz.Results {
		if !positive[result.ID] {
			errs = append(errs, fmt.Sprintf("Result %d has no positive score associations", ri+1))
		}
	}
	return errs
}

func validateKnowledge(quiz domain.Quiz, errs []string) []string {
	type band struct{ from, to int }
	bands := make([]band, len(quiz.Results))
	for i, result := range quiz.Results {
		bands[i] = band{from: result.PointFrom, to: result.PointTo}
	}
	sort.SliceStable(bands, func(i, j int) bool { return bands[i].from < bands[j].from })
	for i := 0; i+1 < len(bands); i++ {
		if bands[i].to >= bands[i+1].from {
			errs = append(errs, "Result point ranges overlap")
			break
		}
	}

	for qi, question := range quiz.Questions {
		if _, ok := firstAnswer(question, func(a domain.Answer) bool { return a.Points > 0 }); !ok {
			errs = append(errs, fmt.Sprintf("Question %d has no correct answers (points > 0)", qi+1))
		}
	}
	return errs
}

func validatePuzzle(quiz domain.Quiz, errs []string) []string {
	if len(quiz.Questions) != 1 {
		errs = append(errs, "Puzzle quiz must have exactly one question")
	}
	if len(quiz.Results) != 2 {
		errs = append(errs, "Puzzle quiz must have exactly two results (correct/incorrect)")
	}

	if len(quiz.Questions) > 0 {
		correct, incorrect := 0, 0
		for _, answer := range quiz.Questions[0].Answers {
			switch answer.Points {
			case 1:
				correct++
			case 0:
				incorrect++
			}
		}
		if correct != 1 {
			errs = append(errs, "Puzzle quiz must have exactly one correct answer (points = 1)")
		}
		if incorrect == 0 {
			errs = append(errs, "Puzzle quiz must have at least one incorrect answer (points = 0)")
		}
	}

	if !hasExactBand(quiz.Results, 1) {
		errs = append(errs, "Puzzle quiz missing correct result (pointFrom=1, pointTo=1)")
	}
	if !hasExactBand(quiz.Results, 0) {
		errs = append(errs, "Puzzle quiz missing incorrect result (pointFrom=0, pointTo=0)")
	}
	return errs
}

func hasExactBand(results []domain.Result, points int) bool {
	for _, result := range results {
		if result.PointFrom == points && result.PointTo == points {
			return true
		}
	}
	return false
}
