package scoring_test

import (
	"testing"

	"quiz-result-service/internal/domain"
	"quiz-result-service/internal/scoring"

	"github.com/stretchr/testify/assert"
)

func TestValidateAcceptsWellFormedQuizzes(t *testing.T) {
	for _, quiz := range []domain.Quiz{personalityQuiz(), knowledgeQuiz(), puzzleQuiz()} {
		got := scoring.ValidateQuizConfiguration(quiz)
		assert.True(t, got.IsValid, "quiz type %s: %v", quiz.QuizType, got.Errors)
		assert.Empty(t, got.Errors)
	}
}

func TestValidateKnowledgeTouchingBandsOverlap(t *testing.T) {
	quiz := knowledgeQuiz()
	quiz.Results = []domain.Result{
		{ID: 2, PointFrom: 5, PointTo: 10},
		{ID: 1, PointFrom: 0, PointTo: 5},
	}

	got := scoring.ValidateQuizConfiguration(quiz)
	assert.False(t, got.IsValid)
	assert.Equal(t, []string{"Result point ranges overlap"}, got.Errors)
}

func TestValidateReportsEveryViolation(t *testing.T) {
	quiz := knowledgeQuiz()
	quiz.Results = []domain.Result{
		{ID: 1, PointFrom: 0, PointTo: 3},
		{ID: 2, PointFrom: 2, PointTo: 5},
	}
	quiz.Questions[0].Answers[0].Points = 0
	quiz.Questions[2].Answers[0].Points = -1

	got := scoring.ValidateQuizConfiguration(quiz)
	assert.False(t, got.IsValid)
	assert.Equal(t, []string{
		"Result point ranges overlap",
		"Question 1 has no correct answers (points > 0)",
		"Question 3 has no correct answers (points > 0)",
	}, got.Errors)
}

func TestValidatePersonality(t *testing.T) {
	quiz := personalityQuiz()
	quiz.Questions[0].Answers[1].Scores = nil
	quiz.Results = append(quiz.Results, domain.Result{ID: 104})

	got := scoring.ValidateQuizConfiguration(quiz)
	assert.False(t, got.IsValid)
	assert.Equal(t, []string{
		"Question 1, Answer 2 has no score associations",
		"Result 3 has no positive score associations",
		"Result 4 has no positive score associations",
	}, got.Errors)
}

func TestValidatePuzzle(t *testing.T) {
	quiz := puzzleQuiz()
	quiz.Questions[0].Answers = []domain.Answer{{ID: 1, Points: 1}, {ID: 2, Points: 1}}
	quiz.Results = []domain.Result{{ID: 1, PointFrom: 1, PointTo: 1}}

	got := scoring.ValidateQuizConfiguration(quiz)
	assert.False(t, got.IsValid)
	assert.Equal(t, []string{
		"Puzzle quiz must have exactly two results (correct/incorrect)",
		"Puzzle quiz must have exactly one correct answer (points = 1)",
		"Puzzle quiz must have at least one incorrect answer (points = 0)",
		"Puzzle quiz missing incorrect result (pointFrom=0, pointTo=0)",
	}, got.Errors)
}

func TestValidateEmptyAndUnknownQuiz(t *testing.T) {
	got := scoring.ValidateQuizConfiguration(domain.Quiz{QuizType: 9})
	assert.False(t, got.IsValid)
	assert.Equal(t, []string{
		"Quiz must have at least one question",
		"Quiz must have at least one result",
		"Unsupported quiz type: 9",
	}, got.Errors)
}

func TestValidateQuestionWithoutAnswers(t *testing.T) {
	quiz := knowledgeQuiz()
	quiz.Questions = append(quiz.Questions, domain.Question{ID: 4})

	got := scoring.ValidateQuizConfiguration(quiz)
	assert.Equal(t, []string{
		"Question 4 has no answers",
		"Question 4 has no correct answers (points > 0)",
	}, got.Errors)
}
