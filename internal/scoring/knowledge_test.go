package scoring_test

import (
	"testing"

	"quiz-result-service/internal/domain"
	"quiz-result-service/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeSumsPointsIntoBand(t *testing.T) {
	got, err := scoring.CalculateResult(knowledgeQuiz(), domain.Selections{1: 11, 2: 22, 3: 32})
	require.NoError(t, err)

	assert.Equal(t, int64(202), got.ResultID)
	assert.Equal(t, 3, got.Score)
	assert.Equal(t, 5, got.MaxPossibleScore)

	details, ok := got.Calculation.Details.(*scoring.KnowledgeDetails)
	require.True(t, ok)
	assert.Equal(t, 3, details.TotalPoints)
	assert.Equal(t, 5, details.MaxPossiblePoints)
	assert.Equal(t, 2, details.CorrectAnswers)
	assert.Equal(t, 3, details.TotalQuestions)
	assert.Equal(t, []scoring.QuestionScore{
		{QuestionID: 1, AnswerID: 11, Points: 2, IsCorrect: true},
		{QuestionID: 2, AnswerID: 22, Points: 1, IsCorrect: true},
		{QuestionID: 3, AnswerID: 32, Points: 0, IsCorrect: false},
	}, details.QuestionScores)
}

func TestKnowledgeBandsAreInclusive(t *testing.T) {
	quiz := domain.Quiz{
		QuizType: domain.QuizTypeKnowledge,
		Questions: []domain.Question{
			{ID: 1, Answers: []domain.Answer{{ID: 1, Points: 5}, {ID: 2, Points: 10}, {ID: 3, Points: 4}}},
		},
		Results: []domain.Result{
			{ID: 1, PointFrom: 0, PointTo: 4},
			{ID: 2, PointFrom: 5, PointTo: 10},
		},
	}

	for _, answerID := range []int64{1, 2} {
		got, err := scoring.CalculateResult(quiz, domain.Selections{1: answerID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.ResultID, "answer %d", answerID)
	}

	got, err := scoring.CalculateResult(quiz, domain.Selections{1: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ResultID)
}

func TestKnowledgeNoMatchingBand(t *testing.T) {
	quiz := domain.Quiz{
		QuizType: domain.QuizTypeKnowledge,
		Questions: []domain.Question{
			{ID: 1, Answers: []domain.Answer{{ID: 1, Points: 6}}},
			{ID: 2, Answers: []domain.Answer{{ID: 2, Points: 5}}},
		},
		Results: []domain.Result{
			{ID: 1, PointFrom: 0, PointTo: 5},
			{ID: 2, PointFrom: 6, PointTo: 10},
		},
	}

	_, err := scoring.CalculateResult(quiz, domain.Selections{1: 1, 2: 2})
	require.ErrorIs(t, err, domain.ErrNoMatchingResult)
	assert.Contains(t, err.Error(), "11")
}

func TestKnowledgeMaxScoreDependsOnlyOnResults(t *testing.T) {
	quiz := knowledgeQuiz()
	selections := []domain.Selections{
		{1: 11, 2: 22, 3: 31},
		{1: 12, 2: 21, 3: 32},
		{1: 11, 2: 21, 3: 32},
	}
	for _, selected := range selections {
		got, err := scoring.CalculateResult(quiz, selected)
		require.NoError(t, err)
		assert.Equal(t, 5, got.MaxPossibleScore)
	}
}

func TestKnowledgeNegativePointsCountAgainstTotal(t *testing.T) {
	quiz := domain.Quiz{
		QuizType: domain.QuizTypeKnowledge,
		Questions: []domain.Question{
			{ID: 1, Answers: []domain.Answer{{ID: 1, Points: 3}}},
			{ID: 2, Answers: []domain.Answer{{ID: 2, Points: -2}}},
		},
		Results: []domain.Result{{ID: 1, PointFrom: 0, PointTo: 1}, {ID: 2, PointFrom: 2, PointTo: 3}},
	}

	got, err := scoring.CalculateResult(quiz, domain.Selections{1: 1, 2: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ResultID)
	assert.Equal(t, 1, got.Score)

	details := got.Calculation.Details.(*scoring.KnowledgeDetails)
	assert.Equal(t, 1, details.CorrectAnswers)
}
