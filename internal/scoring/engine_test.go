package scoring_test

import (
	"encoding/json"
	"testing"

	"quiz-result-service/internal/domain"
	"quiz-result-service/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateResultUnsupportedType(t *testing.T) {
	quiz := knowledgeQuiz()
	quiz.QuizType = 7

	_, err := scoring.CalculateResult(quiz, domain.Selections{1: 11, 2: 22, 3: 31})
	require.ErrorIs(t, err, domain.ErrUnsupportedQuizType)
}

func TestCalculateResultDispatchesOnType(t *testing.T) {
	tests := []struct {
		name     string
		quiz     domain.Quiz
		selected domain.Selections
		wantType scoring.CalculationType
	}{
		{"personality", personalityQuiz(), domain.Selections{1: 11, 2: 21}, scoring.CalculationPersonality},
		{"knowledge", knowledgeQuiz(), domain.Selections{1: 11, 2: 22, 3: 31}, scoring.CalculationKnowledge},
		{"puzzle", puzzleQuiz(), domain.Selections{1: 1}, scoring.CalculationPuzzle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scoring.CalculateResult(tt.quiz, tt.selected)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, got.Calculation.Type)
			assert.NotNil(t, got.Calculation.Details)
		})
	}
}

func TestCalculationMarshalsTaggedDetails(t *testing.T) {
	got, err := scoring.CalculateResult(puzzleQuiz(), domain.Selections{1: 2})
	require.NoError(t, err)

	raw, err := json.Marshal(got)
	require.NoError(t, err)

	var decoded struct {
		ResultID    int64 `json:"resultId"`
		Calculation struct {
			Type    string         `json:"type"`
			Details map[string]any `json:"details"`
		} `json:"calculation"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, int64(302), decoded.ResultID)
	assert.Equal(t, "puzzle", decoded.Calculation.Type)
	assert.Equal(t, false, decoded.Calculation.Details["isCorrect"])
	assert.Equal(t, float64(1), decoded.Calculation.Details["correctAnswerId"])
}

func TestGenerateScoreDescription(t *testing.T) {
	result := scoring.ScoringResult{Score: 3, MaxPossibleScore: 5}

	assert.Equal(t, "", scoring.GenerateScoreDescription(result, personalityQuiz()))
	assert.Equal(t, "3 of 5", scoring.GenerateScoreDescription(result, knowledgeQuiz()))
	assert.Equal(t, "3 of 5", scoring.GenerateScoreDescription(result, puzzleQuiz()))

	unknown := knowledgeQuiz()
	unknown.QuizType = 0
	assert.Equal(t, "", scoring.GenerateScoreDescription(result, unknown))
}

func TestCalculateResultIsSafeForConcurrentUse(t *testing.T) {
	quiz := personalityQuiz()
	selected := domain.Selections{1: 12, 2: 22}

	want, err := scoring.CalculateResult(quiz, selected)
	require.NoError(t, err)

	done := make(chan scoring.ScoringResult, 16)
	for i := 0; i < cap(done); i++ {
		go func() {
			got, _ := scoring.CalculateResult(quiz, selected)
			done <- got
		}()
	}
	for i := 0; i < cap(done); i++ {
		got := <-done
		assert.Equal(t, want.ResultID, got.ResultID)
		assert.Equal(t, want.Score, got.Score)
	}
}
