package scoring_test

import "quiz-result-service/internal/domain"

// personalityQuiz has two questions and three results:
//
//	q1: a11 -> r1:+3, r2:+1   a12 -> r2:+2, r3:+1
//	q2: a21 -> r1:+2          a22 -> r2:+4, r3:-1
func personalityQuiz() domain.Quiz {
	return domain.Quiz{
		ID:       10,
		QuizType: domain.QuizTypePersonality,
		Status:   domain.QuizStatusActive,
		Questions: []domain.Question{
			{ID: 1, Answers: []domain.Answer{
				{ID: 11, Scores: []domain.Score{{AnswerID: 11, ResultID: 101, ScoreValue: 3}, {AnswerID: 11, ResultID: 102, ScoreValue: 1}}},
				{ID: 12, Scores: []domain.Score{{AnswerID: 12, ResultID: 102, ScoreValue: 2}, {AnswerID: 12, ResultID: 103, ScoreValue: 1}}},
			}},
			{ID: 2, Answers: []domain.Answer{
				{ID: 21, Scores: []domain.Score{{AnswerID: 21, ResultID: 101, ScoreValue: 2}}},
				{ID: 22, Scores: []domain.Score{{AnswerID: 22, ResultID: 102, ScoreValue: 4}, {AnswerID: 22, ResultID: 103, ScoreValue: -1}}},
			}},
		},
		Results: []domain.Result{{ID: 101}, {ID: 102}, {ID: 103}},
	}
}

// knowledgeQuiz has three questions worth up to 2+1+2 points and bands [0,2] [3,4] [5,5].
func knowledgeQuiz() domain.Quiz {
	return domain.Quiz{
		ID:       20,
		QuizType: domain.QuizTypeKnowledge,
		Status:   domain.QuizStatusActive,
		Questions: []domain.Question{
			{ID: 1, Answers: []domain.Answer{{ID: 11, Points: 2}, {ID: 12, Points: 0}}},
			{ID: 2, Answers: []domain.Answer{{ID: 21, Points: 0}, {ID: 22, Points: 1}}},
			{ID: 3, Answers: []domain.Answer{{ID: 31, Points: 2}, {ID: 32, Points: 0}}},
		},
		Results: []domain.Result{
			{ID: 201, PointFrom: 0, PointTo: 2},
			{ID: 202, PointFrom: 3, PointTo: 4},
			{ID: 203, PointFrom: 5, PointTo: 5},
		},
	}
}

func puzzleQuiz() domain.Quiz {
	return domain.Quiz{
		ID:       30,
		QuizType: domain.QuizTypePuzzle,
		Status:   domain.QuizStatusActive,
		Questions: []domain.Question{
			{ID: 1, Answers: []domain.Answer{{ID: 1, Points: 1}, {ID: 2, Points: 0}}},
		},
		Results: []domain.Result{
			{ID: 301, PointFrom: 1, PointTo: 1},
			{ID: 302, PointFrom: 0, PointTo: 0},
		},
	}
}
