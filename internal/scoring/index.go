package scoring

import (
	"sort"

	"quiz-result-service/internal/domain"
)

type indexedAnswer struct {
	questionID int64
	answer     *domain.Answer
}

// answerIndex maps answer IDs to their records across the whole quiz.
type answerIndex map[int64]indexedAnswer

func newAnswerIndex(quiz domain.Quiz) answerIndex {
	idx := make(answerIndex)
	for qi := range quiz.Questions {
		question := &quiz.Questions[qi]
		for ai := range question.Answers {
			answer := &question.Answers[ai]
			// First occurrence wins when IDs repeat.
			if _, ok := idx[answer.ID]; !ok {
				idx[answer.ID] = indexedAnswer{questionID: question.ID, answer: answer}
			}
		}
	}
	return idx
}

type selection struct {
	questionID int64
	answerID   int64
}

// orderedSelections returns selections in question order, followed by selections for unknown
// questions in ascending ID order.
func orderedSelections(quiz domain.Quiz, selected domain.Selections) []selection {
	out := make([]selection, 0, len(selected))
	seen := make(map[int64]struct{}, len(quiz.Questions))
	for _, question := range quiz.Questions {
		if _, dup := seen[question.ID]; dup {
			continue
		}
		seen[question.ID] = struct{}{}
		if answerID, ok := selected[question.ID]; ok {
			out = append(out, selection{questionID: question.ID, answerID: answerID})
		}
	}

	var extra []selection
	for questionID, answerID := range selected {
		if _, ok := seen[questionID]; !ok {
			extra = append(extra, selection{questionID: questionID, answerID: answerID})
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].questionID < extra[j].questionID })
	return append(out, extra...)
}
