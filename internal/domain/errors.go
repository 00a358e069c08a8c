package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuizInactive is returned when a quiz exists but does not accept submissions.
	ErrQuizInactive = errors.New("quiz not available")
	// ErrQuestionNotFound indicates a submitted question ID is invalid.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrAnswerNotFound indicates a submitted answer ID does not belong to its question.
	ErrAnswerNotFound = errors.New("answer not found")
	// ErrIncompleteSubmission is returned when some questions were left unanswered.
	ErrIncompleteSubmission = errors.New("all questions must be answered")

	// ErrUnsupportedQuizType is returned for a quiz type outside personality, knowledge and puzzle.
	ErrUnsupportedQuizType = errors.New("unsupported quiz type")
	// ErrNoMatchingResult means the computed score maps to no result of the quiz.
	ErrNoMatchingResult = errors.New("no matching result")
	// ErrInvalidPuzzleConfiguration means a puzzle quiz does not have the expected shape.
	ErrInvalidPuzzleConfiguration = errors.New("invalid puzzle quiz configuration")
)

// MissingQuestionsError lists the questions a submission left unanswered.
type MissingQuestionsError struct {
	QuestionIDs []int64
}

func (e *MissingQuestionsError) Error() string {
	ids := make([]string, len(e.QuestionIDs))
	for i, id := range e.QuestionIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("%s: missing %s", ErrIncompleteSubmission, strings.Join(ids, ","))
}

func (e *MissingQuestionsError) Unwrap() error {
	return ErrIncompleteSubmission
}

// IsConfigurationError reports whether err comes from a misconfigured quiz rather than user input.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrUnsupportedQuizType) ||
		errors.Is(err, ErrNoMatchingResult) ||
		errors.Is(err, ErrInvalidPuzzleConfiguration)
}
