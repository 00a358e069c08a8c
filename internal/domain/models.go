package domain

import "time"

// QuizType selects the scoring algorithm and the configuration rules that apply to a quiz.
type QuizType int

const (
	QuizTypePersonality QuizType = 1
	QuizTypeKnowledge   QuizType = 2
	QuizTypePuzzle      QuizType = 3
)

func (t QuizType) String() string {
	switch t {
	case QuizTypePersonality:
		return "personality"
	case QuizTypeKnowledge:
		return "knowledge"
	case QuizTypePuzzle:
		return "puzzle"
	default:
		return "unknown"
	}
}

// Valid reports whether t is one of the known quiz types.
func (t QuizType) Valid() bool {
	return t >= QuizTypePersonality && t <= QuizTypePuzzle
}

// QuizStatus controls whether a quiz accepts submissions.
type QuizStatus int

const (
	QuizStatusActive   QuizStatus = 1
	QuizStatusInactive QuizStatus = 2
)

// Score is a weighted edge between an answer and a personality result.
type Score struct {
	ID         int64 `json:"id" yaml:"id"`
	AnswerID   int64 `json:"answerId" yaml:"answerId"`
	ResultID   int64 `json:"resultId" yaml:"resultId"`
	ScoreValue int   `json:"scoreValue" yaml:"scoreValue"`
}

// Answer is one selectable option of a question.
type Answer struct {
	ID         int64   `json:"id" yaml:"id"`
	QuestionID int64   `json:"questionId,omitempty" yaml:"questionId"`
	Title      string  `json:"title" yaml:"title"`
	Points     int     `json:"points" yaml:"points"`
	Scores     []Score `json:"scores,omitempty" yaml:"scores"`
}

// Question holds its answers in display order.
type Question struct {
	ID      int64    `json:"id" yaml:"id"`
	QuizID  int64    `json:"quizId,omitempty" yaml:"quizId"`
	Title   string   `json:"title" yaml:"title"`
	Answers []Answer `json:"answers" yaml:"answers"`
}

// Result is an outcome a taker can receive. PointFrom/PointTo form the result band used by
// knowledge and puzzle quizzes.
type Result struct {
	ID        int64   `json:"id" yaml:"id"`
	QuizID    int64   `json:"quizId,omitempty" yaml:"quizId"`
	Title     string  `json:"title" yaml:"title"`
	SubTitle  string  `json:"subTitle,omitempty" yaml:"subTitle"`
	PointFrom int     `json:"pointFrom" yaml:"pointFrom"`
	PointTo   int     `json:"pointTo" yaml:"pointTo"`
	Scores    []Score `json:"scores,omitempty" yaml:"scores"`
}

// Quiz is a fully populated quiz snapshot. It is treated as immutable once loaded.
type Quiz struct {
	ID        int64      `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	SubTitle  string     `json:"subTitle,omitempty" yaml:"subTitle"`
	QuizType  QuizType   `json:"quizType" yaml:"quizType"`
	Status    QuizStatus `json:"status" yaml:"status"`
	Featured  bool       `json:"featured,omitempty" yaml:"featured"`
	Questions []Question `json:"questions" yaml:"questions"`
	Results   []Result   `json:"results" yaml:"results"`
}

// QuizSummary is the browse listing entry for a quiz.
type QuizSummary struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	SubTitle      string   `json:"subTitle,omitempty"`
	QuizType      QuizType `json:"quizType"`
	Featured      bool     `json:"featured,omitempty"`
	QuestionCount int      `json:"questionCount"`
}

// Summary describes the quiz without any of its questions or results.
func (q Quiz) Summary() QuizSummary {
	return QuizSummary{
		ID:            q.ID,
		Title:         q.Title,
		SubTitle:      q.SubTitle,
		QuizType:      q.QuizType,
		Featured:      q.Featured,
		QuestionCount: len(q.Questions),
	}
}

// Public returns a copy of the quiz without points and score edges so it can be shown to takers.
func (q Quiz) Public() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		answers := make([]Answer, len(question.Answers))
		for j, answer := range question.Answers {
			answers[j] = Answer{ID: answer.ID, QuestionID: answer.QuestionID, Title: answer.Title}
		}
		question.Answers = answers
		out.Questions[i] = question
	}
	out.Results = make([]Result, len(q.Results))
	for i, result := range q.Results {
		result.Scores = nil
		out.Results[i] = result
	}
	return out
}

// QuestionByID finds a question by identifier.
func (q Quiz) QuestionByID(id int64) (Question, bool) {
	for _, question := range q.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}

// ResultByID finds a result by identifier.
func (q Quiz) ResultByID(id int64) (Result, bool) {
	for _, result := range q.Results {
		if result.ID == id {
			return result, true
		}
	}
	return Result{}, false
}

// Selections maps a question ID to the answer ID chosen for it.
type Selections map[int64]int64

// VisitTypeCompletion marks a visit recorded when a taker finishes a quiz.
const VisitTypeCompletion = 1

// VisitMeta is request metadata attached to a recorded visit.
type VisitMeta struct {
	Ref   string
	IP    string
	Agent string
}

// Visit records that a taker received a result.
type Visit struct {
	QuizID    int64
	ResultID  int64
	VisitType int
	Ref       string
	IP        string
	Agent     string
	CreatedAt time.Time
}
