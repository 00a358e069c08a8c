package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"quiz-result-service/internal/domain"
	"quiz-result-service/internal/scoring"

	"go.uber.org/zap"
)

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID int64) (domain.Quiz, error)
	ListQuizzes(ctx context.Context) ([]domain.Quiz, error)
}

// SheetRepository keeps in-progress answer sheets for takers answering one question at a time.
type SheetRepository interface {
	Record(ctx context.Context, quizID int64, takerID string, questionID, answerID int64) error
	Selections(ctx context.Context, quizID int64, takerID string) (domain.Selections, error)
	Clear(ctx context.Context, quizID int64, takerID string) error
}

// VisitRecorder persists quiz completions.
type VisitRecorder interface {
	RecordVisit(ctx context.Context, visit domain.Visit) error
}

// Outcome is what a taker sees after submitting a quiz.
type Outcome struct {
	Result           domain.Result       `json:"result"`
	Score            int                 `json:"score"`
	MaxScore         int                 `json:"maxScore"`
	ScoreDescription string              `json:"scoreDescription"`
	Calculation      scoring.Calculation `json:"calculation"`
}

// QuizFilter narrows the browse listing. Zero values match every quiz.
type QuizFilter struct {
	Type     domain.QuizType
	Featured bool
}

func (f QuizFilter) matches(quiz domain.Quiz) bool {
	if f.Type != 0 && quiz.QuizType != f.Type {
		return false
	}
	return !f.Featured || quiz.Featured
}

// Progress reports how much of an answer sheet is filled in.
type Progress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// QuizService contains the core quiz use cases.
type QuizService struct {
	quizzes QuizRepository
	sheets  SheetRepository
	visits  VisitRecorder
	log     *zap.Logger
	now     func() time.Time
}

func NewQuizService(quizzes QuizRepository, sheets SheetRepository, visits VisitRecorder, log *zap.Logger) *QuizService {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuizService{
		quizzes: quizzes,
		sheets:  sheets,
		visits:  visits,
		log:     log,
		now:     time.Now,
	}
}

// GetQuiz returns the taker-facing view of an active quiz.
func (s *QuizService) GetQuiz(ctx context.Context, quizID int64) (domain.Quiz, error) {
	quiz, err := s.activeQuiz(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	return quiz.Public(), nil
}

// ListQuizzes returns summaries of the active quizzes that match filter.
func (s *QuizService) ListQuizzes(ctx context.Context, filter QuizFilter) ([]domain.QuizSummary, error) {
	quizzes, err := s.quizzes.ListQuizzes(ctx)
	if err != nil {
		return nil, err
	}
	summaries := []domain.QuizSummary{}
	for _, quiz := range quizzes {
		if quiz.Status != domain.QuizStatusActive || !filter.matches(quiz) {
			continue
		}
		summaries = append(summaries, quiz.Summary())
	}
	return summaries, nil
}

// Submit scores a complete set of selections and records the visit.
func (s *QuizService) Submit(ctx context.Context, quizID int64, selected domain.Selections, meta domain.VisitMeta) (Outcome, error) {
	quiz, err := s.activeQuiz(ctx, quizID)
	if err != nil {
		return Outcome{}, err
	}
	if err := checkSubmission(quiz, selected); err != nil {
		return Outcome{}, err
	}

	scored, err := scoring.CalculateResult(quiz, selected)
	if err != nil {
		s.log.Error("quiz scoring failed",
			zap.Int64("quizId", quizID),
			zap.Stringer("quizType", quiz.QuizType),
			zap.Error(err))
		return Outcome{}, err
	}

	result, ok := quiz.ResultByID(scored.ResultID)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: result %d", domain.ErrNoMatchingResult, scored.ResultID)
	}
	result.Scores = nil

	visit := domain.Visit{
		QuizID:    quizID,
		ResultID:  result.ID,
		VisitType: domain.VisitTypeCompletion,
		Ref:       meta.Ref,
		IP:        meta.IP,
		Agent:     meta.Agent,
		CreatedAt: s.now(),
	}
	if err := s.visits.RecordVisit(ctx, visit); err != nil {
		s.log.Warn("record visit failed", zap.Int64("quizId", quizID), zap.Error(err))
	}

	s.log.Debug("quiz submitted",
		zap.Int64("quizId", quizID),
		zap.Int64("resultId", result.ID),
		zap.Int("score", scored.Score))

	return Outcome{
		Result:           result,
		Score:            scored.Score,
		MaxScore:         scored.MaxPossibleScore,
		ScoreDescription: scoring.GenerateScoreDescription(scored, quiz),
		Calculation:      scored.Calculation,
	}, nil
}

// RecordAnswer stores one selection on a taker's answer sheet.
func (s *QuizService) RecordAnswer(ctx context.Context, quizID int64, takerID string, questionID, answerID int64) (Progress, error) {
	quiz, err := s.activeQuiz(ctx, quizID)
	if err != nil {
		return Progress{}, err
	}
	if err := checkAnswer(quiz, questionID, answerID); err != nil {
		return Progress{}, err
	}
	if err := s.sheets.Record(ctx, quizID, takerID, questionID, answerID); err != nil {
		return Progress{}, err
	}
	selected, err := s.sheets.Selections(ctx, quizID, takerID)
	if err != nil {
		return Progress{}, err
	}
	return progressOf(quiz, selected), nil
}

// SubmitSheet scores the taker's stored answer sheet and clears it on success.
func (s *QuizService) SubmitSheet(ctx context.Context, quizID int64, takerID string, meta domain.VisitMeta) (Outcome, error) {
	selected, err := s.sheets.Selections(ctx, quizID, takerID)
	if err != nil {
		return Outcome{}, err
	}
	outcome, err := s.Submit(ctx, quizID, selected, meta)
	if err != nil {
		return Outcome{}, err
	}
	if err := s.sheets.Clear(ctx, quizID, takerID); err != nil {
		s.log.Warn("clear answer sheet failed", zap.Int64("quizId", quizID), zap.String("takerId", takerID), zap.Error(err))
	}
	return outcome, nil
}

// Validate checks a quiz's configuration regardless of its status.
func (s *QuizService) Validate(ctx context.Context, quizID int64) (scoring.Validation, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return scoring.Validation{}, err
	}
	return scoring.ValidateQuizConfiguration(quiz), nil
}

func (s *QuizService) activeQuiz(ctx context.Context, quizID int64) (domain.Quiz, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	if quiz.Status != domain.QuizStatusActive {
		return domain.Quiz{}, domain.ErrQuizInactive
	}
	return quiz, nil
}

// checkSubmission rejects selections that leave questions unanswered or pick answers from another question.
// Errors name the first offender in quiz question order, then unknown question ids ascending.
func checkSubmission(quiz domain.Quiz, selected domain.Selections) error {
	var missing []int64
	for _, question := range quiz.Questions {
		if _, ok := selected[question.ID]; !ok {
			missing = append(missing, question.ID)
		}
	}
	if len(missing) > 0 {
		return &domain.MissingQuestionsError{QuestionIDs: missing}
	}
	for _, question := range quiz.Questions {
		if err := checkAnswer(quiz, question.ID, selected[question.ID]); err != nil {
			return err
		}
	}
	var unknown []int64
	for questionID := range selected {
		if _, ok := quiz.QuestionByID(questionID); !ok {
			unknown = append(unknown, questionID)
		}
	}
	if len(unknown) > 0 {
		sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
		return fmt.Errorf("%w: %d", domain.ErrQuestionNotFound, unknown[0])
	}
	return nil
}

func checkAnswer(quiz domain.Quiz, questionID, answerID int64) error {
	question, ok := quiz.QuestionByID(questionID)
	if !ok {
		return fmt.Errorf("%w: %d", domain.ErrQuestionNotFound, questionID)
	}
	for _, answer := range question.Answers {
		if answer.ID == answerID {
			return nil
		}
	}
	return fmt.Errorf("%w: %d on question %d", domain.ErrAnswerNotFound, answerID, questionID)
}

func progressOf(quiz domain.Quiz, selected domain.Selections) Progress {
	answered := 0
	for _, question := range quiz.Questions {
		if _, ok := selected[question.ID]; ok {
			answered++
		}
	}
	return Progress{Answered: answered, Total: len(quiz.Questions)}
}
