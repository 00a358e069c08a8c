package memory

import (
	"context"
	"sync"

	"quiz-result-service/internal/domain"
)

type sheetKey struct {
	quizID  int64
	takerID string
}

// SheetStore is an in-memory implementation of app.SheetRepository.
type SheetStore struct {
	mu     sync.RWMutex
	sheets map[sheetKey]domain.Selections
}

func NewSheetStore() *SheetStore {
	return &SheetStore{
		sheets: make(map[sheetKey]domain.Selections),
	}
}

func (s *SheetStore) Record(_ context.Context, quizID int64, takerID string, questionID, answerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := sheetKey{quizID: quizID, takerID: takerID}
	sheet, ok := s.sheets[key]
	if !ok {
		sheet = make(domain.Selections)
		s.sheets[key] = sheet
	}
	sheet[questionID] = answerID
	return nil
}

// Selections returns a copy of the taker's sheet; an unknown sheet is empty.
func (s *SheetStore) Selections(_ context.Context, quizID int64, takerID string) (domain.Selections, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sheet := s.sheets[sheetKey{quizID: quizID, takerID: takerID}]
	out := make(domain.Selections, len(sheet))
	for questionID, answerID := range sheet {
		out[questionID] = answerID
	}
	return out, nil
}

func (s *SheetStore) Clear(_ context.Context, quizID int64, takerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sheets, sheetKey{quizID: quizID, takerID: takerID})
	return nil
}
