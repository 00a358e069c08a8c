package memory

import (
	"context"
	"sync"

	"quiz-result-service/internal/domain"
)

// VisitLog keeps recorded visits in memory, used when Postgres is not configured.
type VisitLog struct {
	mu     sync.Mutex
	visits []domain.Visit
}

func NewVisitLog() *VisitLog {
	return &VisitLog{}
}

func (l *VisitLog) RecordVisit(_ context.Context, visit domain.Visit) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.visits = append(l.visits, visit)
	return nil
}

// Visits returns a snapshot of everything recorded so far.
func (l *VisitLog) Visits() []domain.Visit {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Visit(nil), l.visits...)
}
