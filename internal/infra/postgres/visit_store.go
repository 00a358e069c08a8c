package postgres

import (
	"context"
	"fmt"
	"time"

	"quiz-result-service/internal/domain"

	"github.com/uptrace/bun"
)

type visitModel struct {
	bun.BaseModel `bun:"table:visits"`

	ID        int64     `bun:"id,pk,autoincrement"`
	QuizID    int64     `bun:"quiz_id,notnull"`
	ResultID  int64     `bun:"result_id,notnull"`
	VisitType int       `bun:"visit_type,notnull"`
	Ref       string    `bun:"ref"`
	IP        string    `bun:"ip"`
	Agent     string    `bun:"agent"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

// VisitStore writes quiz completions to the visits table.
type VisitStore struct {
	db *bun.DB
}

func NewVisitStore(db *bun.DB) *VisitStore {
	return &VisitStore{db: db}
}

func (s *VisitStore) RecordVisit(ctx context.Context, visit domain.Visit) error {
	row := &visitModel{
		QuizID:    visit.QuizID,
		ResultID:  visit.ResultID,
		VisitType: visit.VisitType,
		Ref:       visit.Ref,
		IP:        visit.IP,
		Agent:     visit.Agent,
		CreatedAt: visit.CreatedAt,
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}
	return nil
}
