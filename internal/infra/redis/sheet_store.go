package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"quiz-result-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

// SheetStore keeps answer sheets in Redis so any instance can finish a taker's quiz.
// Sheets are stored as: HSET quiz:sheet:{quizID}:{takerID} {questionID} {answerID}
type SheetStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSheetStore(client *redis.Client, ttl time.Duration) *SheetStore {
	return &SheetStore{client: client, ttl: ttl}
}

func (s *SheetStore) Record(ctx context.Context, quizID int64, takerID string, questionID, answerID int64) error {
	key := s.key(quizID, takerID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, strconv.FormatInt(questionID, 10), answerID)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record answer: %w", err)
	}
	return nil
}

func (s *SheetStore) Selections(ctx context.Context, quizID int64, takerID string) (domain.Selections, error) {
	raw, err := s.client.HGetAll(ctx, s.key(quizID, takerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load answer sheet: %w", err)
	}
	selected := make(domain.Selections, len(raw))
	for field, value := range raw {
		questionID, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("answer sheet %s: bad question id %q: %w", s.key(quizID, takerID), field, err)
		}
		answerID, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("answer sheet %s: bad answer %q for question %d: %w", s.key(quizID, takerID), value, questionID, err)
		}
		selected[questionID] = answerID
	}
	return selected, nil
}

func (s *SheetStore) Clear(ctx context.Context, quizID int64, takerID string) error {
	return s.client.Del(ctx, s.key(quizID, takerID)).Err()
}

func (s *SheetStore) key(quizID int64, takerID string) string {
	return "quiz:sheet:" + strconv.FormatInt(quizID, 10) + ":" + takerID
}
