package redis

import (
	"context"
	"testing"
	"time"

	"quiz-result-service/internal/domain"
	"quiz-result-service/internal/infra/memory"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestQuizRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		QuizLoader: memory.NewStaticQuizLoader(map[int64]domain.Quiz{
			1: sampleQuiz(),
		}),
	}
	core, logs := observer.New(zap.WarnLevel)
	repo := NewQuizRepository(client, loader, time.Minute, zap.New(core))

	_, err = repo.GetQuiz(context.Background(), 1)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("quiz:1") {
		t.Fatalf("expected quiz to be cached in redis")
	}
	if ttl := mr.TTL("quiz:1"); ttl < time.Minute || ttl > time.Minute+6*time.Second {
		t.Fatalf("expected jittered ttl around a minute, got %v", ttl)
	}

	// Second call should hit cache, loader not incremented.
	quiz, err := repo.GetQuiz(context.Background(), 1)
	if err != nil {
		t.Fatalf("get cached quiz: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	// The cached copy keeps everything scoring needs.
	if got := quiz.Questions[0].Answers[1].Points; got != 1 {
		t.Fatalf("expected points to survive caching, got %d", got)
	}
	if quiz.QuizType != domain.QuizTypeKnowledge || len(quiz.Results) != 2 {
		t.Fatalf("unexpected cached quiz %+v", quiz)
	}

	removed, err := repo.Invalidate(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected one cached quiz removed, got %d", removed)
	}
	_, _ = repo.GetQuiz(context.Background(), 1)
	if loader.calls != 2 {
		t.Fatalf("expected reload after invalidate, loader calls=%d", loader.calls)
	}
	// Plain cache misses are not worth a warning.
	if logs.Len() != 0 {
		t.Fatalf("expected no warnings, got %v", logs.All())
	}
}

func TestQuizRepositoryFallsBackWhenRedisFails(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	core, logs := observer.New(zap.WarnLevel)
	loader := &countingLoader{QuizLoader: memory.NewStaticQuizLoader(map[int64]domain.Quiz{1: sampleQuiz()})}
	client := newClient(mr)
	// Open the pooled connection before the server starts failing.
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	repo := NewQuizRepository(client, loader, time.Minute, zap.New(core))
	mr.SetError("ERR simulated outage")

	quiz, err := repo.GetQuiz(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected loader fallback, got %v", err)
	}
	if quiz.ID != 1 || loader.calls != 1 {
		t.Fatalf("unexpected quiz %+v after %d loader calls", quiz, loader.calls)
	}
	if logs.FilterMessage("read cached quiz failed").Len() == 0 {
		t.Fatalf("expected the redis read failure to be logged, got %v", logs.All())
	}
}

func TestQuizRepositoryListsFromLoader(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	second := sampleQuiz()
	second.ID = 2
	loader := memory.NewStaticQuizLoader(map[int64]domain.Quiz{2: second, 1: sampleQuiz()})
	repo := NewQuizRepository(newClient(mr), loader, time.Minute, nil)

	quizzes, err := repo.ListQuizzes(context.Background())
	if err != nil {
		t.Fatalf("list quizzes: %v", err)
	}
	if len(quizzes) != 2 || quizzes[0].ID != 1 || quizzes[1].ID != 2 {
		t.Fatalf("unexpected listing %+v", quizzes)
	}
}

func TestQuizRepositoryIgnoresCorruptEntries(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	_ = mr.Set("quiz:1", "{not json")
	loader := &countingLoader{QuizLoader: memory.NewStaticQuizLoader(map[int64]domain.Quiz{1: sampleQuiz()})}
	core, logs := observer.New(zap.WarnLevel)
	repo := NewQuizRepository(newClient(mr), loader, time.Minute, zap.New(core))

	if _, err := repo.GetQuiz(context.Background(), 1); err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected fallback to loader, calls=%d", loader.calls)
	}
	if logs.FilterMessage("discarding corrupt cached quiz").Len() == 0 {
		t.Fatalf("expected corrupt entry warning, got %v", logs.All())
	}
}

type countingLoader struct {
	memory.QuizLoader
	calls int
}

func (l *countingLoader) LoadQuiz(ctx context.Context, quizID int64) (domain.Quiz, error) {
	l.calls++
	return l.QuizLoader.LoadQuiz(ctx, quizID)
}

func sampleQuiz() domain.Quiz {
	return domain.Quiz{
		ID:       1,
		QuizType: domain.QuizTypeKnowledge,
		Status:   domain.QuizStatusActive,
		Questions: []domain.Question{
			{
				ID:    1,
				Title: "What is 2 + 2?",
				Answers: []domain.Answer{
					{ID: 1, Title: "3", Points: 0},
					{ID: 2, Title: "4", Points: 1},
				},
			},
		},
		Results: []domain.Result{
			{ID: 1, PointFrom: 0, PointTo: 0},
			{ID: 2, PointFrom: 1, PointTo: 1},
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
