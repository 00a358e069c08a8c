package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz-result-service/internal/app"
	"quiz-result-service/internal/config"
	"quiz-result-service/internal/domain"
	"quiz-result-service/internal/infra/memory"
	pgstore "quiz-result-service/internal/infra/postgres"
	rediscache "quiz-result-service/internal/infra/redis"
	"quiz-result-service/internal/logger"
	transport "quiz-result-service/internal/transport/http"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)
	defer log.Sync()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	loader, err := quizLoader(cfg, pool, log)
	if err != nil {
		return err
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var quizRepo app.QuizRepository
	if redisClient != nil {
		quizRepo = rediscache.NewQuizRepository(redisClient, loader, quizTTL, log)
	} else {
		quizRepo = memory.NewQuizRepository(loader, quizTTL)
	}

	var sheets app.SheetRepository
	if redisClient != nil {
		sheets = rediscache.NewSheetStore(redisClient, redisTTL)
	} else {
		sheets = memory.NewSheetStore()
	}

	var visits app.VisitRecorder = memory.NewVisitLog()
	if cfg.Postgres.URL != "" {
		db := openBunDB(cfg.Postgres.URL)
		defer db.Close()
		visits = pgstore.NewVisitStore(db)
	}

	service := app.NewQuizService(quizRepo, sheets, visits, log)
	router := transport.NewRouter(service, log, transport.RouterOptions{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		RequestTimeout: config.TTLDuration(cfg.HTTP.RequestTimeout, 30*time.Second),
	})

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting quiz service", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server...")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// quizLoader picks Postgres, then fixture files, then the built-in demo quizzes.
func quizLoader(cfg config.Config, pool *pgxpool.Pool, log *zap.Logger) (memory.QuizLoader, error) {
	if pool != nil {
		return pgstore.NewQuizLoader(pool), nil
	}
	if cfg.Quiz.FixturesDir != "" {
		quizzes, err := memory.LoadQuizzesDir(cfg.Quiz.FixturesDir)
		if err != nil {
			return nil, err
		}
		log.Info("loaded quiz fixtures", zap.String("dir", cfg.Quiz.FixturesDir), zap.Int("count", len(quizzes)))
		return memory.NewStaticQuizLoader(quizzes), nil
	}
	return memory.NewStaticQuizLoader(sampleQuizzes()), nil
}

// sampleQuizzes provides one quiz of each type so the service is usable without a database.
func sampleQuizzes() map[int64]domain.Quiz {
	return map[int64]domain.Quiz{
		1: {
			ID:       1,
			Title:    "Which season are you?",
			QuizType: domain.QuizTypePersonality,
			Status:   domain.QuizStatusActive,
			Questions: []domain.Question{
				{ID: 1, QuizID: 1, Title: "Pick a drink", Answers: []domain.Answer{
					{ID: 1, QuestionID: 1, Title: "Iced lemonade", Scores: []domain.Score{{ID: 1, AnswerID: 1, ResultID: 1, ScoreValue: 2}}},
					{ID: 2, QuestionID: 1, Title: "Hot cocoa", Scores: []domain.Score{{ID: 2, AnswerID: 2, ResultID: 2, ScoreValue: 2}}},
				}},
				{ID: 2, QuizID: 1, Title: "Pick a weekend", Answers: []domain.Answer{
					{ID: 3, QuestionID: 2, Title: "Beach", Scores: []domain.Score{{ID: 3, AnswerID: 3, ResultID: 1, ScoreValue: 1}}},
					{ID: 4, QuestionID: 2, Title: "Fireplace and a book", Scores: []domain.Score{{ID: 4, AnswerID: 4, ResultID: 2, ScoreValue: 1}}},
				}},
			},
			Results: []domain.Result{
				{ID: 1, QuizID: 1, Title: "Summer"},
				{ID: 2, QuizID: 1, Title: "Winter"},
			},
		},
		2: {
			ID:       2,
			Title:    "Capital cities",
			QuizType: domain.QuizTypeKnowledge,
			Status:   domain.QuizStatusActive,
			Questions: []domain.Question{
				{ID: 5, QuizID: 2, Title: "Capital of France?", Answers: []domain.Answer{
					{ID: 5, QuestionID: 5, Title: "Paris", Points: 1},
					{ID: 6, QuestionID: 5, Title: "Lyon", Points: 0},
				}},
				{ID: 6, QuizID: 2, Title: "Capital of Japan?", Answers: []domain.Answer{
					{ID: 7, QuestionID: 6, Title: "Osaka", Points: 0},
					{ID: 8, QuestionID: 6, Title: "Tokyo", Points: 1},
				}},
			},
			Results: []domain.Result{
				{ID: 3, QuizID: 2, Title: "Time to travel more", PointFrom: 0, PointTo: 1},
				{ID: 4, QuizID: 2, Title: "Globetrotter", PointFrom: 2, PointTo: 2},
			},
		},
		3: {
			ID:       3,
			Title:    "Riddle of the day",
			QuizType: domain.QuizTypePuzzle,
			Status:   domain.QuizStatusActive,
			Questions: []domain.Question{
				{ID: 7, QuizID: 3, Title: "What gets wetter the more it dries?", Answers: []domain.Answer{
					{ID: 9, QuestionID: 7, Title: "A towel", Points: 1},
					{ID: 10, QuestionID: 7, Title: "A sponge", Points: 0},
				}},
			},
			Results: []domain.Result{
				{ID: 5, QuizID: 3, Title: "Solved it", PointFrom: 1, PointTo: 1},
				{ID: 6, QuizID: 3, Title: "Not quite", PointFrom: 0, PointTo: 0},
			},
		},
	}
}
