package cli

import (
	"fmt"
	"strconv"

	"quiz-result-service/internal/config"
	rediscache "quiz-result-service/internal/infra/redis"
	"quiz-result-service/internal/logger"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewInvalidateCmd drops cached quiz snapshots from Redis so edited quizzes are reloaded.
func NewInvalidateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate <quiz-id>...",
		Short: "Remove cached quizzes from Redis",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quizIDs := make([]int64, len(args))
			for i, arg := range args {
				quizID, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid quiz id %q", arg)
				}
				quizIDs[i] = quizID
			}

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Redis.Addr == "" {
				return fmt.Errorf("redis is not configured; quizzes are only cached in process memory")
			}
			log := logger.New(cfg.Log)
			defer log.Sync()

			client := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer client.Close()

			repo := rediscache.NewQuizRepository(client, nil, 0, log)
			removed, err := repo.Invalidate(cmd.Context(), quizIDs...)
			if err != nil {
				return fmt.Errorf("invalidate quizzes: %w", err)
			}
			log.Info("invalidated cached quizzes", zap.Int64s("quizIds", quizIDs), zap.Int64("removed", removed))
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d of %d cached quiz(zes)\n", removed, len(quizIDs))
			return nil
		},
	}
}
