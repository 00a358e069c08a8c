package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"quiz-result-service/internal/domain"
	"quiz-result-service/internal/infra/memory"
	"quiz-result-service/internal/scoring"

	"github.com/spf13/cobra"
)

type scoreOutput struct {
	scoring.ScoringResult
	ScoreDescription string `json:"scoreDescription"`
}

// NewScoreCmd scores a quiz file offline, handy when authoring result bands.
func NewScoreCmd() *cobra.Command {
	var answers []string
	cmd := &cobra.Command{
		Use:   "score <quiz-file>",
		Short: "Score answers against a quiz definition file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quiz, err := memory.LoadQuizFile(args[0])
			if err != nil {
				return err
			}
			selected, err := parseSelections(answers)
			if err != nil {
				return err
			}
			result, err := scoring.CalculateResult(quiz, selected)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(scoreOutput{
				ScoringResult:    result,
				ScoreDescription: scoring.GenerateScoreDescription(result, quiz),
			})
		},
	}
	cmd.Flags().StringSliceVarP(&answers, "answer", "a", nil, "selected answer as questionId=answerId (repeatable)")
	return cmd
}

func parseSelections(pairs []string) (domain.Selections, error) {
	selected := make(domain.Selections, len(pairs))
	for _, pair := range pairs {
		q, a, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid answer %q, want questionId=answerId", pair)
		}
		questionID, err := strconv.ParseInt(strings.TrimSpace(q), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid question id in %q: %w", pair, err)
		}
		answerID, err := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid answer id in %q: %w", pair, err)
		}
		selected[questionID] = answerID
	}
	return selected, nil
}
