package cli

import (
	"fmt"

	"quiz-result-service/internal/infra/memory"
	"quiz-result-service/internal/scoring"

	"github.com/spf13/cobra"
)

// NewValidateCmd checks quiz files before they are published.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <quiz-file>...",
		Short: "Validate quiz definition files (YAML or JSON)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			invalid := 0
			for _, path := range args {
				quiz, err := memory.LoadQuizFile(path)
				if err != nil {
					return err
				}
				validation := scoring.ValidateQuizConfiguration(quiz)
				if validation.IsValid {
					fmt.Fprintf(out, "%s: quiz %d (%s) is valid\n", path, quiz.ID, quiz.QuizType)
					continue
				}
				invalid++
				fmt.Fprintf(out, "%s: quiz %d (%s) has %d problem(s)\n", path, quiz.ID, quiz.QuizType, len(validation.Errors))
				for _, msg := range validation.Errors {
					fmt.Fprintf(out, "  - %s\n", msg)
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d quiz file(s) invalid", invalid, len(args))
			}
			return nil
		},
	}
}
