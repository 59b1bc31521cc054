package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
)

var askShowSources bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Retrieves the most relevant chunks for the question and generates a
grounded answer from them. Requires a running answer backend.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowSources, "sources", false, "list the chunks the answer is based on")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if engine == nil {
		return errors.New("engine not configured")
	}
	if answerService == nil {
		return fmt.Errorf("answer generation is not configured: %w", domain.ErrAnswerUnavailable)
	}

	ctx := context.Background()
	cfg := retrievalConfig()

	results, err := engine.Search(ctx, question, cfg)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	answer, err := answerService.GenerateAnswer(ctx, question, results, cfg)
	if err != nil {
		return fmt.Errorf("answer generation failed: %w", err)
	}

	cmd.Println(answer.Text)

	if answer.Confidence > 0 {
		cmd.Printf("\nConfidence: %.0f%%\n", answer.Confidence*100)
	}

	if len(answer.FollowUps) > 0 {
		cmd.Println("\nFollow-up questions:")
		for _, q := range answer.FollowUps {
			cmd.Printf("  - %s\n", q)
		}
	}

	if askShowSources && len(results) > 0 {
		cmd.Println("\nSources:")
		for i := range results {
			meta := results[i].Chunk.Metadata
			if meta.PageNumber > 0 {
				cmd.Printf("  [%d] %s, page %d (%.2f)\n", i+1, meta.SourceFileName, meta.PageNumber, results[i].Score)
			} else {
				cmd.Printf("  [%d] %s (%.2f)\n", i+1, meta.SourceFileName, results[i].Score)
			}
		}
	}

	return nil
}
