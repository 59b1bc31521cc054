package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
)

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards [topic]",
	Short: "Generate study flashcards for a topic",
	Long: `Retrieves the chunks most relevant to the topic and distils them into
question and answer study cards. Requires a running answer backend.`,
	Args: cobra.ExactArgs(1),
	RunE: runFlashcards,
}

func init() {
	rootCmd.AddCommand(flashcardsCmd)
}

func runFlashcards(cmd *cobra.Command, args []string) error {
	topic := args[0]

	if engine == nil {
		return errors.New("engine not configured")
	}
	if answerService == nil {
		return fmt.Errorf("flashcard generation is not configured: %w", domain.ErrAnswerUnavailable)
	}

	ctx := context.Background()
	cfg := retrievalConfig()

	results, err := engine.Search(ctx, topic, cfg)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		cmd.Printf("No indexed content matches %q.\n", topic)
		return nil
	}

	cards, err := answerService.GenerateFlashcards(ctx, flashcardSource(results), cfg)
	if err != nil {
		return fmt.Errorf("flashcard generation failed: %w", err)
	}
	if len(cards) == 0 {
		cmd.Println("The model produced no cards for this topic.")
		return nil
	}

	sources := strings.Join(sourceFileNames(results), ", ")
	for i := range cards {
		cards[i].SourceDoc = sources
	}

	for i, card := range cards {
		cmd.Printf("%d. Q: %s\n   A: %s\n", i+1, card.Question, card.Answer)
	}
	cmd.Printf("\nDerived from: %s\n", cards[0].SourceDoc)

	return nil
}

// flashcardSource joins the retrieved chunk texts into the material the
// cards are distilled from.
func flashcardSource(results []domain.SearchResult) string {
	texts := make([]string, len(results))
	for i := range results {
		texts[i] = results[i].Chunk.Text
	}
	return strings.Join(texts, "\n\n")
}

// sourceFileNames lists the distinct source files behind the results,
// keeping first-seen order.
func sourceFileNames(results []domain.SearchResult) []string {
	seen := make(map[string]struct{}, len(results))
	var names []string
	for i := range results {
		name := results[i].Chunk.Metadata.SourceFileName
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
