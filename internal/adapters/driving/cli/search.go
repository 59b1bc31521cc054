package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents",
	Long: `Ranks every indexed chunk against the query and prints the best matches.
The retrieval strategy is chosen from the query's wording.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from settings)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if engine == nil {
		return errors.New("engine not configured")
	}

	cfg := retrievalConfig()
	if searchLimit > 0 {
		cfg.TopK = searchLimit
	}

	results, err := engine.Search(context.Background(), query, cfg)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("Results (%s strategy):\n", results[0].Strategy)
	cmd.Println()
	for i := range results {
		meta := results[i].Chunk.Metadata

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, meta.SourceFileName, results[i].Score)
		if meta.PageNumber > 0 {
			cmd.Printf("      Page %d, chunk %d\n", meta.PageNumber, meta.ChunkIndex)
		} else {
			cmd.Printf("      Chunk %d\n", meta.ChunkIndex)
		}
		cmd.Printf("      %s\n", snippet(results[i].Chunk.Text, 160))
		cmd.Println()
	}

	return nil
}

// snippet truncates text to at most n runes on a word boundary.
func snippet(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	cut := string(runes[:n])
	if i := lastSpace(cut); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}

func lastSpace(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ' ' {
			return i
		}
	}
	return -1
}
