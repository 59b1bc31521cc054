package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// pinger is implemented by remote backends that support a connectivity
// check. Local services simply lack the method.
type pinger interface {
	Ping(ctx context.Context) error
}

// modelNamer is implemented by backends with a configured model name.
type modelNamer interface {
	ModelName() string
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index and backend status",
	Long: `Reports the size of the index, the settings file in use and whether
the configured backends are reachable.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if engine == nil {
		return errors.New("engine not configured")
	}

	ctx := context.Background()

	docs, err := engine.Documents(ctx)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	chunks := 0
	for i := range docs {
		chunks += len(docs[i].Chunks)
	}

	cmd.Printf("Documents: %d (%d chunks)\n", len(docs), chunks)
	if settingsStore != nil {
		cmd.Printf("Settings:  %s\n", settingsStore.Path())
	}

	if embeddingService != nil {
		cmd.Printf("Embedding: %d dimensions%s\n",
			embeddingService.Dimensions(), backendState(ctx, embeddingService))
	}

	if answerService == nil {
		cmd.Println("Answers:   not configured")
		return nil
	}
	label := "configured"
	if n, ok := answerService.(modelNamer); ok {
		label = "model " + n.ModelName()
	}
	cmd.Printf("Answers:   %s%s\n", label, backendState(ctx, answerService))

	return nil
}

// backendState pings the service when it supports it. Local services
// contribute nothing to the line.
func backendState(ctx context.Context, svc any) string {
	p, ok := svc.(pinger)
	if !ok {
		return ""
	}
	if err := p.Ping(ctx); err != nil {
		return fmt.Sprintf(" (unreachable: %v)", err)
	}
	return " (reachable)"
}
