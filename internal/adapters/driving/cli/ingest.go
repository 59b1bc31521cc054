package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
	"github.com/custodia-labs/archirag-cli/internal/normalisers/plaintext"
)

var ingestPageBreaks bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Ingest documents into the index",
	Long: `Reads the given files, splits them into scored chunks and indexes them.
Files whose content is identical to an already-indexed document are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestPageBreaks, "page-break", false,
		"treat form-feed characters as page breaks and record page numbers")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if engine == nil {
		return errors.New("engine not configured")
	}

	ctx := context.Background()
	cfg := retrievalConfig()

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		name := filepath.Base(path)
		doc, err := ingestOne(ctx, name, fileTypeOf(path), string(data), cfg)
		if errors.Is(err, domain.ErrDuplicateDocument) {
			cmd.Printf("  %s: skipped (already indexed)\n", name)
			continue
		}
		if err != nil {
			return fmt.Errorf("ingest %s: %w", name, err)
		}

		cmd.Printf("  %s: %d chunks\n", name, len(doc.Chunks))
	}

	return nil
}

func ingestOne(
	ctx context.Context, name, fileType, text string, cfg domain.Config,
) (*domain.Document, error) {
	if ingestPageBreaks && strings.Contains(text, "\f") {
		return engine.IngestPages(ctx, name, fileType, plaintext.SplitPages(text), cfg)
	}
	return engine.Ingest(ctx, name, fileType, text, cfg)
}

// fileTypeOf maps a file extension to a MIME type.
func fileTypeOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return "text/markdown"
	case ".pdf":
		return "application/pdf"
	default:
		return "text/plain"
	}
}
