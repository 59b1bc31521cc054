package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and ingest new documents",
	Long: `Watches a directory and ingests text files as they appear or change.
Files whose content is already indexed are skipped. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// watchable reports whether a path looks like an ingestible text file.
func watchable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown":
		return true
	default:
		return false
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	if engine == nil {
		return errors.New("engine not configured")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", dir)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("\nStopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !watchable(event.Name) {
				continue
			}
			ingestWatched(ctx, cmd, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmd.Printf("  watch error: %v\n", err)
		}
	}
}

// ingestWatched ingests one changed file; failures are reported and the
// watch continues.
func ingestWatched(ctx context.Context, cmd *cobra.Command, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		cmd.Printf("  %s: read failed: %v\n", filepath.Base(path), err)
		return
	}

	name := filepath.Base(path)
	doc, err := engine.Ingest(ctx, name, fileTypeOf(path), string(data), retrievalConfig())
	if errors.Is(err, domain.ErrDuplicateDocument) {
		cmd.Printf("  %s: unchanged, skipped\n", name)
		return
	}
	if err != nil {
		cmd.Printf("  %s: ingest failed: %v\n", name, err)
		return
	}

	cmd.Printf("  %s: indexed (%d chunks)\n", name, len(doc.Chunks))
}
