// Package cli implements the archirag command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/archirag-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/archirag-cli/internal/core/domain"
	"github.com/custodia-labs/archirag-cli/internal/core/ports/driven"
	"github.com/custodia-labs/archirag-cli/internal/core/ports/driving"
	"github.com/custodia-labs/archirag-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root.
var (
	engine           driving.Engine
	embeddingService driven.EmbeddingService
	answerService    driven.AnswerService
	settingsStore    *file.SettingsStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "archirag",
	Short: "Local document question answering",
	Long: `archirag ingests your documents, indexes them into scored chunks
and answers questions grounded in their content.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetServices injects the services the commands run against.
func SetServices(e driving.Engine, emb driven.EmbeddingService, a driven.AnswerService, s *file.SettingsStore) {
	engine = e
	embeddingService = emb
	answerService = a
	settingsStore = s
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// retrievalConfig resolves the per-call retrieval parameters from the
// settings store, falling back to the defaults when none is configured.
func retrievalConfig() domain.Config {
	if settingsStore == nil {
		return domain.DefaultConfig()
	}
	return settingsStore.Retrieval()
}
