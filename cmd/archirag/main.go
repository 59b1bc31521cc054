// Command archirag is a local document question-answering CLI.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/archirag-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/archirag-cli/internal/adapters/driven/embedding/lexical"
	embollama "github.com/custodia-labs/archirag-cli/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/archirag-cli/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/archirag-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/archirag-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/archirag-cli/internal/core/ports/driven"
	"github.com/custodia-labs/archirag-cli/internal/core/services"
)

// version is overridden at build time via
// -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := file.NewSettingsStore("")
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	stored := settings.Settings()

	store, err := sqlite.NewStateStore(stored.DataDir)
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}
	defer store.Close()

	var embedder driven.EmbeddingService
	if stored.EmbeddingProvider == "ollama" {
		embedder = embollama.NewEmbeddingService(embollama.Config{
			BaseURL: stored.OllamaBaseURL,
			Model:   stored.EmbeddingModel,
		})
	} else {
		embedder = lexical.New()
	}

	answerer := ollama.NewAnswerService(ollama.Config{
		BaseURL: stored.OllamaBaseURL,
		Model:   stored.AnswerModel,
	})

	engine := services.NewEngine(store, embedder)

	cli.SetVersion(version)
	cli.SetServices(engine, embedder, answerer, settings)

	return cli.Execute()
}
