package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/archirag-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/archirag-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure retrieval parameters, models and backend addresses.

Settings persist in the config file and apply to every later command.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a setting",
	Long: `Set a single setting by key.

Available keys:
  chunk_size         - target chunk size in characters
  chunk_overlap      - overlap between consecutive chunks in characters
  top_k              - maximum results per query
  temperature        - answer model temperature
  strictness         - factual, balanced or creative
  answer_depth       - concise, standard or detailed
  answer_model       - answer-generation model name
  embedding_model    - embedding model name
  embedding_provider - lexical or ollama
  ollama_base_url    - Ollama API base URL`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	cfg := settingsStore.Retrieval()
	stored := settingsStore.Settings()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Chunk size:    %d\n", cfg.ChunkSize)
	cmd.Printf("  Chunk overlap: %d\n", cfg.ChunkOverlap)
	cmd.Printf("  Top K:         %d\n", cfg.TopK)
	cmd.Println()

	cmd.Println("[Answering]")
	cmd.Printf("  Model:       %s\n", cfg.AnswerModel)
	cmd.Printf("  Temperature: %.2f\n", cfg.Temperature)
	cmd.Printf("  Strictness:  %s\n", cfg.Strictness)
	cmd.Printf("  Depth:       %s\n", cfg.AnswerDepth)
	cmd.Println()

	cmd.Println("[Embedding]")
	provider := stored.EmbeddingProvider
	if provider == "" {
		provider = "lexical"
	}
	cmd.Printf("  Provider: %s\n", provider)
	cmd.Printf("  Model:    %s\n", cfg.EmbeddingModel)
	if stored.OllamaBaseURL != "" {
		cmd.Printf("  Base URL: %s\n", stored.OllamaBaseURL)
	}
	cmd.Println()

	cmd.Printf("Config file: %s\n", settingsStore.Path())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	key, value := args[0], args[1]

	apply, err := settingMutation(key, value)
	if err != nil {
		return err
	}

	if err := settingsStore.Update(apply); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

// settingMutation validates a key/value pair and returns the mutation
// to apply to the stored settings.
func settingMutation(key, value string) (func(*file.Settings), error) {
	switch key {
	case "chunk_size":
		n, err := parsePositiveInt(key, value)
		if err != nil {
			return nil, err
		}
		return func(s *file.Settings) { s.ChunkSize = n }, nil
	case "chunk_overlap":
		n, err := parsePositiveInt(key, value)
		if err != nil {
			return nil, err
		}
		return func(s *file.Settings) { s.ChunkOverlap = n }, nil
	case "top_k":
		n, err := parsePositiveInt(key, value)
		if err != nil {
			return nil, err
		}
		return func(s *file.Settings) { s.TopK = n }, nil
	case "temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 || f > 2 {
			return nil, fmt.Errorf("temperature must be a number between 0 and 2, got %q", value)
		}
		return func(s *file.Settings) { s.Temperature = f }, nil
	case "strictness":
		switch domain.Strictness(value) {
		case domain.StrictnessFactual, domain.StrictnessBalanced, domain.StrictnessCreative:
		default:
			return nil, fmt.Errorf("strictness must be factual, balanced or creative, got %q", value)
		}
		return func(s *file.Settings) { s.Strictness = value }, nil
	case "answer_depth":
		switch domain.AnswerDepth(value) {
		case domain.DepthConcise, domain.DepthStandard, domain.DepthDetailed:
		default:
			return nil, fmt.Errorf("answer_depth must be concise, standard or detailed, got %q", value)
		}
		return func(s *file.Settings) { s.AnswerDepth = value }, nil
	case "answer_model":
		return func(s *file.Settings) { s.AnswerModel = value }, nil
	case "embedding_model":
		return func(s *file.Settings) { s.EmbeddingModel = value }, nil
	case "embedding_provider":
		if value != "lexical" && value != "ollama" {
			return nil, fmt.Errorf("embedding_provider must be lexical or ollama, got %q", value)
		}
		return func(s *file.Settings) { s.EmbeddingProvider = value }, nil
	case "ollama_base_url":
		return func(s *file.Settings) { s.OllamaBaseURL = value }, nil
	default:
		return nil, fmt.Errorf("unknown setting: %s", key)
	}
}

func parsePositiveInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	return n, nil
}
