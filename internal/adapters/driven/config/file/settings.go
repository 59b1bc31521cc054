package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
)

// Settings is the on-disk configuration. Zero values mean "use default";
// Retrieval() resolves them.
type Settings struct {
	// Retrieval parameters.
	ChunkSize    int     `toml:"chunk_size,omitempty"`
	ChunkOverlap int     `toml:"chunk_overlap,omitempty"`
	TopK         int     `toml:"top_k,omitempty"`
	Temperature  float64 `toml:"temperature,omitempty"`
	Strictness   string  `toml:"strictness,omitempty"`
	AnswerDepth  string  `toml:"answer_depth,omitempty"`

	// Model selection.
	AnswerModel       string `toml:"answer_model,omitempty"`
	EmbeddingModel    string `toml:"embedding_model,omitempty"`
	EmbeddingProvider string `toml:"embedding_provider,omitempty"`

	// Backend addresses and paths.
	OllamaBaseURL string `toml:"ollama_base_url,omitempty"`
	DataDir       string `toml:"data_dir,omitempty"`
}

// SettingsStore persists Settings as a TOML file.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
	settings Settings
}

// NewSettingsStore creates a TOML-based settings store.
// If configDir is empty, defaults to ~/.archirag/config.toml.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".archirag")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Settings returns a copy of the current settings.
func (s *SettingsStore) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update applies fn to the settings and persists the result.
func (s *SettingsStore) Update(fn func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.settings)
	return s.save()
}

// Retrieval resolves the stored settings into a domain.Config, filling
// unset fields from the defaults.
func (s *SettingsStore) Retrieval() domain.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg := domain.DefaultConfig()
	if s.settings.ChunkSize > 0 {
		cfg.ChunkSize = s.settings.ChunkSize
	}
	if s.settings.ChunkOverlap > 0 {
		cfg.ChunkOverlap = s.settings.ChunkOverlap
	}
	if s.settings.TopK > 0 {
		cfg.TopK = s.settings.TopK
	}
	if s.settings.Temperature > 0 {
		cfg.Temperature = s.settings.Temperature
	}
	if s.settings.Strictness != "" {
		cfg.Strictness = domain.Strictness(s.settings.Strictness)
	}
	if s.settings.AnswerDepth != "" {
		cfg.AnswerDepth = domain.AnswerDepth(s.settings.AnswerDepth)
	}
	if s.settings.AnswerModel != "" {
		cfg.AnswerModel = s.settings.AnswerModel
	}
	if s.settings.EmbeddingModel != "" {
		cfg.EmbeddingModel = s.settings.EmbeddingModel
	} else if s.settings.EmbeddingProvider == "ollama" {
		// Let the remote adapter fall back to its own default model
		// instead of the lexical embedder's name.
		cfg.EmbeddingModel = ""
	}
	return cfg
}

// Save persists the current settings to disk.
func (s *SettingsStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes settings to the TOML file (caller must hold lock).
func (s *SettingsStore) save() error {
	data, err := toml.Marshal(s.settings)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads settings from the TOML file.
func (s *SettingsStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - that's fine, start with defaults
			s.settings = Settings{}
			return nil
		}
		return err
	}

	var loaded Settings
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}
	s.settings = loaded
	return nil
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}
