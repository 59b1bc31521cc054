package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/archirag-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/archirag-cli/internal/adapters/driven/embedding/lexical"
	"github.com/custodia-labs/archirag-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/archirag-cli/internal/core/domain"
	"github.com/custodia-labs/archirag-cli/internal/core/services"
)

// setupTestServices wires the commands to a real engine backed by
// in-memory storage and the lexical embedder. The returned cleanup
// detaches the services again.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	store, err := file.NewSettingsStore(t.TempDir())
	require.NoError(t, err)

	embedder := lexical.New()
	eng := services.NewEngine(memory.NewStateStore(), embedder)
	SetServices(eng, embedder, nil, store)

	return func() {
		SetServices(nil, nil, nil, nil)
	}
}

// seedDocument indexes one document directly through the engine.
func seedDocument(t *testing.T, name, text string) *domain.Document {
	t.Helper()

	doc, err := engine.Ingest(context.Background(), name, "text/plain", text, domain.DefaultConfig())
	require.NoError(t, err)
	return doc
}
