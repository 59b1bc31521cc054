package driven

import (
	"context"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
)

// StateStore persists the engine's document and chunk collections.
//
// Saves are whole-collection snapshots: each call replaces the full prior
// collection. Documents are stored without their chunk slices; chunks are
// stored flat and re-attached by DocumentID on load.
type StateStore interface {
	// LoadDocuments returns all persisted documents (without chunks).
	LoadDocuments(ctx context.Context) ([]domain.Document, error)

	// LoadChunks returns all persisted chunks.
	LoadChunks(ctx context.Context) ([]domain.Chunk, error)

	// SaveDocuments replaces the persisted document collection.
	SaveDocuments(ctx context.Context, docs []domain.Document) error

	// SaveChunks replaces the persisted chunk collection.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// DeleteDocument removes a document and every chunk referencing it.
	DeleteDocument(ctx context.Context, id string) error

	// ClearAll removes all persisted documents and chunks.
	ClearAll(ctx context.Context) error

	// Close releases resources.
	Close() error
}
