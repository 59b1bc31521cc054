package driving

import (
	"context"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
)

// Engine provides document ingestion and retrieval to external actors.
//
// Every operation waits for the engine's one-time load of persisted state
// to complete before touching in-memory collections.
type Engine interface {
	// Ingest normalises, deduplicates, chunks and embeds a document.
	// Returns domain.ErrDuplicateDocument if an existing document shares
	// the content hash. Ingest is atomic: on any failure no partial
	// document or chunk is registered.
	Ingest(ctx context.Context, name, fileType, text string, cfg domain.Config) (*domain.Document, error)

	// IngestPages ingests pre-extracted per-page text. Chunks never span
	// a page boundary; chunk indices are renumbered densely across the
	// whole document.
	IngestPages(ctx context.Context, name, fileType string, pages []domain.PageContent, cfg domain.Config) (*domain.Document, error)

	// Remove deletes a document and every chunk referencing it.
	// Removing an absent id is not an error.
	Remove(ctx context.Context, id string) error

	// Search classifies the query, scores every chunk in the store and
	// returns at most cfg.TopK results above the relevance floor.
	Search(ctx context.Context, query string, cfg domain.Config) ([]domain.SearchResult, error)

	// Documents returns all currently held documents with their chunks.
	Documents(ctx context.Context) ([]domain.Document, error)

	// Clear removes every document and chunk from the store.
	Clear(ctx context.Context) error
}
