package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
	"github.com/custodia-labs/archirag-cli/internal/core/ports/driven"
	"github.com/custodia-labs/archirag-cli/internal/core/ports/driving"
	"github.com/custodia-labs/archirag-cli/internal/fingerprint"
	"github.com/custodia-labs/archirag-cli/internal/logger"
	"github.com/custodia-labs/archirag-cli/internal/normalisers/plaintext"
	"github.com/custodia-labs/archirag-cli/internal/postprocessors/chunker"
)

// Ensure Engine implements the interface.
var _ driving.Engine = (*Engine)(nil)

// Engine is the retrieval engine: it owns the in-memory document and
// chunk collections and orchestrates normalisation, deduplication,
// chunking, embedding and scoring.
//
// The in-memory index is the source of truth for the running session.
// Persistence failures are logged, never re-raised.
type Engine struct {
	state    driven.StateStore
	embedder driven.EmbeddingService

	// initOnce gates the one-time load of persisted state. Concurrent
	// callers block on the same in-flight load instead of triggering
	// duplicate loads.
	initOnce sync.Once

	mu        sync.RWMutex
	documents []domain.Document
	chunks    []domain.Chunk
}

// NewEngine creates a new retrieval engine. The persisted state is
// loaded lazily on first use, not at construction.
func NewEngine(state driven.StateStore, embedder driven.EmbeddingService) *Engine {
	return &Engine{
		state:    state,
		embedder: embedder,
	}
}

// ensureInitialized loads persisted state exactly once. Load failures
// are logged and the engine starts empty.
func (e *Engine) ensureInitialized(ctx context.Context) {
	e.initOnce.Do(func() {
		if e.state == nil {
			return
		}

		docs, err := e.state.LoadDocuments(ctx)
		if err != nil {
			logger.Warn("Failed to load documents: %v", err)
			return
		}
		chunks, err := e.state.LoadChunks(ctx)
		if err != nil {
			logger.Warn("Failed to load chunks: %v", err)
			return
		}

		// Re-attach chunks to their owning documents.
		byDoc := make(map[string][]domain.Chunk)
		for _, chunk := range chunks {
			byDoc[chunk.Metadata.DocumentID] = append(byDoc[chunk.Metadata.DocumentID], chunk)
		}
		for i := range docs {
			docs[i].Chunks = byDoc[docs[i].ID]
		}

		e.mu.Lock()
		e.documents = docs
		e.chunks = chunks
		e.mu.Unlock()

		if len(docs) > 0 {
			logger.Info("Loaded %d documents (%d chunks) from store", len(docs), len(chunks))
		}
	})
}

// Ingest normalises, deduplicates, chunks and embeds a single-text document.
func (e *Engine) Ingest(
	ctx context.Context, name, fileType, text string, cfg domain.Config,
) (*domain.Document, error) {
	e.ensureInitialized(ctx)

	logger.Section("Ingest")
	logger.Debug("Document: %q (%s)", name, fileType)

	cleanText := plaintext.Normalise(text)
	hash := fingerprint.Sum(cleanText)

	if err := e.checkDuplicate(name, hash); err != nil {
		return nil, err
	}

	docID := uuid.New().String()
	proc := chunker.New(
		chunker.WithChunkSize(cfg.ChunkSize),
		chunker.WithOverlap(cfg.ChunkOverlap),
	)
	chunks := proc.Process(cleanText, docID, name, 0)
	renumber(chunks)

	return e.finishIngest(ctx, docID, name, fileType, cleanText, hash, chunks, cfg)
}

// IngestPages ingests pre-extracted per-page text. Each page is chunked
// independently so a chunk never spans a page boundary; chunk indices are
// renumbered densely across the whole document afterwards.
func (e *Engine) IngestPages(
	ctx context.Context, name, fileType string, pages []domain.PageContent, cfg domain.Config,
) (*domain.Document, error) {
	e.ensureInitialized(ctx)

	logger.Section("Ingest")
	logger.Debug("Document: %q (%s), %d pages", name, fileType, len(pages))

	texts := make([]string, len(pages))
	for i, page := range pages {
		texts[i] = page.Text
	}
	cleanText := plaintext.Normalise(strings.Join(texts, "\n"))
	hash := fingerprint.Sum(cleanText)

	if err := e.checkDuplicate(name, hash); err != nil {
		return nil, err
	}

	docID := uuid.New().String()
	proc := chunker.New(
		chunker.WithChunkSize(cfg.ChunkSize),
		chunker.WithOverlap(cfg.ChunkOverlap),
	)

	var chunks []domain.Chunk
	for _, page := range pages {
		pageChunks := proc.Process(plaintext.Normalise(page.Text), docID, name, page.PageNumber)
		chunks = append(chunks, pageChunks...)
	}
	renumber(chunks)

	return e.finishIngest(ctx, docID, name, fileType, cleanText, hash, chunks, cfg)
}

// finishIngest embeds all chunks, registers the document and persists.
// On any embedding failure no partial state is registered.
func (e *Engine) finishIngest(
	ctx context.Context, docID, name, fileType, cleanText, hash string,
	chunks []domain.Chunk, cfg domain.Config,
) (*domain.Document, error) {
	if err := e.embedAll(ctx, chunks, cfg.EmbeddingModel); err != nil {
		return nil, err
	}

	doc := domain.Document{
		ID:         docID,
		FileName:   name,
		FileType:   fileType,
		Content:    cleanText,
		Chunks:     chunks,
		IngestedAt: time.Now(),
		Status:     domain.StatusIndexed,
		Hash:       hash,
	}

	e.mu.Lock()
	// Re-check under the write lock: a concurrent ingest of identical
	// content may have registered between the early check and now.
	for _, existing := range e.documents {
		if existing.Hash == hash {
			e.mu.Unlock()
			return nil, fmt.Errorf("document %q is identical to existing document %q: %w",
				name, existing.FileName, domain.ErrDuplicateDocument)
		}
	}
	e.documents = append(e.documents, doc)
	e.chunks = append(e.chunks, chunks...)
	e.mu.Unlock()

	logger.Info("Ingested %q: %d chunks", name, len(chunks))

	e.saveState(ctx)
	return &doc, nil
}

// checkDuplicate rejects content whose hash matches a held document.
func (e *Engine) checkDuplicate(name, hash string) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, existing := range e.documents {
		if existing.Hash == hash {
			return fmt.Errorf("document %q is identical to existing document %q: %w",
				name, existing.FileName, domain.ErrDuplicateDocument)
		}
	}
	return nil
}

// embedAll generates embeddings for every chunk concurrently and joins
// before returning. A failure in any one call fails the whole batch.
func (e *Engine) embedAll(ctx context.Context, chunks []domain.Chunk, model string) error {
	if e.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}

	errs := make([]error, len(chunks))
	var wg sync.WaitGroup
	wg.Add(len(chunks))

	for i := range chunks {
		go func(i int) {
			defer wg.Done()
			embedding, err := e.embedder.Embed(ctx, chunks[i].Text, model)
			if err != nil {
				errs[i] = err
				return
			}
			chunks[i].Embedding = embedding
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("embed chunk %d: %w", i, err)
		}
	}
	return nil
}

// Remove deletes a document and every chunk referencing it.
// Removing an absent id is not an error.
func (e *Engine) Remove(ctx context.Context, id string) error {
	e.ensureInitialized(ctx)

	e.mu.Lock()
	docs := e.documents[:0]
	for _, doc := range e.documents {
		if doc.ID != id {
			docs = append(docs, doc)
		}
	}
	e.documents = docs

	chunks := e.chunks[:0]
	for _, chunk := range e.chunks {
		if chunk.Metadata.DocumentID != id {
			chunks = append(chunks, chunk)
		}
	}
	e.chunks = chunks
	e.mu.Unlock()

	logger.Debug("Removed document %s", id)

	if e.state != nil {
		if err := e.state.DeleteDocument(ctx, id); err != nil {
			logger.Warn("Failed to persist removal of %s: %v", id, err)
		}
	}
	return nil
}

// Search classifies the query, embeds it, scores every chunk in the
// store and returns the cfg.TopK best above the relevance floor.
func (e *Engine) Search(
	ctx context.Context, query string, cfg domain.Config,
) ([]domain.SearchResult, error) {
	e.ensureInitialized(ctx)

	logger.Section("Search")
	logger.Debug("Query: %q", query)

	if e.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	strategy := DetermineStrategy(query)
	logger.Info("Retrieval strategy: %s", strategy)

	queryEmbedding, err := e.embedder.Embed(ctx, query, cfg.EmbeddingModel)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	e.mu.RLock()
	chunks := make([]domain.Chunk, len(e.chunks))
	copy(chunks, e.chunks)
	e.mu.RUnlock()

	results := ScoreChunks(query, queryEmbedding, chunks, strategy, cfg.TopK)
	logger.Info("Results: %d (of %d chunks)", len(results), len(chunks))

	return results, nil
}

// Documents returns all currently held documents with their chunks.
func (e *Engine) Documents(ctx context.Context) ([]domain.Document, error) {
	e.ensureInitialized(ctx)

	e.mu.RLock()
	defer e.mu.RUnlock()
	docs := make([]domain.Document, len(e.documents))
	copy(docs, e.documents)
	return docs, nil
}

// Clear removes every document and chunk from the store.
func (e *Engine) Clear(ctx context.Context) error {
	e.ensureInitialized(ctx)

	e.mu.Lock()
	e.documents = nil
	e.chunks = nil
	e.mu.Unlock()

	if e.state != nil {
		if err := e.state.ClearAll(ctx); err != nil {
			logger.Warn("Failed to clear persisted state: %v", err)
		}
	}
	return nil
}

// saveState snapshots the collections to the state store. Failures are
// logged, not re-raised: ingestion is reported as successful once the
// in-memory state is updated.
func (e *Engine) saveState(ctx context.Context) {
	if e.state == nil {
		return
	}

	e.mu.RLock()
	docs := make([]domain.Document, len(e.documents))
	copy(docs, e.documents)
	chunks := make([]domain.Chunk, len(e.chunks))
	copy(chunks, e.chunks)
	e.mu.RUnlock()

	if err := e.state.SaveDocuments(ctx, docs); err != nil {
		logger.Warn("Failed to save documents: %v", err)
		return
	}
	if err := e.state.SaveChunks(ctx, chunks); err != nil {
		logger.Warn("Failed to save chunks: %v", err)
	}
}

// renumber makes chunk indices a dense 0-based sequence in creation order.
func renumber(chunks []domain.Chunk) {
	for i := range chunks {
		chunks[i].Metadata.ChunkIndex = i
	}
}
