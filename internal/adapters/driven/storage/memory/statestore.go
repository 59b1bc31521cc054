// Package memory provides in-memory implementations of driven ports.
// Used for tests and for running without a data directory.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
	"github.com/custodia-labs/archirag-cli/internal/core/ports/driven"
)

// Ensure StateStore implements the interface.
var _ driven.StateStore = (*StateStore)(nil)

// StateStore is an in-memory implementation of driven.StateStore.
// Saves keep whole-collection snapshot semantics: each call replaces the
// prior collection.
type StateStore struct {
	mu        sync.RWMutex
	documents []domain.Document
	chunks    []domain.Chunk
}

// NewStateStore creates a new in-memory state store.
func NewStateStore() *StateStore {
	return &StateStore{}
}

// LoadDocuments returns all persisted documents.
func (s *StateStore) LoadDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, len(s.documents))
	copy(docs, s.documents)
	return docs, nil
}

// LoadChunks returns all persisted chunks.
func (s *StateStore) LoadChunks(_ context.Context) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chunks := make([]domain.Chunk, len(s.chunks))
	copy(chunks, s.chunks)
	return chunks, nil
}

// SaveDocuments replaces the persisted document collection.
// Chunk slices are not stored; chunks persist separately.
func (s *StateStore) SaveDocuments(_ context.Context, docs []domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = make([]domain.Document, len(docs))
	for i, doc := range docs {
		doc.Chunks = nil
		s.documents[i] = doc
	}
	return nil
}

// SaveChunks replaces the persisted chunk collection.
func (s *StateStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = make([]domain.Chunk, len(chunks))
	copy(s.chunks, chunks)
	return nil
}

// DeleteDocument removes a document and every chunk referencing it.
func (s *StateStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.documents[:0]
	for _, doc := range s.documents {
		if doc.ID != id {
			docs = append(docs, doc)
		}
	}
	s.documents = docs

	chunks := s.chunks[:0]
	for _, chunk := range s.chunks {
		if chunk.Metadata.DocumentID != id {
			chunks = append(chunks, chunk)
		}
	}
	s.chunks = chunks

	return nil
}

// ClearAll removes all persisted documents and chunks.
func (s *StateStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = nil
	s.chunks = nil
	return nil
}

// Close releases resources.
func (s *StateStore) Close() error {
	return nil
}
