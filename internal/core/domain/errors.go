package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateDocument indicates an ingested document's content hash
	// matches an existing, non-removed document. The ingest is rejected,
	// not retried.
	ErrDuplicateDocument = errors.New("duplicate document")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingUnavailable indicates the embedding provider is not
	// configured or failed. Ingest and search cannot proceed without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrAnswerUnavailable indicates the answer-generation service is not
	// configured. Retrieval still works; only answer generation is disabled.
	ErrAnswerUnavailable = errors.New("answer service unavailable")
)
