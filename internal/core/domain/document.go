package domain

import "time"

// DocumentStatus tracks a document through its ingestion lifecycle.
type DocumentStatus string

// Document lifecycle states.
const (
	// StatusProcessing means ingestion has started but not completed.
	StatusProcessing DocumentStatus = "processing"

	// StatusIndexed means the document and all its chunks are registered.
	StatusIndexed DocumentStatus = "indexed"

	// StatusError means ingestion failed; no partial state is retained.
	StatusError DocumentStatus = "error"
)

// Document represents an ingested document and its owned chunks.
// It is the unit of mutation for ingest and remove operations.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// FileName is the name of the originating file.
	FileName string

	// FileType describes the source format (e.g. "text/plain", "pdf").
	FileType string

	// Content is the full normalised text before chunking.
	Content string

	// Chunks are owned exclusively by this document and are destroyed
	// together with it.
	Chunks []Chunk

	// IngestedAt is when the document was ingested.
	IngestedAt time.Time

	// Status is the current lifecycle state.
	Status DocumentStatus

	// Hash is the content fingerprint of the normalised text.
	// Unique among non-removed documents; enforced at ingest time.
	Hash string
}

// Chunk represents a retrievable word-window extracted from one document.
// Chunks are the atomic unit of retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Text is the chunk content, a word-aligned substring of the document.
	Text string

	// Embedding is the vector representation for similarity scoring.
	// Nil until the embedding provider has processed the chunk.
	Embedding []float32

	// Weight is a scalar score multiplier, reserved for re-weighting.
	// Initialised to 1.0.
	Weight float64

	// Metadata carries provenance and positional information.
	Metadata ChunkMetadata
}

// ChunkMetadata carries provenance and positional information for a chunk.
type ChunkMetadata struct {
	// DocumentID links to the owning Document. This is a lookup key,
	// not an ownership back-pointer.
	DocumentID string

	// ChunkIndex is the ordinal position within the document.
	// Indices form a dense 0-based sequence per document.
	ChunkIndex int

	// SourceFileName is the file the chunk originated from.
	SourceFileName string

	// PageNumber is the 1-based page of origin for paged input.
	// Zero when the source was not paged.
	PageNumber int

	// StartWord and EndWord are word offsets into the document text,
	// with 0 <= StartWord < EndWord <= word count.
	StartWord int
	EndWord   int

	// TrustScore is a scalar score multiplier, reserved for curation.
	// Initialised to 1.0.
	TrustScore float64

	// Freshness is when the chunk was created. Older chunks decay
	// slightly during scoring.
	Freshness time.Time
}

// PageContent is one page of pre-extracted text from a paged source.
// The core never parses binary formats; callers supply pages directly.
type PageContent struct {
	// PageNumber is the 1-based page number.
	PageNumber int

	// Text is the extracted page text.
	Text string
}
