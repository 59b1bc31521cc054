// Package domain defines the core business entities for ArchiRAG.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested document with metadata and content hash
//   - Chunk: A retrievable word-window within a document
//   - SearchResult: A scored chunk produced by a query
//   - Config: Per-call retrieval parameters
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
