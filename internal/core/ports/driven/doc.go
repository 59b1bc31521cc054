// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - EmbeddingService: Generates vector embeddings for chunks and queries.
//   - StateStore: Whole-collection snapshot persistence for documents
//     and chunks. Failures are logged by the core, never re-raised; the
//     in-memory index is the source of truth for the running session.
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - AnswerService: External answer-generation model. Without it, the
//     engine still retrieves; only grounded answering is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
