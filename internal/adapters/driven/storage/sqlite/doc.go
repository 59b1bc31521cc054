// Package sqlite provides a SQLite-based implementation of the StateStore port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Documents are stored without their chunk slices;
// chunks live in a flat table keyed by document_id and are re-attached by
// the engine on load.
//
// # Data Location
//
// By default, the database is stored at ~/.archirag/data/index.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
