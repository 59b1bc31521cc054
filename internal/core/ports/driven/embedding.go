package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// The model parameter records which embedding model the caller requested.
// The bundled lexical embedder ignores it beyond recording; remote
// implementations select the model to invoke.
//
// Implementations may include:
//   - Lexical: deterministic bag-of-characters fingerprint (no network)
//   - Ollama (nomic-embed-text, all-minilm)
//   - Any provider mapping (text, model) to a fixed-length vector
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text, model string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1024).
	Dimensions() int
}
