// Package lexical provides a deterministic, in-process embedding service.
//
// The vector is a bag-of-characters feature hash: order- and
// position-sensitive, but with no semantic generalisation. It exists so
// the retrieval pipeline works offline; callers needing true semantic
// similarity substitute a real provider behind the same port.
package lexical

import (
	"context"
	"math"
	"regexp"
	"strings"

	"github.com/custodia-labs/archirag-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Dimensions is the fixed vector length.
const Dimensions = 1024

var nonWord = regexp.MustCompile(`\W+`)

// EmbeddingService generates lexical fingerprint vectors.
type EmbeddingService struct{}

// New creates a new lexical embedding service.
func New() *EmbeddingService {
	return &EmbeddingService{}
}

// Embed returns a 1024-dimension unit vector for text. The model
// parameter is recorded by callers but does not alter the output.
//
// For each word at position i and character at position j within it,
// 1/(i+1) is added to slot (code * (j+1)) mod 1024; the vector is then
// L2-normalised. A zero vector (empty text) stays zero.
func (s *EmbeddingService) Embed(_ context.Context, text, _ string) ([]float32, error) {
	vector := make([]float64, Dimensions)
	words := nonWord.Split(strings.ToLower(text), -1)

	for i, word := range words {
		for j, r := range []rune(word) {
			index := (int(r) * (j + 1)) % Dimensions
			vector[index] += 1.0 / float64(i+1)
		}
	}

	var sum float64
	for _, v := range vector {
		sum += v * v
	}
	magnitude := math.Sqrt(sum)

	result := make([]float32, Dimensions)
	if magnitude > 0 {
		for i, v := range vector {
			result[i] = float32(v / magnitude)
		}
	}
	return result, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return Dimensions
}
