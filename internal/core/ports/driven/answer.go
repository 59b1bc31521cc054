package driven

import (
	"context"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
)

// AnswerService produces a grounded answer from ranked chunks.
// This is an optional service - when nil, answer generation is disabled.
//
// Retry policy belongs to the implementation, not the core.
type AnswerService interface {
	// GenerateAnswer answers the query using only the supplied context
	// chunks, honouring the temperature, strictness and depth in cfg.
	GenerateAnswer(ctx context.Context, query string, results []domain.SearchResult, cfg domain.Config) (*domain.Answer, error)

	// GenerateFlashcards distils question/answer study cards from the
	// supplied text. An empty result without error means the model
	// found nothing card-worthy.
	GenerateFlashcards(ctx context.Context, text string, cfg domain.Config) ([]domain.Flashcard, error)
}
