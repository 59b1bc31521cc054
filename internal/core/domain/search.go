package domain

import "time"

// RetrievalStrategy classifies a query and adjusts scoring weights.
type RetrievalStrategy string

// Available retrieval strategies.
const (
	// StrategyKeyword favours exact term matches; used for short queries.
	StrategyKeyword RetrievalStrategy = "keyword"

	// StrategySummary targets overview-style queries.
	StrategySummary RetrievalStrategy = "summary"

	// StrategyAnalytical targets explanatory or comparative queries.
	StrategyAnalytical RetrievalStrategy = "analytical"

	// StrategyHybrid is the default when no other cue matches.
	StrategyHybrid RetrievalStrategy = "hybrid"
)

// IsValid returns true if the strategy is recognised.
func (s RetrievalStrategy) IsValid() bool {
	switch s {
	case StrategyKeyword, StrategySummary, StrategyAnalytical, StrategyHybrid:
		return true
	default:
		return false
	}
}

// SearchResult is a scored chunk produced by one query.
// Results are computed per call and never persisted.
type SearchResult struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the combined relevance score.
	Score float64

	// Strategy is the retrieval strategy that scored this result.
	Strategy RetrievalStrategy
}

// Answer is the response of the external answer-generation collaborator.
// The core hands it ranked chunks and a query; the shape of the reply is
// the collaborator's contract.
type Answer struct {
	// Text is the grounded answer.
	Text string

	// Confidence is the collaborator's self-reported evidence strength (0-1).
	Confidence float64

	// FollowUps are suggested follow-up queries.
	FollowUps []string
}

// Flashcard is a question/answer study card distilled from document
// content by the answer-generation collaborator.
type Flashcard struct {
	// ID is a unique identifier assigned at generation time.
	ID string

	// Question is the front of the card.
	Question string

	// Answer is the back of the card.
	Answer string

	// SourceDoc names the material the card was derived from.
	SourceDoc string

	// CreatedAt is when the card was generated.
	CreatedAt time.Time
}
