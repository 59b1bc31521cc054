package domain

// Strictness controls how closely the answer model sticks to the context.
type Strictness string

// Available strictness levels.
const (
	StrictnessFactual  Strictness = "factual"
	StrictnessBalanced Strictness = "balanced"
	StrictnessCreative Strictness = "creative"
)

// AnswerDepth controls the verbosity of generated answers.
type AnswerDepth string

// Available answer depths.
const (
	DepthConcise  AnswerDepth = "concise"
	DepthStandard AnswerDepth = "standard"
	DepthDetailed AnswerDepth = "detailed"
)

// Config holds per-call retrieval parameters. The core holds no implicit
// global configuration; callers supply a Config on every ingest and search.
type Config struct {
	// ChunkSize is the target chunk size in characters. The chunker
	// converts this to a word count.
	ChunkSize int

	// ChunkOverlap is the overlap between consecutive chunks in characters.
	ChunkOverlap int

	// TopK is the maximum number of ranked chunks returned per query.
	TopK int

	// AnswerModel identifies the answer-generation model.
	AnswerModel string

	// EmbeddingModel identifies the embedding model.
	EmbeddingModel string

	// Temperature is passed through to the answer model.
	Temperature float64

	// Strictness is passed through to the answer model.
	Strictness Strictness

	// AnswerDepth is passed through to the answer model.
	AnswerDepth AnswerDepth
}

// DefaultConfig returns the standard retrieval parameters.
func DefaultConfig() Config {
	return Config{
		ChunkSize:      1000,
		ChunkOverlap:   200,
		TopK:           6,
		AnswerModel:    "llama3.2",
		EmbeddingModel: "lexical-1024",
		Temperature:    0.3,
		Strictness:     StrictnessFactual,
		AnswerDepth:    DepthStandard,
	}
}
