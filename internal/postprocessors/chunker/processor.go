// Package chunker provides an overlapping word-window chunking processor.
package chunker

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
)

// DefaultChunkSize is the default chunk size in characters.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default overlap between chunks in characters.
const DefaultChunkOverlap = 200

// avgWordLength approximates the length of a word plus trailing space,
// used to convert character budgets into word counts.
const avgWordLength = 6

// Processor splits normalised text into overlapping word-windows.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
//
// Overlap greater than or equal to the chunk size is a caller
// configuration error; chunking still terminates after the first window
// rather than looping forever.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits text into chunks of wordsPerChunk words, advancing by
// wordsPerChunk minus overlapWords per step. Whitespace-only windows are
// skipped but still consume position. pageNumber is 0 for unpaged input.
//
// Chunk indices reflect creation order within this call; the engine
// renumbers them densely once all chunks of a document exist.
func (p *Processor) Process(text, docID, fileName string, pageNumber int) []domain.Chunk {
	words := strings.Split(text, " ")
	wordsPerChunk := p.chunkSize / avgWordLength
	overlapWords := p.overlap / avgWordLength

	estimated := 1
	if step := wordsPerChunk - overlapWords; step > 0 {
		estimated = len(words)/step + 1
	}
	chunks := make([]domain.Chunk, 0, estimated)

	now := time.Now()
	current := 0
	chunkIndex := 0

	for current < len(words) {
		end := current + wordsPerChunk
		if end > len(words) {
			end = len(words)
		}
		chunkText := strings.Join(words[current:end], " ")

		if strings.TrimSpace(chunkText) != "" {
			chunks = append(chunks, domain.Chunk{
				ID:     uuid.New().String(),
				Text:   chunkText,
				Weight: 1.0,
				Metadata: domain.ChunkMetadata{
					DocumentID:     docID,
					ChunkIndex:     chunkIndex,
					SourceFileName: fileName,
					PageNumber:     pageNumber,
					StartWord:      current,
					EndWord:        end,
					TrustScore:     1.0,
					Freshness:      now,
				},
			})
		}

		current += wordsPerChunk - overlapWords
		if current >= len(words) || wordsPerChunk <= overlapWords {
			break
		}
		chunkIndex++
	}

	return chunks
}
