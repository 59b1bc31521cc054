package services

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
)

// Scoring constants. Each term is additive unless noted; the relevance
// floor drops noise results before ranking.
const (
	exactPhraseBonus     = 0.5
	keywordOverlapScale  = 0.3
	densityScale         = 0.1
	densityCap           = 0.2
	strategyBonusPerHit  = 0.05
	freshnessDecayPerDay = 0.001
	freshnessFloor       = 0.9
	relevanceFloor       = 0.01
)

var nonWordChars = regexp.MustCompile(`[^\w\s]`)

// stopWords are dropped during keyword extraction.
var stopWords = map[string]struct{}{
	"the": {}, "is": {}, "at": {}, "which": {}, "on": {}, "a": {}, "an": {},
	"and": {}, "or": {}, "but": {}, "in": {}, "with": {}, "to": {}, "for": {},
	"of": {}, "that": {}, "this": {}, "it": {}, "from": {}, "as": {}, "are": {},
	"was": {}, "were": {}, "been": {}, "be": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "can": {}, "what": {}, "how": {},
	"who": {}, "when": {}, "where": {}, "why": {},
}

// ExtractKeywords pulls meaningful terms from a query: lower-cased,
// punctuation stripped, stop-words and words of two characters or fewer
// dropped, plus adjacent-word bigrams for phrase matching.
func ExtractKeywords(query string) []string {
	cleaned := nonWordChars.ReplaceAllString(strings.ToLower(query), " ")

	var words []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		words = append(words, w)
	}

	keywords := make([]string, 0, len(words)*2)
	keywords = append(keywords, words...)
	for i := 0; i+1 < len(words); i++ {
		keywords = append(keywords, words[i]+" "+words[i+1])
	}

	return keywords
}

// ScoreChunks scores every chunk against the query and returns at most
// topK results in descending score order. Ties keep the chunks' original
// collection order. Chunks at or below the relevance floor are dropped,
// and a non-positive topK yields no results.
//
// Score composition, in fixed order:
//  1. Cosine similarity between query and chunk embeddings.
//  2. Exact-phrase bonus when the chunk contains the full query.
//  3. Keyword-overlap ratio, scaled.
//  4. Keyword-density bonus, capped; rewards short chunks with many hits.
//  5. Strategy bonus per matched keyword for keyword/hybrid strategies.
//  6. The running score multiplied by weight, trust and a freshness decay.
func ScoreChunks(
	query string,
	queryEmbedding []float32,
	chunks []domain.Chunk,
	strategy domain.RetrievalStrategy,
	topK int,
) []domain.SearchResult {
	if topK <= 0 {
		return []domain.SearchResult{}
	}

	keywords := ExtractKeywords(query)
	queryLower := strings.ToLower(query)
	now := time.Now()

	results := make([]domain.SearchResult, 0, len(chunks))

	for _, chunk := range chunks {
		score := 0.0
		chunkLower := strings.ToLower(chunk.Text)

		// 1. Semantic similarity (base score)
		if chunk.Embedding != nil {
			score += dotProduct(queryEmbedding, chunk.Embedding)
		}

		// 2. Exact phrase match bonus (highest priority)
		if strings.Contains(chunkLower, queryLower) {
			score += exactPhraseBonus
		}

		// 3. Keyword overlap
		matched := 0
		for _, k := range keywords {
			if strings.Contains(chunkLower, k) {
				matched++
			}
		}
		total := len(keywords)
		if total < 1 {
			total = 1
		}
		score += float64(matched) / float64(total) * keywordOverlapScale

		// 4. Keyword density bonus (more matches in shorter text = more relevant)
		if matched > 0 {
			density := float64(matched) / (float64(len(chunk.Text)) / 100.0)
			score += math.Min(density*densityScale, densityCap)
		}

		// 5. Strategy-specific boosting
		if strategy == domain.StrategyKeyword || strategy == domain.StrategyHybrid {
			score += float64(matched) * strategyBonusPerHit
		}

		// 6. Weight, trust and freshness multipliers
		ageInDays := now.Sub(chunk.Metadata.Freshness).Hours() / 24
		freshness := math.Max(freshnessFloor, 1-ageInDays*freshnessDecayPerDay)
		score *= chunk.Weight * chunk.Metadata.TrustScore * freshness

		if score > relevanceFloor {
			results = append(results, domain.SearchResult{
				Chunk:    chunk,
				Score:    score,
				Strategy: strategy,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}

	return results
}

// dotProduct multiplies two vectors element-wise up to the shorter length.
// Both inputs are unit-normalised, so this is cosine similarity.
func dotProduct(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var acc float64
	for i := 0; i < n; i++ {
		acc += float64(a[i]) * float64(b[i])
	}
	return acc
}
