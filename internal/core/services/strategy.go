package services

import (
	"strings"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
)

// Lexical cues for strategy classification, checked in rule order.
var (
	summaryCues    = []string{"summary", "overall", "how many", "list all", "what are"}
	analyticalCues = []string{"explain", "relationship", "why", "how does", "compare", "difference"}
)

// DetermineStrategy classifies a query into a retrieval strategy using
// ordered lexical rules; the first matching rule wins.
//
//  1. Three words or fewer: keyword.
//  2. Summary cue present: summary.
//  3. Analytical cue present: analytical.
//  4. Otherwise: hybrid.
//
// Pure function of the query text.
func DetermineStrategy(query string) domain.RetrievalStrategy {
	q := strings.ToLower(strings.TrimSpace(query))

	// An empty query carries no lexical signal; fall through to the
	// hybrid default rather than treating it as a short keyword query.
	if q == "" {
		return domain.StrategyHybrid
	}

	if len(strings.Fields(q)) <= 3 {
		return domain.StrategyKeyword
	}

	for _, cue := range summaryCues {
		if strings.Contains(q, cue) {
			return domain.StrategySummary
		}
	}

	for _, cue := range analyticalCues {
		if strings.Contains(q, cue) {
			return domain.StrategyAnalytical
		}
	}

	return domain.StrategyHybrid
}
