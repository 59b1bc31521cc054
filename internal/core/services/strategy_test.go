package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
)

func TestDetermineStrategy(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  domain.RetrievalStrategy
	}{
		{"single word", "cat", domain.StrategyKeyword},
		{"three words", "feline sleep habits", domain.StrategyKeyword},
		{"short query with summary cue still keyword", "overall score", domain.StrategyKeyword},
		{"summary cue", "Give me a summary of chapter two", domain.StrategySummary},
		{"how many cue", "how many species live in the reef", domain.StrategySummary},
		{"list all cue", "list all the ingredients mentioned in the recipe", domain.StrategySummary},
		{"analytical cue", "please explain the recursion used here in detail", domain.StrategyAnalytical},
		{"relationship cue", "describe the relationship between pressure and volume", domain.StrategyAnalytical},
		{"why cue", "reasons why the bridge collapsed during the storm", domain.StrategyAnalytical},
		{"summary wins over analytical", "explain the overall plot of the novel", domain.StrategySummary},
		{"neutral long query", "tell me about the cats living near the harbour", domain.StrategyHybrid},
		{"empty query", "", domain.StrategyHybrid},
		{"whitespace only", "   \t  ", domain.StrategyHybrid},
		{"case insensitive", "EXPLAIN THE DIFFERENCE BETWEEN THE TWO MODELS", domain.StrategyAnalytical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineStrategy(tt.query))
		})
	}
}

func TestDetermineStrategy_PureFunction(t *testing.T) {
	query := "explain the relationship between supply and demand"
	first := DetermineStrategy(query)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DetermineStrategy(query))
	}
}
