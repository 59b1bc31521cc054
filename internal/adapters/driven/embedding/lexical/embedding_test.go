package lexical

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func l2norm(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

func TestEmbed_Deterministic(t *testing.T) {
	s := New()
	ctx := context.Background()

	a, err := s.Embed(ctx, "cats hunt at night", "lexical-1024")
	require.NoError(t, err)
	b, err := s.Embed(ctx, "cats hunt at night", "lexical-1024")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestEmbed_FixedLengthUnitVector(t *testing.T) {
	s := New()

	vec, err := s.Embed(context.Background(), "The quick brown fox jumps over the lazy dog", "")
	require.NoError(t, err)

	assert.Len(t, vec, Dimensions)
	assert.InDelta(t, 1.0, l2norm(vec), 1e-5)
}

func TestEmbed_EmptyTextIsZeroVector(t *testing.T) {
	s := New()

	vec, err := s.Embed(context.Background(), "", "")
	require.NoError(t, err)

	assert.Len(t, vec, Dimensions)
	assert.Equal(t, 0.0, l2norm(vec), "zero vector must not be normalised")
}

func TestEmbed_CaseInsensitive(t *testing.T) {
	s := New()
	ctx := context.Background()

	lower, err := s.Embed(ctx, "archirag retrieval", "")
	require.NoError(t, err)
	upper, err := s.Embed(ctx, "ARCHIRAG Retrieval", "")
	require.NoError(t, err)

	assert.Equal(t, lower, upper)
}

func TestEmbed_PositionSensitive(t *testing.T) {
	s := New()
	ctx := context.Background()

	// Word order changes the 1/(i+1) weighting, so reversed input
	// must produce a different vector.
	ab, err := s.Embed(ctx, "alpha beta", "")
	require.NoError(t, err)
	ba, err := s.Embed(ctx, "beta alpha", "")
	require.NoError(t, err)

	assert.NotEqual(t, ab, ba)
}

func TestEmbed_SimilarTextScoresHigher(t *testing.T) {
	s := New()
	ctx := context.Background()

	query, err := s.Embed(ctx, "cats hunt at night", "")
	require.NoError(t, err)
	near, err := s.Embed(ctx, "cats hunt at night in the garden", "")
	require.NoError(t, err)
	far, err := s.Embed(ctx, "quarterly revenue projections", "")
	require.NoError(t, err)

	dot := func(a, b []float32) float64 {
		var acc float64
		for i := range a {
			acc += float64(a[i]) * float64(b[i])
		}
		return acc
	}

	assert.Greater(t, dot(query, near), dot(query, far))
}

func TestDimensions(t *testing.T) {
	assert.Equal(t, 1024, New().Dimensions())
}
