package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbed(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/embeddings", r.URL.Path)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotModel = req.Model

		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{0.1, 0.2, 0.3}}) //nolint:errcheck
	}))
	defer server.Close()

	s := NewEmbeddingService(Config{BaseURL: server.URL, Dimensions: 3})

	vec, err := s.Embed(context.Background(), "some text", "all-minilm")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, "all-minilm", gotModel)
}

func TestEmbed_DefaultModel(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotModel = req.Model
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{1}}) //nolint:errcheck
	}))
	defer server.Close()

	s := NewEmbeddingService(Config{BaseURL: server.URL})

	_, err := s.Embed(context.Background(), "text", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, gotModel)
}

func TestEmbed_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	s := NewEmbeddingService(Config{BaseURL: server.URL})

	_, err := s.Embed(context.Background(), "text", "")
	assert.ErrorContains(t, err, "status 404")
}

func TestDefaults(t *testing.T) {
	s := NewEmbeddingService(Config{})
	assert.Equal(t, DefaultDimensions, s.Dimensions())
	assert.Equal(t, DefaultModel, s.model)
}
