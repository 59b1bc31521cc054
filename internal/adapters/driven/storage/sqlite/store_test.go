package sqlite

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*StateStore, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "archirag-test-*")
	require.NoError(t, err)

	store, err := NewStateStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testDocument(id string) domain.Document {
	return domain.Document{
		ID:         id,
		FileName:   id + ".txt",
		FileType:   "text/plain",
		Content:    "content of " + id,
		IngestedAt: time.Now().UTC().Truncate(time.Second),
		Status:     domain.StatusIndexed,
		Hash:       "hash-" + id,
	}
}

func testChunk(id, docID string, index int) domain.Chunk {
	return domain.Chunk{
		ID:        id,
		Text:      "chunk text " + id,
		Embedding: []float32{0.25, -0.5, 0.75},
		Weight:    1.0,
		Metadata: domain.ChunkMetadata{
			DocumentID:     docID,
			ChunkIndex:     index,
			SourceFileName: docID + ".txt",
			StartWord:      index * 10,
			EndWord:        index*10 + 10,
			TrustScore:     1.0,
			Freshness:      time.Now().UTC().Truncate(time.Second),
		},
	}
}

func TestStateStore_DocumentRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := testDocument("doc-1")
	require.NoError(t, store.SaveDocuments(ctx, []domain.Document{doc}))

	docs, err := store.LoadDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	got := docs[0]
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, doc.FileName, got.FileName)
	assert.Equal(t, doc.FileType, got.FileType)
	assert.Equal(t, doc.Content, got.Content)
	assert.Equal(t, doc.Status, got.Status)
	assert.Equal(t, doc.Hash, got.Hash)
	assert.True(t, doc.IngestedAt.Equal(got.IngestedAt))
}

func TestStateStore_ChunkRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	chunk := testChunk("chunk-1", "doc-1", 0)
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{chunk}))

	chunks, err := store.LoadChunks(ctx)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	got := chunks[0]
	assert.Equal(t, chunk.ID, got.ID)
	assert.Equal(t, chunk.Text, got.Text)
	assert.Equal(t, chunk.Embedding, got.Embedding)
	assert.Equal(t, chunk.Weight, got.Weight)
	assert.Equal(t, chunk.Metadata.DocumentID, got.Metadata.DocumentID)
	assert.Equal(t, chunk.Metadata.ChunkIndex, got.Metadata.ChunkIndex)
	assert.Equal(t, chunk.Metadata.StartWord, got.Metadata.StartWord)
	assert.Equal(t, chunk.Metadata.EndWord, got.Metadata.EndWord)
	assert.Equal(t, chunk.Metadata.TrustScore, got.Metadata.TrustScore)
	assert.True(t, chunk.Metadata.Freshness.Equal(got.Metadata.Freshness))
}

func TestStateStore_SaveIsSnapshot(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SaveDocuments(ctx, []domain.Document{
		testDocument("doc-1"), testDocument("doc-2"),
	}))
	require.NoError(t, store.SaveDocuments(ctx, []domain.Document{
		testDocument("doc-3"),
	}))

	docs, err := store.LoadDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1, "save must replace the prior collection")
	assert.Equal(t, "doc-3", docs[0].ID)
}

func TestStateStore_DeleteDocument(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SaveDocuments(ctx, []domain.Document{
		testDocument("doc-1"), testDocument("doc-2"),
	}))
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		testChunk("chunk-1", "doc-1", 0),
		testChunk("chunk-2", "doc-1", 1),
		testChunk("chunk-3", "doc-2", 0),
	}))

	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	docs, err := store.LoadDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "doc-2", docs[0].ID)

	chunks, err := store.LoadChunks(ctx)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "chunk-3", chunks[0].ID)
}

func TestStateStore_DeleteAbsentIsNoop(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.NoError(t, store.DeleteDocument(context.Background(), "missing"))
}

func TestStateStore_ClearAll(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SaveDocuments(ctx, []domain.Document{testDocument("doc-1")}))
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{testChunk("chunk-1", "doc-1", 0)}))

	require.NoError(t, store.ClearAll(ctx))

	docs, err := store.LoadDocuments(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)

	chunks, err := store.LoadChunks(ctx)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestStateStore_NilEmbeddingSurvives(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	chunk := testChunk("chunk-1", "doc-1", 0)
	chunk.Embedding = nil
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{chunk}))

	chunks, err := store.LoadChunks(ctx)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Nil(t, chunks[0].Embedding)
}

func TestFloat32BytesRoundTrip(t *testing.T) {
	in := []float32{0, 1, -1, 0.5, 3.14159}
	assert.Equal(t, in, bytesToFloat32Slice(float32SliceToBytes(in)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}
