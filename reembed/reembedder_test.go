package reembed

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/realsearch/ai/mock"
	"github.com/poiesic/realsearch/core"
	"github.com/poiesic/realsearch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *badger.VectorIndex {
	t.Helper()
	index, backend, err := badger.NewMemoryVectorIndex()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = index.Close()
		_ = backend.Close()
	})
	store, ok := index.(*badger.VectorIndex)
	require.True(t, ok)
	return store
}

func seedChunks(t *testing.T, store *badger.VectorIndex, contents ...string) {
	t.Helper()
	chunks := make([]*core.DocumentChunk, len(contents))
	for i, content := range contents {
		chunks[i] = &core.DocumentChunk{
			Content:   content,
			ChunkType: core.ChunkProperty,
			Vector:    []float32{1, 0, 0},
		}
	}
	_, err := store.AddChunks(context.Background(), chunks...)
	require.NoError(t, err)
}

func TestNewReembedderGuards(t *testing.T) {
	store := newTestStore(t)

	_, err := NewReembedder(nil, mock.NewMockEmbedder(), nil, nil)
	assert.ErrorIs(t, err, ErrChunkStoreRequired)

	_, err = NewReembedder(store, nil, nil, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestReembedderRun(t *testing.T) {
	store := newTestStore(t)
	seedChunks(t, store, "123 Maple St", "456 Oak Ave", "market summary for Dallas")

	embedder := mock.NewMockEmbedder()
	var progress bytes.Buffer

	reembedder, err := NewReembedder(store, embedder, &Config{
		BatchSize:      2,
		ReportInterval: 1,
		MaxAttempts:    2,
		RetryDelay:     time.Millisecond,
	}, &progress)
	require.NoError(t, err)

	require.NoError(t, reembedder.Run(context.Background()))

	// Two batches of sizes 2 and 1.
	assert.Equal(t, 2, embedder.CallCount())
	assert.Contains(t, progress.String(), "Re-embedding complete")

	chunks, err := store.ListChunks(context.Background())
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.NotEqual(t, []float32{1, 0, 0}, chunk.Vector, "vector should be replaced for %q", chunk.Content)
		assert.Len(t, chunk.Vector, 384)
	}
}

func TestReembedderRunEmptyCorpus(t *testing.T) {
	store := newTestStore(t)

	var progress bytes.Buffer
	reembedder, err := NewReembedder(store, mock.NewMockEmbedder(), nil, &progress)
	require.NoError(t, err)

	require.NoError(t, reembedder.Run(context.Background()))
	assert.Contains(t, progress.String(), "No chunks to re-embed")
}

func TestReembedderRetriesTransientFailures(t *testing.T) {
	store := newTestStore(t)
	seedChunks(t, store, "transient chunk")

	attempts := 0
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("embedding service hiccup")
		}
		vectors := make([][]float32, len(texts))
		for i := range vectors {
			vectors[i] = []float32{0, 1, 0}
		}
		return vectors, nil
	}

	reembedder, err := NewReembedder(store, embedder, &Config{
		BatchSize:      10,
		ReportInterval: 10,
		MaxAttempts:    3,
		RetryDelay:     time.Millisecond,
	}, nil)
	require.NoError(t, err)

	require.NoError(t, reembedder.Run(context.Background()))
	assert.Equal(t, 2, attempts)
}

func TestReembedderSurfacesPersistentFailure(t *testing.T) {
	store := newTestStore(t)
	seedChunks(t, store, "doomed chunk")

	sentinel := errors.New("embedding model missing")
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, sentinel
	}

	reembedder, err := NewReembedder(store, embedder, &Config{
		BatchSize:      10,
		ReportInterval: 10,
		MaxAttempts:    2,
		RetryDelay:     time.Millisecond,
	}, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, reembedder.Run(context.Background()), sentinel)
}

func TestReembedderOnlyMissing(t *testing.T) {
	store := newTestStore(t)
	seedChunks(t, store, "already embedded")
	_, err := store.AddChunks(context.Background(), &core.DocumentChunk{
		Content:   "missing vector",
		ChunkType: core.ChunkMarket,
	})
	require.NoError(t, err)

	var embedded []string
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		embedded = append(embedded, texts...)
		vectors := make([][]float32, len(texts))
		for i := range vectors {
			vectors[i] = []float32{0, 0, 1}
		}
		return vectors, nil
	}

	reembedder, err := NewReembedder(store, embedder, &Config{
		BatchSize:      10,
		ReportInterval: 10,
		MaxAttempts:    1,
		RetryDelay:     time.Millisecond,
		OnlyMissing:    true,
	}, nil)
	require.NoError(t, err)

	require.NoError(t, reembedder.Run(context.Background()))
	assert.Equal(t, []string{"missing vector"}, embedded)
}
