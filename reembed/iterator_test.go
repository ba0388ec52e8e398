package reembed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/realsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChunkStore is an in-memory ChunkStore for iterator tests.
type fakeChunkStore struct {
	chunks  []*core.DocumentChunk
	listErr error
	added   [][]*core.DocumentChunk
}

func (f *fakeChunkStore) ListChunks(ctx context.Context) ([]*core.DocumentChunk, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.chunks, nil
}

func (f *fakeChunkStore) AddChunks(ctx context.Context, chunks ...*core.DocumentChunk) ([]*core.DocumentChunk, error) {
	f.added = append(f.added, chunks)
	return chunks, nil
}

func makeChunks(n int) []*core.DocumentChunk {
	chunks := make([]*core.DocumentChunk, n)
	for i := range chunks {
		chunks[i] = &core.DocumentChunk{
			Content:   fmt.Sprintf("chunk %d", i),
			ChunkType: core.ChunkProperty,
			Vector:    []float32{1, 0},
		}
	}
	return chunks
}

func TestChunkIteratorBatches(t *testing.T) {
	store := &fakeChunkStore{chunks: makeChunks(25)}
	iterator := NewChunkIterator(store, 10, false)

	var sizes []int
	err := iterator.ForEach(context.Background(), func(batch []*core.DocumentChunk) error {
		sizes = append(sizes, len(batch))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{10, 10, 5}, sizes)
}

func TestChunkIteratorEmptyStore(t *testing.T) {
	iterator := NewChunkIterator(&fakeChunkStore{}, 10, false)

	calls := 0
	err := iterator.ForEach(context.Background(), func([]*core.DocumentChunk) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestChunkIteratorStopsOnError(t *testing.T) {
	store := &fakeChunkStore{chunks: makeChunks(30)}
	iterator := NewChunkIterator(store, 10, false)

	sentinel := errors.New("batch failed")
	calls := 0
	err := iterator.ForEach(context.Background(), func([]*core.DocumentChunk) error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestChunkIteratorPropagatesListError(t *testing.T) {
	sentinel := errors.New("store down")
	iterator := NewChunkIterator(&fakeChunkStore{listErr: sentinel}, 10, false)

	err := iterator.ForEach(context.Background(), func([]*core.DocumentChunk) error { return nil })
	assert.ErrorIs(t, err, sentinel)
}

func TestChunkIteratorOnlyMissing(t *testing.T) {
	chunks := makeChunks(4)
	chunks[1].Vector = nil
	chunks[3].Vector = nil
	iterator := NewChunkIterator(&fakeChunkStore{chunks: chunks}, 10, true)

	var visited []string
	err := iterator.ForEach(context.Background(), func(batch []*core.DocumentChunk) error {
		for _, chunk := range batch {
			visited = append(visited, chunk.Content)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"chunk 1", "chunk 3"}, visited)
}

func TestChunkIteratorDefaultBatchSize(t *testing.T) {
	iterator := NewChunkIterator(&fakeChunkStore{}, 0, false)
	assert.Equal(t, DefaultBatchSize, iterator.batchSize)
}

func TestChunkIteratorCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	iterator := NewChunkIterator(&fakeChunkStore{chunks: makeChunks(5)}, 10, false)
	err := iterator.ForEach(ctx, func([]*core.DocumentChunk) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
