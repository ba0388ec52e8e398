// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reembed

import (
	"context"

	"github.com/poiesic/realsearch/core"
)

const (
	// DefaultBatchSize is the default number of chunks to process in each batch
	DefaultBatchSize = 100
)

// ChunkStore is the slice of the vector index that re-embedding needs: walking
// the stored corpus and writing chunks back. *badger.VectorIndex satisfies it.
type ChunkStore interface {
	ListChunks(ctx context.Context) ([]*core.DocumentChunk, error)
	AddChunks(ctx context.Context, chunks ...*core.DocumentChunk) ([]*core.DocumentChunk, error)
}

// ChunkIterator iterates over stored chunks in batches.
type ChunkIterator struct {
	store       ChunkStore
	batchSize   int
	onlyMissing bool
}

// NewChunkIterator creates a new chunk iterator.
// batchSize: number of chunks to process in each batch (must be > 0)
// onlyMissing: visit only chunks that have no vector yet
func NewChunkIterator(store ChunkStore, batchSize int, onlyMissing bool) *ChunkIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ChunkIterator{
		store:       store,
		batchSize:   batchSize,
		onlyMissing: onlyMissing,
	}
}

// ForEach iterates over the selected chunks, calling fn for each batch.
// Iteration stops on first error from fn or when all chunks are processed.
// Context cancellation is checked between batches.
func (it *ChunkIterator) ForEach(ctx context.Context, fn func([]*core.DocumentChunk) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	chunks, err := it.selectChunks(ctx)
	if err != nil {
		return err
	}

	if len(chunks) == 0 {
		return nil
	}

	for i := 0; i < len(chunks); i += it.batchSize {
		end := min(i+it.batchSize, len(chunks))

		if err := fn(chunks[i:end]); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}

// selectChunks lists the corpus, applying the missing-vector filter when set.
func (it *ChunkIterator) selectChunks(ctx context.Context) ([]*core.DocumentChunk, error) {
	chunks, err := it.store.ListChunks(ctx)
	if err != nil {
		return nil, err
	}

	if !it.onlyMissing {
		return chunks, nil
	}

	missing := make([]*core.DocumentChunk, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk.Vector) == 0 {
			missing = append(missing, chunk)
		}
	}
	return missing, nil
}
