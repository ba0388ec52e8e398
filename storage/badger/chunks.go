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


package badger

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/realsearch/core"
	"github.com/poiesic/realsearch/storage"
)

// VectorIndex is an embedded storage.VectorIndex over BadgerDB.
// Search is a full scan with cosine scoring; suitable for local deployments
// and tests, not for corpora beyond a few hundred thousand chunks.
type VectorIndex struct {
	backend *Backend
	ownsDB  bool
	logger  *slog.Logger
}

var _ storage.VectorIndex = (*VectorIndex)(nil)

// NewVectorIndex opens an embedded vector index at the given path.
//
// Returns storage.VectorIndex interface to enforce abstraction.
func NewVectorIndex(filePath string) (storage.VectorIndex, error) {
	backend, err := OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}
	idx := newVectorIndex(backend)
	idx.ownsDB = true
	return idx, nil
}

// NewVectorIndexWithBackend wraps an already-open backend.
// The caller retains ownership of the backend.
func NewVectorIndexWithBackend(backend *Backend) storage.VectorIndex {
	return newVectorIndex(backend)
}

func newVectorIndex(backend *Backend) *VectorIndex {
	return &VectorIndex{
		backend: backend,
		logger:  slog.Default().With("component", "badger-vector-index"),
	}
}

// AddChunks inserts document chunks into the index.
// Chunks with Id=0 get content-derived IDs. Sets InsertedAt if unset.
func (v *VectorIndex) AddChunks(ctx context.Context, chunks ...*core.DocumentChunk) ([]*core.DocumentChunk, error) {
	err := v.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			if err := core.ValidateDocumentChunk(chunk); err != nil {
				return err
			}
			if chunk.Id == 0 {
				chunk.Id = core.IDFromContent(chunk.Content)
			}
			if chunk.InsertedAt.IsZero() {
				chunk.InsertedAt = time.Now().UTC()
			}

			key := makeChunkKey(chunk.Id)
			value := storage.MarshalDocumentChunk(chunk)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			typeKey := makeChunkTypeKey(chunk.ChunkType, chunk.Id)
			if err := tx.Set(typeKey, storage.MarshalID(chunk.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return chunks, err
}

// Search finds chunks with cosine similarity >= threshold, ordered descending.
func (v *VectorIndex) Search(ctx context.Context, vector []float32, threshold float64, limit int, filters core.Filters) ([]core.SearchResult, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", storage.ErrInvalidQuery)
	}

	var results []core.SearchResult

	err := v.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := iter.Item()
			if bytes.HasPrefix(item.Key(), []byte(chunkTypePrefix+":")) {
				continue
			}

			var chunk *core.DocumentChunk
			err := item.Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalDocumentChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if chunk == nil || len(chunk.Vector) == 0 {
				continue
			}

			if !matchesFilters(chunk, filters) {
				continue
			}

			similarity := cosineSimilarity(vector, chunk.Vector)
			if similarity < threshold {
				continue
			}

			results = append(results, core.SearchResult{
				ID:       strconv.FormatUint(uint64(chunk.Id), 10),
				Source:   core.SourceVector,
				Content:  chunk.Content,
				Score:    clamp01(similarity),
				Metadata: chunkMetadata(chunk),
			})
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(results, func(a, b core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// ListChunks returns every stored chunk. Used by maintenance tooling that
// needs to walk the corpus (re-embedding after a model change); not part of
// the storage.VectorIndex interface.
func (v *VectorIndex) ListChunks(ctx context.Context) ([]*core.DocumentChunk, error) {
	var chunks []*core.DocumentChunk

	err := v.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := iter.Item().Value(func(val []byte) error {
				chunk, err := storage.UnmarshalDocumentChunk(val)
				if err != nil {
					return err
				}
				chunks = append(chunks, chunk)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// Close closes the underlying database if this index owns it.
func (v *VectorIndex) Close() error {
	if v.ownsDB {
		return v.backend.Close()
	}
	return nil
}

// matchesFilters applies caller-supplied structured filters against chunk metadata.
func matchesFilters(chunk *core.DocumentChunk, filters core.Filters) bool {
	if filters.Empty() {
		return true
	}
	if filters.PropertyType != "" && chunk.Metadata["property_type"] != filters.PropertyType {
		return false
	}
	if filters.PriceMin > 0 || filters.PriceMax > 0 {
		raw, ok := chunk.Metadata["price"]
		if !ok {
			return false
		}
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return false
		}
		if filters.PriceMin > 0 && price < filters.PriceMin {
			return false
		}
		if filters.PriceMax > 0 && price > filters.PriceMax {
			return false
		}
	}
	return true
}

// chunkMetadata builds the result metadata map from a chunk.
func chunkMetadata(chunk *core.DocumentChunk) map[string]string {
	md := make(map[string]string, len(chunk.Metadata)+2)
	for k, val := range chunk.Metadata {
		md[k] = val
	}
	md["chunk_type"] = string(chunk.ChunkType)
	if chunk.Region != "" {
		md["region"] = chunk.Region
	}
	return md
}

// cosineSimilarity scores two vectors independent of their magnitudes.
// Mismatched lengths and zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
