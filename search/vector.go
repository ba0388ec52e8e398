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


package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/realsearch/ai"
	"github.com/poiesic/realsearch/core"
	"github.com/poiesic/realsearch/storage"
)

const (
	// defaultSimilarityThreshold is the minimum cosine similarity for a
	// vector hit. Callers may tune it between 0.6 and 0.7.
	defaultSimilarityThreshold = 0.7

	// defaultExecutorTimeout bounds one executor call so a slow store
	// degrades to an empty contribution instead of stalling the request.
	defaultExecutorTimeout = 3 * time.Second

	// retryBaseDelay is the initial backoff before the single retry of an
	// unavailable store.
	retryBaseDelay = 100 * time.Millisecond

	// storeMaxAttempts is the total attempt budget per store call: the
	// original call plus one retry.
	storeMaxAttempts = 2
)

// VectorExecutor retrieves semantically similar chunks from a vector index.
type VectorExecutor struct {
	embedder  ai.Embedder
	index     storage.VectorIndex
	threshold float64
	timeout   time.Duration
	logger    *slog.Logger
}

// VectorOption configures a VectorExecutor.
type VectorOption func(*VectorExecutor) error

// WithVectorThreshold sets the minimum similarity for a hit.
// Default is 0.7.
func WithVectorThreshold(threshold float64) VectorOption {
	return func(e *VectorExecutor) error {
		e.threshold = threshold
		return nil
	}
}

// WithVectorTimeout sets the per-call timeout.
// Default is 3 seconds.
func WithVectorTimeout(timeout time.Duration) VectorOption {
	return func(e *VectorExecutor) error {
		if timeout > 0 {
			e.timeout = timeout
		}
		return nil
	}
}

// WithVectorLogger sets a custom logger.
// Default is slog.Default().
func WithVectorLogger(logger *slog.Logger) VectorOption {
	return func(e *VectorExecutor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewVectorExecutor creates a vector search executor.
func NewVectorExecutor(embedder ai.Embedder, index storage.VectorIndex, opts ...VectorOption) (*VectorExecutor, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if index == nil {
		return nil, ErrVectorIndexRequired
	}

	e := &VectorExecutor{
		embedder:  embedder,
		index:     index,
		threshold: defaultSimilarityThreshold,
		timeout:   defaultExecutorTimeout,
		logger:    slog.Default().With("component", "vector-executor"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Execute embeds the query text and searches the index. Results come back
// ordered by similarity descending. An unavailable store is retried once
// with backoff before the error is surfaced; an empty result slice is a
// normal terminal outcome, not an error.
func (e *VectorExecutor) Execute(ctx context.Context, query core.Query, entities core.EntitySet, label core.IntentLabel, limit int) ([]core.SearchResult, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	vector, err := e.embedder.EmbedText(ctx, query.Text)
	if err != nil {
		e.logger.Error("error generating embedding for query", "err", err)
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	var results []core.SearchResult
	err = RetryWithBackoff(ctx, func() error {
		var searchErr error
		results, searchErr = e.index.Search(ctx, vector, e.threshold, limit, query.Filters)
		return classifyStoreErr(searchErr)
	}, storeMaxAttempts, retryBaseDelay)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("vector search completed", "hits", len(results), "threshold", e.threshold)
	return results, nil
}

// classifyStoreErr folds timeout errors into the unavailability taxonomy so
// the retry and degradation policy treats them uniformly.
func classifyStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return err
}
