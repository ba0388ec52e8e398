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


package realsearch

import (
	"context"
	"log/slog"

	"github.com/poiesic/realsearch/ai"
	"github.com/poiesic/realsearch/ai/openai"
	"github.com/poiesic/realsearch/analytics"
	"github.com/poiesic/realsearch/core"
	"github.com/poiesic/realsearch/extract"
	"github.com/poiesic/realsearch/ingestion"
	"github.com/poiesic/realsearch/intent"
	"github.com/poiesic/realsearch/search"
	"github.com/poiesic/realsearch/storage"
	"github.com/poiesic/realsearch/storage/badger"
	"github.com/poiesic/realsearch/storage/neo4j"
	"github.com/poiesic/realsearch/validation"
)

// Engine is the top-level entry point: it wires extraction, classification,
// retrieval, fusion, and validation over concrete stores.
type Engine struct {
	index     storage.VectorIndex
	graph     storage.GraphStore
	embedder  ai.Embedder
	pipeline  *search.Pipeline
	validator *validation.Validator
	recorder  analytics.Recorder
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig  *ai.Config
	recorder  analytics.Recorder
	weights   *search.Weights
	threshold float64
}

// WithAIConfig overrides the embedding service configuration.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithAnalyticsRecorder sets the analytics sink.
// Default is a log recorder.
func WithAnalyticsRecorder(recorder analytics.Recorder) EngineOption {
	return func(o *engineOptions) {
		if recorder != nil {
			o.recorder = recorder
		}
	}
}

// WithFusionWeights overrides the vector/graph fusion weights.
func WithFusionWeights(weights search.Weights) EngineOption {
	return func(o *engineOptions) {
		o.weights = &weights
	}
}

// WithValidationThreshold sets the confidence threshold of the
// hallucination gate. Default is 0.7.
func WithValidationThreshold(threshold float64) EngineOption {
	return func(o *engineOptions) {
		o.threshold = threshold
	}
}

// NewEngine opens an embedded badger vector index at indexPath, connects to
// the neo4j graph store, and builds the full routing pipeline.
func NewEngine(ctx context.Context, indexPath string, graphConfig neo4j.Config, opts ...EngineOption) (*Engine, error) {
	options := applyOptions(opts)

	index, err := badger.NewVectorIndex(indexPath)
	if err != nil {
		return nil, err
	}

	graph, err := neo4j.NewGraphStore(ctx, graphConfig)
	if err != nil {
		index.Close()
		return nil, err
	}

	embedder, err := openai.NewEmbedder(options.aiConfig)
	if err != nil {
		graph.Close(ctx)
		index.Close()
		return nil, err
	}

	engine, err := NewEngineWithStores(index, graph, embedder, opts...)
	if err != nil {
		graph.Close(ctx)
		index.Close()
		return nil, err
	}
	return engine, nil
}

// NewEngineWithStores builds an Engine over caller-supplied stores and
// embedder. The Engine takes ownership and closes them on Close.
func NewEngineWithStores(index storage.VectorIndex, graph storage.GraphStore, embedder ai.Embedder, opts ...EngineOption) (*Engine, error) {
	if index == nil {
		return nil, search.ErrVectorIndexRequired
	}
	if graph == nil {
		return nil, search.ErrGraphStoreRequired
	}
	if embedder == nil {
		return nil, search.ErrEmbedderRequired
	}

	options := applyOptions(opts)

	vectorExec, err := search.NewVectorExecutor(embedder, index)
	if err != nil {
		return nil, err
	}
	graphExec, err := search.NewGraphExecutor(graph)
	if err != nil {
		return nil, err
	}

	pipelineOpts := []search.PipelineOption{search.WithRecorder(options.recorder)}
	if options.weights != nil {
		pipelineOpts = append(pipelineOpts, search.WithWeights(*options.weights))
	}

	pipeline, err := search.NewPipeline(
		extract.NewExtractor(),
		intent.NewClassifier(),
		vectorExec,
		graphExec,
		pipelineOpts...,
	)
	if err != nil {
		return nil, err
	}

	validator, err := validation.NewValidator(validation.WithThreshold(options.threshold))
	if err != nil {
		return nil, err
	}

	return &Engine{
		index:     index,
		graph:     graph,
		embedder:  embedder,
		pipeline:  pipeline,
		validator: validator,
		recorder:  options.recorder,
		logger:    slog.Default().With("component", "engine"),
	}, nil
}

func applyOptions(opts []EngineOption) *engineOptions {
	options := &engineOptions{
		aiConfig:  ai.DefaultConfig(),
		recorder:  analytics.NewLogRecorder(nil),
		threshold: 0.7,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// RouteAndSearch routes the query and returns fused, ranked evidence.
// Returns core.ErrNoEvidenceFound when every executed source came back empty.
func (e *Engine) RouteAndSearch(ctx context.Context, query core.Query, limit int) (core.RankedResults, error) {
	return e.pipeline.RouteAndSearch(ctx, query, limit)
}

// RouteAndSearchWithMonitor is RouteAndSearch with per-stage hooks.
func (e *Engine) RouteAndSearchWithMonitor(ctx context.Context, query core.Query, limit int, monitor search.SearchMonitor) (core.RankedResults, error) {
	return e.pipeline.RouteAndSearchWithMonitor(ctx, query, limit, monitor)
}

// Validate checks a generated answer against previously retrieved evidence.
func (e *Engine) Validate(generated string, evidence core.RankedResults) core.ValidationOutcome {
	return e.validator.Validate(generated, evidence)
}

// VectorIndex exposes the underlying index for seeding.
func (e *Engine) VectorIndex() storage.VectorIndex {
	return e.index
}

// GraphStore exposes the underlying graph store.
func (e *Engine) GraphStore() storage.GraphStore {
	return e.graph
}

// NewIngestionPipeline creates a chunk ingestion pipeline bound to this
// engine's index and embedder.
func (e *Engine) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(e.index, e.embedder, opts...)
}

// Close releases the stores. The engine must not be used afterwards.
func (e *Engine) Close(ctx context.Context) error {
	var firstErr error

	if err := e.graph.Close(ctx); err != nil {
		e.logger.Error("error closing graph store", "err", err)
		firstErr = err
	}
	if err := e.index.Close(); err != nil {
		e.logger.Error("error closing vector index", "err", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
