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
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/poiesic/realsearch/analytics"
	"github.com/poiesic/realsearch/core"
	"github.com/poiesic/realsearch/extract"
	"github.com/poiesic/realsearch/intent"
)

// greetingPattern matches bare conversational openers that carry no
// retrievable intent. Such queries short-circuit with empty evidence
// without touching either store.
var greetingPattern = regexp.MustCompile(`(?i)^\s*(hi|hiya|hello|hey|howdy|greetings|good\s+(?:morning|afternoon|evening)|thanks|thank\s+you)[\s!.,?]*$`)

// Pipeline routes a query through extraction, classification, strategy
// selection, retrieval, and fusion.
type Pipeline struct {
	extractor  *extract.Extractor
	classifier *intent.Classifier
	vector     *VectorExecutor
	graph      *GraphExecutor
	weights    Weights
	recorder   analytics.Recorder
	logger     *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline) error

// WithWeights overrides the fusion weights used in hybrid mode.
// Default is 0.7 vector / 0.3 graph. Weights must sum to 1.0.
func WithWeights(weights Weights) PipelineOption {
	return func(p *Pipeline) error {
		if err := weights.Validate(); err != nil {
			return err
		}
		p.weights = weights
		return nil
	}
}

// WithRecorder sets the analytics sink.
// Default discards events.
func WithRecorder(recorder analytics.Recorder) PipelineOption {
	return func(p *Pipeline) error {
		if recorder == nil {
			recorder = analytics.NewNopRecorder()
		}
		p.recorder = recorder
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a routing pipeline over the given stages.
func NewPipeline(
	extractor *extract.Extractor,
	classifier *intent.Classifier,
	vector *VectorExecutor,
	graph *GraphExecutor,
	opts ...PipelineOption,
) (*Pipeline, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if vector == nil {
		return nil, ErrVectorIndexRequired
	}
	if graph == nil {
		return nil, ErrGraphStoreRequired
	}

	p := &Pipeline{
		extractor:  extractor,
		classifier: classifier,
		vector:     vector,
		graph:      graph,
		weights:    DefaultWeights(),
		recorder:   analytics.NewNopRecorder(),
		logger:     slog.Default().With("component", "search-pipeline"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// RouteAndSearch classifies the query, selects a strategy, executes the
// matching stores, and fuses their results into one ranked list.
// Returns core.ErrNoEvidenceFound when every executed source came back
// empty; callers must fall back to a "no reliable information" message
// rather than generate from nothing.
func (p *Pipeline) RouteAndSearch(ctx context.Context, query core.Query, limit int) (core.RankedResults, error) {
	return p.RouteAndSearchWithMonitor(ctx, query, limit, nil)
}

// RouteAndSearchWithMonitor is RouteAndSearch with per-stage hooks.
// The monitor receives callbacks at each stage of the routing process.
func (p *Pipeline) RouteAndSearchWithMonitor(ctx context.Context, query core.Query, limit int, monitor SearchMonitor) (core.RankedResults, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	started := time.Now()
	empty := core.RankedResults{Query: query.Text}

	if err := core.ValidateQuery(&query); err != nil {
		return empty, err
	}
	if limit <= 0 {
		return empty, ErrInvalidLimit
	}

	monitor.Start(query.Text)

	if greetingPattern.MatchString(query.Text) {
		p.logger.Debug("greeting detected, skipping retrieval")
		results := core.RankedResults{Query: query.Text, Results: []core.RankedResult{}}
		monitor.Finish(results)
		p.record(ctx, query, "", started, 0, false)
		return results, nil
	}

	// Extraction and classification have no data dependency; run them
	// concurrently and select a strategy once both are in.
	var (
		entities core.EntitySet
		label    core.IntentLabel
		wg       sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		entities = p.extractor.Extract(query.Text)
	}()
	go func() {
		defer wg.Done()
		label = p.classifier.Classify(query.Text)
	}()
	wg.Wait()

	monitor.AfterEntityExtraction(entities)
	monitor.AfterIntentClassification(label)

	strategy := SelectStrategy(label, entities, !query.Filters.Empty())
	monitor.AfterStrategySelection(strategy)
	p.logger.Debug("strategy selected", "intent", label, "strategy", strategy)

	vectorResults, graphResults, degraded := p.executeStrategy(ctx, query, entities, label, strategy, limit, monitor)
	if err := ctx.Err(); err != nil {
		return empty, err
	}

	// Single-source strategies use the same weights; the absent source
	// contributes zero by construction.
	fused := Fuse(vectorResults, graphResults, p.weights, limit)

	results := core.RankedResults{Query: query.Text, Strategy: strategy, Results: fused}
	monitor.Finish(results)
	p.record(ctx, query, strategy, started, len(fused), degraded)

	if len(fused) == 0 {
		return results, core.ErrNoEvidenceFound
	}
	return results, nil
}

// executeStrategy runs the executors the strategy calls for. In hybrid mode
// both run concurrently against their independent stores. A failed source
// degrades to an empty contribution rather than failing the request.
func (p *Pipeline) executeStrategy(
	ctx context.Context,
	query core.Query,
	entities core.EntitySet,
	label core.IntentLabel,
	strategy core.Strategy,
	limit int,
	monitor SearchMonitor,
) (vectorResults, graphResults []core.SearchResult, degraded bool) {
	runVector := strategy != core.StrategyGraphOnly
	runGraph := strategy != core.StrategyVectorOnly

	var (
		wg                  sync.WaitGroup
		vectorErr, graphErr error
	)

	if runVector {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vectorResults, vectorErr = p.vector.Execute(ctx, query, entities, label, limit)
		}()
	}
	if runGraph {
		wg.Add(1)
		go func() {
			defer wg.Done()
			graphResults, graphErr = p.graph.Execute(ctx, query, entities, label, limit)
		}()
	}
	wg.Wait()

	if vectorErr != nil {
		p.logger.Warn("vector source degraded to empty", "err", vectorErr)
		monitor.SourceDegraded(core.SourceVector, vectorErr)
		vectorResults = nil
		degraded = true
	} else if runVector {
		monitor.AfterVectorSearch(vectorResults)
	}

	if graphErr != nil {
		p.logger.Warn("graph source degraded to empty", "err", graphErr)
		monitor.SourceDegraded(core.SourceGraph, graphErr)
		graphResults = nil
		degraded = true
	} else if runGraph {
		monitor.AfterGraphSearch(graphResults)
	}

	return vectorResults, graphResults, degraded
}

// record sends the analytics event. Failures are logged, never propagated;
// the recorder sits outside the decision path.
func (p *Pipeline) record(ctx context.Context, query core.Query, strategy core.Strategy, started time.Time, resultCount int, hadError bool) {
	event := analytics.Event{
		Query:       query.Text,
		Strategy:    strategy,
		LatencyMS:   time.Since(started).Milliseconds(),
		ResultCount: resultCount,
		HadError:    hadError,
	}
	if err := p.recorder.Record(ctx, event); err != nil {
		p.logger.Debug("analytics record failed", "err", err)
	}
}
