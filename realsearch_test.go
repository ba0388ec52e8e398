package realsearch

import (
	"context"
	"testing"

	"github.com/poiesic/realsearch/ai/mock"
	"github.com/poiesic/realsearch/core"
	"github.com/poiesic/realsearch/search"
	"github.com/poiesic/realsearch/storage"
	"github.com/poiesic/realsearch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGraph is a minimal storage.GraphStore for facade tests.
type stubGraph struct {
	results []core.SearchResult
}

func (s *stubGraph) RunTemplate(_ context.Context, _ storage.TemplateKey, _ map[string]any) ([]core.SearchResult, error) {
	return s.results, nil
}

func (s *stubGraph) Close(_ context.Context) error { return nil }

func newTestEngine(t *testing.T, graph *stubGraph, opts ...EngineOption) *Engine {
	t.Helper()

	index, _, err := badger.NewMemoryVectorIndex()
	require.NoError(t, err)

	engine, err := NewEngineWithStores(index, graph, mock.NewMockEmbedder(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close(context.Background()) })
	return engine
}

func TestNewEngineWithStores(t *testing.T) {
	t.Run("builds full pipeline", func(t *testing.T) {
		engine := newTestEngine(t, &stubGraph{})

		assert.NotNil(t, engine.VectorIndex())
		assert.NotNil(t, engine.GraphStore())
		assert.NotNil(t, engine.pipeline)
		assert.NotNil(t, engine.validator)
	})

	t.Run("constructor guards", func(t *testing.T) {
		index, _, err := badger.NewMemoryVectorIndex()
		require.NoError(t, err)
		defer index.Close()

		_, err = NewEngineWithStores(nil, &stubGraph{}, mock.NewMockEmbedder())
		assert.ErrorIs(t, err, search.ErrVectorIndexRequired)

		_, err = NewEngineWithStores(index, nil, mock.NewMockEmbedder())
		assert.ErrorIs(t, err, search.ErrGraphStoreRequired)

		_, err = NewEngineWithStores(index, &stubGraph{}, nil)
		assert.ErrorIs(t, err, search.ErrEmbedderRequired)
	})
}

func TestEngineRouteAndSearch(t *testing.T) {
	graph := &stubGraph{results: []core.SearchResult{
		{ID: "md-1", Source: core.SourceGraph, Content: "Dallas median price is $410,000", Score: 1.0},
	}}
	engine := newTestEngine(t, graph)

	results, err := engine.RouteAndSearch(context.Background(),
		core.Query{Text: "What is the median price in Dallas, TX?", Role: core.RoleInvestor}, 5)

	require.NoError(t, err)
	assert.Equal(t, core.StrategyGraphOnly, results.Strategy)
	require.Len(t, results.Results, 1)
}

func TestEngineValidate(t *testing.T) {
	engine := newTestEngine(t, &stubGraph{})

	evidence := core.RankedResults{Results: []core.RankedResult{
		{SearchResult: core.SearchResult{Content: "Median price $410,000", Source: core.SourceGraph}},
		{SearchResult: core.SearchResult{Content: "Inventory trending up", Source: core.SourceGraph}},
		{SearchResult: core.SearchResult{Content: "Days on market at 28", Source: core.SourceGraph}},
	}}

	t.Run("grounded answer passes", func(t *testing.T) {
		outcome := engine.Validate("Based on the data, the median price is $410,000.", evidence)
		assert.True(t, outcome.Passed)
	})

	t.Run("fabricated figure fails", func(t *testing.T) {
		outcome := engine.Validate("The median price is $999,999,999.", evidence)
		assert.False(t, outcome.Passed)
	})
}

func TestEngineFactoryMethods(t *testing.T) {
	engine := newTestEngine(t, &stubGraph{})

	pipeline, err := engine.NewIngestionPipeline()
	require.NoError(t, err)
	require.NotNil(t, pipeline)
	pipeline.Release()
}
