package search

import (
	"testing"

	"github.com/poiesic/realsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vectorResult(id, content string, score float64) core.SearchResult {
	return core.SearchResult{ID: id, Source: core.SourceVector, Content: content, Score: score}
}

func graphResult(id, content string, score float64) core.SearchResult {
	return core.SearchResult{ID: id, Source: core.SourceGraph, Content: content, Score: score}
}

func TestWeightsValidate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())
	assert.NoError(t, Weights{Vector: 1.0}.Validate())
	assert.ErrorIs(t, Weights{Vector: 0.5, Graph: 0.3}.Validate(), core.ErrInvalidWeights)
	assert.ErrorIs(t, Weights{Vector: 1.2, Graph: -0.2}.Validate(), core.ErrInvalidWeights)
}

func TestFuseCrossSourceArithmetic(t *testing.T) {
	// Same content in both stores, 0.8 vector and 0.6 graph, fuses to
	// 0.7*0.8 + 0.3*0.6 + 0.05 = 0.79.
	content := "Median price in Austin is $550,000"
	fused := Fuse(
		[]core.SearchResult{vectorResult("v-1", content, 0.8)},
		[]core.SearchResult{graphResult("g-9", content, 0.6)},
		DefaultWeights(), 10,
	)

	require.Len(t, fused, 1)
	assert.InDelta(t, 0.79, fused[0].CombinedScore, 1e-9)
	assert.Equal(t, 0, fused[0].Rank)
	assert.ElementsMatch(t, []core.SearchSource{core.SourceVector, core.SourceGraph}, fused[0].Sources)
}

func TestFuseMergesByContentNotNativeID(t *testing.T) {
	// Differing native IDs with cosmetically different content still merge.
	fused := Fuse(
		[]core.SearchResult{vectorResult("v-1", "Austin   median price $550,000", 0.9)},
		[]core.SearchResult{graphResult("g-2", "austin median price $550,000", 0.5)},
		DefaultWeights(), 10,
	)

	require.Len(t, fused, 1)
	// Higher-scoring source's content is kept.
	assert.Equal(t, "Austin   median price $550,000", fused[0].Content)
}

func TestFuseScoreCap(t *testing.T) {
	content := "corroborated everywhere"
	fused := Fuse(
		[]core.SearchResult{vectorResult("v", content, 1.0)},
		[]core.SearchResult{graphResult("g", content, 1.0)},
		DefaultWeights(), 10,
	)

	require.Len(t, fused, 1)
	assert.Equal(t, 1.0, fused[0].CombinedScore)
}

func TestFuseOrderingInvariants(t *testing.T) {
	vector := []core.SearchResult{
		vectorResult("v1", "alpha", 0.95),
		vectorResult("v2", "beta", 0.8),
		vectorResult("v3", "gamma", 0.7),
	}
	graph := []core.SearchResult{
		graphResult("g1", "delta", 1.0),
		graphResult("g2", "beta", 0.6),
	}

	fused := Fuse(vector, graph, DefaultWeights(), 10)
	require.NotEmpty(t, fused)

	for i, result := range fused {
		assert.Equal(t, i, result.Rank)
		assert.LessOrEqual(t, result.CombinedScore, 1.0)
		if i > 0 {
			assert.GreaterOrEqual(t, fused[i-1].CombinedScore, result.CombinedScore)
		}
	}
}

func TestFuseTieBreakGraphBeforeVector(t *testing.T) {
	// Equal combined scores: 1.0*0.6 vector-only vs 1.0 graph base scaled
	// by weights. Build an exact tie with single-source weights.
	fused := Fuse(
		[]core.SearchResult{vectorResult("v", "vector item", 0.3)},
		[]core.SearchResult{graphResult("g", "graph item", 0.7)},
		DefaultWeights(), 10,
	)

	require.Len(t, fused, 2)
	// 0.7*0.3 = 0.21 for the vector item, 0.3*0.7 = 0.21 for the graph item.
	assert.InDelta(t, fused[0].CombinedScore, fused[1].CombinedScore, 1e-9)
	assert.Equal(t, core.SourceGraph, fused[0].Source)
}

func TestFuseTruncatesToLimit(t *testing.T) {
	vector := []core.SearchResult{
		vectorResult("v1", "one", 0.9),
		vectorResult("v2", "two", 0.8),
		vectorResult("v3", "three", 0.7),
	}

	fused := Fuse(vector, nil, Weights{Vector: 1.0}, 2)
	require.Len(t, fused, 2)
	assert.Equal(t, "one", fused[0].Content)
	assert.Equal(t, "two", fused[1].Content)
}

func TestFuseBothEmpty(t *testing.T) {
	fused := Fuse(nil, nil, DefaultWeights(), 10)
	assert.Empty(t, fused)
}

func TestFuseIdempotent(t *testing.T) {
	vector := []core.SearchResult{
		vectorResult("v1", "alpha", 0.9),
		vectorResult("v2", "beta", 0.8),
	}
	graph := []core.SearchResult{
		graphResult("g1", "beta", 0.7),
		graphResult("g2", "gamma", 0.6),
	}

	first := Fuse(vector, graph, DefaultWeights(), 10)
	second := Fuse(vector, graph, DefaultWeights(), 10)
	assert.Equal(t, first, second)
}
