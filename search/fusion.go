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
	"math"
	"slices"

	"github.com/poiesic/realsearch/core"
)

// crossSourceBonus rewards evidence corroborated by both stores. The fused
// score is capped at 1.0 after the bonus.
const crossSourceBonus = 0.05

// Weights holds the per-source contribution to the fused score.
type Weights struct {
	Vector float64
	Graph  float64
}

// DefaultWeights returns the standard 0.7/0.3 vector/graph split.
func DefaultWeights() Weights {
	return Weights{Vector: 0.7, Graph: 0.3}
}

// Validate checks that the weights are non-negative and sum to 1.0.
func (w Weights) Validate() error {
	if w.Vector < 0 || w.Graph < 0 {
		return core.ErrInvalidWeights
	}
	if math.Abs(w.Vector+w.Graph-1.0) > 1e-9 {
		return core.ErrInvalidWeights
	}
	return nil
}

// fusedItem accumulates the per-source evidence for one merged result.
type fusedItem struct {
	result      core.SearchResult
	vectorScore float64
	graphScore  float64
	inVector    bool
	inGraph     bool
	sourceRank  int
	combined    float64
}

// Fuse merges vector and graph results into one ranked list.
//
// Items are merged by content hash so duplicates collapse even when native
// IDs differ across stores; the higher-scoring source's content and metadata
// are kept. Each merged item scores w_v*vectorScore + w_g*graphScore with
// absent sources contributing 0, plus a cross-source bonus when both stores
// returned it, capped at 1.0. Ties sort graph before vector, then by the
// original rank within the winning source. The output is truncated to limit
// and ranks are assigned 0-based.
//
// Fuse is deterministic and idempotent: the same inputs always produce the
// same output.
func Fuse(vectorResults, graphResults []core.SearchResult, weights Weights, limit int) []core.RankedResult {
	merged := make(map[core.ID]*fusedItem)
	order := make([]core.ID, 0, len(vectorResults)+len(graphResults))

	// Graph first so its content wins score ties and its rank anchors the
	// tie-break.
	for rank, result := range graphResults {
		key := core.IDFromContent(result.Content)
		item, ok := merged[key]
		if !ok {
			item = &fusedItem{result: result, sourceRank: rank}
			merged[key] = item
			order = append(order, key)
		}
		if !item.inGraph || result.Score > item.graphScore {
			item.graphScore = result.Score
		}
		item.inGraph = true
	}

	for rank, result := range vectorResults {
		key := core.IDFromContent(result.Content)
		item, ok := merged[key]
		if !ok {
			item = &fusedItem{result: result, sourceRank: rank}
			merged[key] = item
			order = append(order, key)
		}
		if !item.inVector || result.Score > item.vectorScore {
			item.vectorScore = result.Score
		}
		item.inVector = true
		// Vector content replaces graph content only when it scored higher.
		if item.inGraph && result.Score > item.graphScore {
			item.result = result
		}
	}

	for _, key := range order {
		item := merged[key]
		item.combined = weights.Vector*item.vectorScore + weights.Graph*item.graphScore
		if item.inVector && item.inGraph {
			item.combined += crossSourceBonus
		}
		if item.combined > 1.0 {
			item.combined = 1.0
		}
	}

	slices.SortStableFunc(order, func(a, b core.ID) int {
		ia, ib := merged[a], merged[b]
		switch {
		case ia.combined > ib.combined:
			return -1
		case ia.combined < ib.combined:
			return 1
		}
		// Graph results are typically more precise; they win score ties.
		switch {
		case ia.inGraph && !ib.inGraph:
			return -1
		case ib.inGraph && !ia.inGraph:
			return 1
		}
		return ia.sourceRank - ib.sourceRank
	})

	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}

	ranked := make([]core.RankedResult, 0, len(order))
	for rank, key := range order {
		item := merged[key]
		ranked = append(ranked, core.RankedResult{
			SearchResult:  item.result,
			CombinedScore: item.combined,
			Rank:          rank,
			Sources:       itemSources(item),
		})
	}
	return ranked
}

// itemSources lists the contributing stores, graph first.
func itemSources(item *fusedItem) []core.SearchSource {
	sources := make([]core.SearchSource, 0, 2)
	if item.inGraph {
		sources = append(sources, core.SourceGraph)
	}
	if item.inVector {
		sources = append(sources, core.SourceVector)
	}
	return sources
}
