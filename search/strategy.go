package search

import "github.com/poiesic/realsearch/core"

// SelectStrategy maps a classified query onto a retrieval strategy. Pure
// function, no I/O. The rules are evaluated top to bottom and the first
// match wins:
//
//	relationship_query                     -> graph_only
//	factual_lookup with a location entity  -> graph_only
//	comparative_analysis                   -> hybrid
//	investment_analysis                    -> hybrid
//	semantic_analysis                      -> vector_only
//	otherwise                              -> hybrid
//
// Relationship and located factual queries go to the graph because traversal
// yields exact, attributable answers. Open-ended analysis needs the
// associative recall of vector search, with graph grounding in hybrid mode
// as the safe default.
func SelectStrategy(label core.IntentLabel, entities core.EntitySet, hasFilters bool) core.Strategy {
	switch {
	case label == core.IntentRelationshipQuery:
		return core.StrategyGraphOnly
	case label == core.IntentFactualLookup && len(entities.Locations()) > 0:
		return core.StrategyGraphOnly
	case label == core.IntentComparativeAnalysis:
		return core.StrategyHybrid
	case label == core.IntentInvestmentAnalysis:
		return core.StrategyHybrid
	case label == core.IntentSemanticAnalysis:
		return core.StrategyVectorOnly
	default:
		return core.StrategyHybrid
	}
}
