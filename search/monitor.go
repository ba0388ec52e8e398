package search

import "github.com/poiesic/realsearch/core"

// SearchMonitor provides hooks to observe the routing and retrieval process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterEntityExtraction(entities core.EntitySet)
	AfterIntentClassification(label core.IntentLabel)
	AfterStrategySelection(strategy core.Strategy)
	AfterVectorSearch(results []core.SearchResult)
	AfterGraphSearch(results []core.SearchResult)
	SourceDegraded(source core.SearchSource, err error)
	Finish(results core.RankedResults)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                 {}
func (n *noopMonitor) AfterEntityExtraction(_ core.EntitySet)         {}
func (n *noopMonitor) AfterIntentClassification(_ core.IntentLabel)   {}
func (n *noopMonitor) AfterStrategySelection(_ core.Strategy)         {}
func (n *noopMonitor) AfterVectorSearch(_ []core.SearchResult)        {}
func (n *noopMonitor) AfterGraphSearch(_ []core.SearchResult)         {}
func (n *noopMonitor) SourceDegraded(_ core.SearchSource, _ error)    {}
func (n *noopMonitor) Finish(_ core.RankedResults)                    {}
