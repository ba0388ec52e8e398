package storage

import (
	"context"

	"github.com/poiesic/realsearch/core"
)

// VectorIndex provides nearest-neighbor search over embedded document chunks.
// Implementations must be thread-safe and support concurrent access.
type VectorIndex interface {
	// Search finds chunks whose embedding similarity to vector is >= threshold,
	// up to limit results, ordered by similarity descending. Filters constrain
	// results by chunk metadata; a zero Filters value applies none.
	// Returns ErrUnavailable (possibly wrapped) when the store cannot be reached;
	// an empty result set is a normal outcome, not an error.
	Search(ctx context.Context, vector []float32, threshold float64, limit int, filters core.Filters) ([]core.SearchResult, error)

	// AddChunks inserts document chunks into the index.
	// Chunks with Id=0 get content-derived IDs. Sets InsertedAt if unset.
	AddChunks(ctx context.Context, chunks ...*core.DocumentChunk) ([]*core.DocumentChunk, error)

	// Close closes the index and releases resources.
	Close() error
}

// TemplateKey names a parameterized graph query template.
type TemplateKey string

const (
	// TemplateMarketDataByLocation returns market metrics for a city/state pair.
	TemplateMarketDataByLocation TemplateKey = "market_data_by_location"
	// TemplatePropertyByID returns the detail record for one property.
	TemplatePropertyByID TemplateKey = "property_by_id"
	// TemplatePropertyByLocation returns property listings in a city/state pair.
	TemplatePropertyByLocation TemplateKey = "property_by_location"
	// TemplateAgentByName returns agents matching a name with their listings.
	TemplateAgentByName TemplateKey = "agent_by_name"
	// TemplateMarketMetrics is the fallback full-text metric lookup.
	TemplateMarketMetrics TemplateKey = "market_metrics"
)

// GraphStore runs parameterized relationship queries over typed nodes and edges.
// Implementations must be thread-safe, and must map their native relevance
// ordering into SearchResult.Score on a [0,1] scale.
type GraphStore interface {
	// RunTemplate executes the template identified by key with the bound
	// parameters. Returns ErrUnknownTemplate for keys outside the closed set and
	// ErrUnavailable (possibly wrapped) on connectivity failures. An empty result
	// set is a normal outcome, not an error.
	RunTemplate(ctx context.Context, key TemplateKey, params map[string]any) ([]core.SearchResult, error)

	// Close closes the store and releases resources.
	Close(ctx context.Context) error
}
