package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that identical content
// produces identical IDs across retrieval sources.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Content is case-folded and whitespace-collapsed first, so cosmetic differences
// between sources do not produce distinct IDs.
func IDFromContent(text string) ID {
	canonical := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(canonical))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// EntityCategory identifies the kind of an extracted entity.
type EntityCategory string

const (
	// EntityLocation is a "City, ST" style location reference.
	EntityLocation EntityCategory = "location"
	// EntityPropertyID is a street address or explicit property/listing identifier.
	EntityPropertyID EntityCategory = "property_id"
	// EntityMetric is a known real-estate metric phrase.
	EntityMetric EntityCategory = "metric"
	// EntityAgent is an agent, realtor, or broker name.
	EntityAgent EntityCategory = "agent"
)

// EntityCategories lists all categories in extraction order.
var EntityCategories = []EntityCategory{EntityLocation, EntityPropertyID, EntityMetric, EntityAgent}

// EntitySet maps an entity category to the ordered values extracted for it.
// Insertion order is extraction order. An EntitySet is produced once per query
// and never mutated afterwards.
type EntitySet map[EntityCategory][]string

// Empty reports whether no entities were extracted in any category.
func (e EntitySet) Empty() bool {
	for _, values := range e {
		if len(values) > 0 {
			return false
		}
	}
	return true
}

// Locations returns the extracted location values, or nil.
func (e EntitySet) Locations() []string { return e[EntityLocation] }

// Properties returns the extracted property identifiers, or nil.
func (e EntitySet) Properties() []string { return e[EntityPropertyID] }

// Metrics returns the extracted metric phrases, or nil.
func (e EntitySet) Metrics() []string { return e[EntityMetric] }

// Agents returns the extracted agent names, or nil.
func (e EntitySet) Agents() []string { return e[EntityAgent] }

// IntentLabel is the discrete intent assigned to a query.
type IntentLabel string

const (
	IntentFactualLookup       IntentLabel = "factual_lookup"
	IntentSemanticAnalysis    IntentLabel = "semantic_analysis"
	IntentRelationshipQuery   IntentLabel = "relationship_query"
	IntentInvestmentAnalysis  IntentLabel = "investment_analysis"
	IntentComparativeAnalysis IntentLabel = "comparative_analysis"
	IntentGeneral             IntentLabel = "general"
)

// Strategy selects which retrieval sources a query is executed against.
type Strategy string

const (
	StrategyVectorOnly Strategy = "vector_only"
	StrategyGraphOnly  Strategy = "graph_only"
	StrategyHybrid     Strategy = "hybrid"
)

// SearchSource identifies which store produced a result.
type SearchSource string

const (
	SourceVector SearchSource = "vector"
	SourceGraph  SearchSource = "graph"
)

// UserRole identifies the caller persona. The set is closed so every role is
// handled exhaustively rather than failing at runtime on an unknown key.
type UserRole string

const (
	RoleInvestor  UserRole = "investor"
	RoleBuyer     UserRole = "buyer"
	RoleDeveloper UserRole = "developer"
	RoleAgent     UserRole = "agent"
)

// Filters are caller-supplied structured constraints on a query.
type Filters struct {
	PropertyType string
	PriceMin     float64
	PriceMax     float64
}

// Empty reports whether no filter is set.
func (f Filters) Empty() bool {
	return f.PropertyType == "" && f.PriceMin == 0 && f.PriceMax == 0
}

// Query is a single search request. Immutable once received; it lives for the
// duration of one request.
type Query struct {
	Text    string
	Role    UserRole
	Filters Filters
}

// SearchResult is a single result returned by one executor.
// Score is source-native: cosine similarity in [0,1] for vector results, a
// template-defined relevance in [0,1] for graph results.
type SearchResult struct {
	ID       string
	Source   SearchSource
	Content  string
	Score    float64
	Metadata map[string]string
}

// RankedResult is a SearchResult with a fused score and final rank.
// Sources lists every source the item appeared in.
type RankedResult struct {
	SearchResult
	CombinedScore float64
	Rank          int
	Sources       []SearchSource
}

// RankedResults is the fused, ordered evidence list for one query.
type RankedResults struct {
	Query    string
	Strategy Strategy
	Results  []RankedResult
}

// Empty reports whether no evidence was found.
func (r RankedResults) Empty() bool { return len(r.Results) == 0 }

// Content concatenates all result contents, newline separated.
// Used as the evidence corpus for hallucination validation.
func (r RankedResults) Content() string {
	var b strings.Builder
	for i, res := range r.Results {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(res.Content)
	}
	return b.String()
}

// IssueKind classifies a validation issue.
type IssueKind string

const (
	// IssueUnsupportedClaim is a factual-looking span with no support in the evidence.
	IssueUnsupportedClaim IssueKind = "unsupported_claim"
	// IssueUnrealisticValue is a figure outside plausible bounds for the domain.
	IssueUnrealisticValue IssueKind = "unrealistic_value"
	// IssueEntityDrift flags answers referencing more entities than the evidence supports.
	IssueEntityDrift IssueKind = "entity_drift"
	// IssueVagueLanguage flags vague quantifiers used over thin evidence.
	IssueVagueLanguage IssueKind = "vague_language"
)

// Severity orders validation issues by how strongly they should block a response.
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
)

// Issue is a single problem found while validating a generated answer.
type Issue struct {
	Kind     IssueKind
	Span     string
	Severity Severity
}

// ValidationOutcome is the result of checking a generated answer against evidence.
// Produced once per answer; callers decide whether to regenerate.
type ValidationOutcome struct {
	Passed     bool
	Confidence float64
	Issues     []Issue
}

// Err returns ErrValidationFailed for an outcome that did not pass, nil
// otherwise. Lets callers propagate the gate as an error without losing
// the outcome details.
func (o ValidationOutcome) Err() error {
	if o.Passed {
		return nil
	}
	return ErrValidationFailed
}

// ChunkType identifies what kind of content a stored chunk holds.
type ChunkType string

const (
	ChunkProperty ChunkType = "property"
	ChunkMarket   ChunkType = "market"
)

// DocumentChunk is the unit stored in the vector index.
type DocumentChunk struct {
	Id         ID
	Content    string
	ChunkType  ChunkType
	Region     string
	Vector     []float32
	Metadata   map[string]string
	InsertedAt time.Time
}
