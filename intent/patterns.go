package intent

import (
	"regexp"

	"github.com/poiesic/realsearch/core"
)

// group is one entry in the static classification table: an intent label and
// the patterns that vote for it. Queries are lowercased before matching.
type group struct {
	label    core.IntentLabel
	patterns []*regexp.Regexp
}

// precedence is the fixed tie-break order: when two intents score equally,
// the one listed first wins. general carries no patterns and is the all-zero
// fallback.
var precedence = []core.IntentLabel{
	core.IntentRelationshipQuery,
	core.IntentFactualLookup,
	core.IntentInvestmentAnalysis,
	core.IntentComparativeAnalysis,
	core.IntentSemanticAnalysis,
	core.IntentGeneral,
}

var groups = []group{
	{
		label: core.IntentRelationshipQuery,
		patterns: compile(
			`who\s+(?:is|are)\s+(?:the\s+)?(?:listing\s+)?(?:agent|broker|realtor)`,
			`which\s+(?:agent|office|company|brokerage)`,
			`(?:agent|broker|realtor)\s+(?:for|of)\s+(?:this|that)`,
			`(?:listing|listed)\s+(?:by|with)`,
			`(?:contact|phone|email)\s+(?:for|of)`,
		),
	},
	{
		label: core.IntentFactualLookup,
		patterns: compile(
			`what\s+is\s+(?:the\s+)?(?:median|average|current|latest)`,
			`how\s+much\s+(?:is|are|does|do)`,
			`(?:what\s+)?(?:price|cost|value)\s+(?:of|for|in)`,
			`(?:current|latest)\s+(?:price|inventory|count)`,
			`tell\s+me\s+(?:the\s+)?(?:median|average|current)`,
		),
	},
	{
		label: core.IntentInvestmentAnalysis,
		patterns: compile(
			`should\s+i\s+(?:buy|invest|purchase)`,
			`(?:roi|return\s+on\s+investment|cash\s+flow|investment\s+potential)`,
			`(?:profitable|worth\s+it|good\s+(?:deal|investment))`,
			`(?:rental|investment)\s+(?:property|properties)`,
			`(?:analyze|evaluation|analysis)\s+(?:investment|property)`,
		),
	},
	{
		label: core.IntentComparativeAnalysis,
		patterns: compile(
			`compare\s+\w+\s+(?:to|vs|versus|against|with)`,
			`(?:difference|differences)\s+between`,
			`(?:better|best)\s+(?:investment|buy|choice|option)`,
			`(?:pros\s+and\s+cons|advantages\s+and\s+disadvantages)`,
			`which\s+(?:is\s+)?(?:better|best|preferred)`,
		),
	},
	{
		label: core.IntentSemanticAnalysis,
		patterns: compile(
			`(?:tell\s+me\s+about|describe|explain)`,
			`(?:overview|summary|analysis)\s+(?:of|for)`,
			`(?:market\s+)?(?:trends|conditions|outlook)`,
			`(?:insights|recommendations|advice)`,
			`(?:what\s+do\s+you\s+think|opinion)`,
		),
	},
}

func compile(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}
