package extract

import (
	"regexp"
	"strings"

	"github.com/poiesic/realsearch/core"
)

// rule is one entry in the static extraction table: a category, a compiled
// pattern, and a transform that builds the entity value from the submatches.
// Rules are evaluated in table order; match order within a rule is text order.
type rule struct {
	category  core.EntityCategory
	pattern   *regexp.Regexp
	transform func(groups []string) string
}

// cityName matches one or more capitalized words ("Austin", "San Antonio").
const cityName = `[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*`

// cityStopwords are query verbs and function words that appear capitalized at
// sentence starts. RE2 has no lookbehind, so the multi-word city capture can
// absorb them ("Compare Austin"); transforms trim them off the front.
var cityStopwords = map[string]bool{
	"compare": true, "contrast": true, "tell": true, "show": true,
	"describe": true, "explain": true, "find": true, "list": true,
	"analyze": true, "evaluate": true, "give": true, "consider": true,
	"what": true, "which": true, "where": true, "when": true, "how": true,
	"who": true, "should": true, "is": true, "are": true, "does": true,
	"do": true, "the": true, "about": true, "in": true, "near": true,
	"around": true, "between": true, "versus": true, "and": true, "or": true,
}

// trimCityStopwords drops leading stopwords from a captured city name.
// Returns nil when nothing but stopwords was captured.
func trimCityStopwords(words []string) []string {
	for len(words) > 0 && cityStopwords[strings.ToLower(words[0])] {
		words = words[1:]
	}
	return words
}

var rules = []rule{
	// "Austin, TX"
	{
		category:  core.EntityLocation,
		pattern:   regexp.MustCompile(`(` + cityName + `),\s*([A-Z]{2})\b`),
		transform: cityState,
	},
	// "Austin TX"
	{
		category:  core.EntityLocation,
		pattern:   regexp.MustCompile(`(` + cityName + `)\s+([A-Z]{2})\b`),
		transform: cityState,
	},
	// "Austin metro", "Travis county"
	{
		category:  core.EntityLocation,
		pattern:   regexp.MustCompile(`(` + cityName + `)\s+(?i:metro|area|county)\b`),
		transform: cityOnly,
	},
	// "Austin market"
	{
		category:  core.EntityLocation,
		pattern:   regexp.MustCompile(`(` + cityName + `)\s+(?i:market)\b`),
		transform: cityOnly,
	},
	// "123 Maple St", "456 South Congress Avenue"
	{
		category:  core.EntityPropertyID,
		pattern:   regexp.MustCompile(`(\d+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:Street|St|Avenue|Ave|Road|Rd|Way|Drive|Dr|Lane|Ln|Boulevard|Blvd))\b`),
		transform: firstGroup,
	},
	// "property id: TR-2041", "listing id 98213"
	{
		category:  core.EntityPropertyID,
		pattern:   regexp.MustCompile(`(?i)(?:property|listing)\s+id[:\s]\s*([A-Za-z0-9][A-Za-z0-9\-_]*)`),
		transform: firstGroup,
	},
	// Fixed vocabulary of known real-estate metric phrases.
	{
		category:  core.EntityMetric,
		pattern:   regexp.MustCompile(`(?i)(median\s+(?:sale\s+)?price|inventory\s+count|days\s+on\s+market|months?\s+(?:of\s+)?supply|price\s+per\s+sq(?:uare)?\s*f(?:ee)?t|sales?\s+volume|new\s+listings|roi|return\s+on\s+investment|cash\s+flow|cap\s+rate|appreciation)\b`),
		transform: lowerFirstGroup,
	},
	// Capitalized names following agent-indicating words.
	{
		category:  core.EntityAgent,
		pattern:   regexp.MustCompile(`(?i:agent|realtor|broker)\s+(` + cityName + `)`),
		transform: firstGroup,
	},
}

func firstGroup(groups []string) string {
	return strings.TrimSpace(groups[1])
}

func lowerFirstGroup(groups []string) string {
	return strings.ToLower(strings.TrimSpace(groups[1]))
}

// cityOnly yields the captured city with leading stopwords removed, or the
// empty string when nothing remains.
func cityOnly(groups []string) string {
	return strings.Join(trimCityStopwords(strings.Fields(groups[1])), " ")
}

// cityState canonicalizes the two-group location forms to "City, ST".
// "Austin, TX" and "Austin TX" both yield "Austin, TX".
func cityState(groups []string) string {
	words := trimCityStopwords(strings.Fields(groups[1]))
	if len(words) == 0 {
		return ""
	}
	return strings.Join(words, " ") + ", " + strings.ToUpper(groups[2])
}
