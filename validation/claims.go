package validation

import (
	"regexp"

	"github.com/poiesic/realsearch/core"
)

// claimKind labels the factual pattern a span matched.
type claimKind string

const (
	claimCurrency   claimKind = "currency"
	claimPercentage claimKind = "percentage"
	claimSquareFeet claimKind = "square_footage"
	claimBedBath    claimKind = "bed_bath_count"
	claimDate       claimKind = "date"
	claimAddress    claimKind = "street_address"
)

// claim is one factual-looking span extracted from generated text.
type claim struct {
	kind claimKind
	span string
}

// claimPattern pairs a kind with its matcher and the severity an
// unsupported span of this kind carries. Precise figures (money,
// percentages) are the claims a reader is most likely to act on, so
// fabricating them is treated as high severity.
type claimPattern struct {
	kind     claimKind
	pattern  *regexp.Regexp
	severity core.Severity
}

var claimPatterns = []claimPattern{
	{
		kind:     claimCurrency,
		pattern:  regexp.MustCompile(`\$[0-9]+(?:,[0-9]{3})*(?:\.[0-9]+)?(?:\s*(?:million|billion|M|B|K))?`),
		severity: core.SeverityHigh,
	},
	{
		kind:     claimPercentage,
		pattern:  regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?%`),
		severity: core.SeverityHigh,
	},
	{
		kind:     claimSquareFeet,
		pattern:  regexp.MustCompile(`(?i)[0-9][0-9,]*\s*(?:sq\.?\s?ft\.?|square\s+feet)`),
		severity: core.SeverityMedium,
	},
	{
		kind:     claimBedBath,
		pattern:  regexp.MustCompile(`(?i)[0-9]+(?:\.[0-9]+)?\s*(?:bed(?:room)?s?|bath(?:room)?s?)\b`),
		severity: core.SeverityMedium,
	},
	{
		kind:     claimDate,
		pattern:  regexp.MustCompile(`(?i)(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+[0-9]{4}`),
		severity: core.SeverityMedium,
	},
	{
		kind:     claimAddress,
		pattern:  regexp.MustCompile(`\b\d+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:Street|St|Avenue|Ave|Road|Rd|Way|Drive|Dr|Lane|Ln|Boulevard|Blvd)\b`),
		severity: core.SeverityMedium,
	},
}

// extractClaims pulls every factual-looking span from the text, in pattern
// order, deduplicated by exact span within a kind.
func extractClaims(text string) []claim {
	var claims []claim
	for _, cp := range claimPatterns {
		seen := make(map[string]bool)
		for _, span := range cp.pattern.FindAllString(text, -1) {
			if seen[span] {
				continue
			}
			seen[span] = true
			claims = append(claims, claim{kind: cp.kind, span: span})
		}
	}
	return claims
}

// severityFor returns the severity an unsupported claim of this kind carries.
func severityFor(kind claimKind) core.Severity {
	for _, cp := range claimPatterns {
		if cp.kind == kind {
			return cp.severity
		}
	}
	return core.SeverityMedium
}
