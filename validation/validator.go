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


package validation

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/poiesic/realsearch/core"
	"github.com/poiesic/realsearch/extract"
)

const (
	// defaultConfidenceThreshold is the minimum confidence for a pass.
	defaultConfidenceThreshold = 0.7

	// thinEvidenceCount marks evidence as thin; vague quantifiers over
	// thin evidence are penalized.
	thinEvidenceCount = 3

	// locationSlack is how many more distinct locations an answer may
	// reference than its evidence before it counts as drift.
	locationSlack = 2

	// maxRealisticPercentage and maxRealisticPrice bound plausible
	// real-estate figures. Values beyond them are flagged regardless of
	// evidence support.
	maxRealisticPercentage = 100.0
	maxRealisticPrice      = 100_000_000.0
)

// groundingPhrases signal the answer is anchored to retrieved data.
var groundingPhrases = []string{
	"based on",
	"according to",
	"the data shows",
	"the evidence",
	"the listings show",
	"records indicate",
}

// vagueQuantifiers signal hedged generalization. Penalized only when the
// evidence is thin, since broad phrasing over solid evidence is fine.
var vagueQuantifiers = []string{
	"typically",
	"usually",
	"generally",
	"most properties",
	"in most cases",
	"often",
}

// Validator checks a generated answer against fused evidence. It is pure
// text comparison with no external calls, so it runs in the same request
// as generation.
type Validator struct {
	threshold      float64
	severityCutoff core.Severity
	extractor      *extract.Extractor
	logger         *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator) error

// WithThreshold sets the minimum confidence for a pass.
// Default is 0.7.
func WithThreshold(threshold float64) Option {
	return func(v *Validator) error {
		if threshold < 0 || threshold > 1 {
			return core.ErrInvalidThreshold
		}
		v.threshold = threshold
		return nil
	}
}

// WithSeverityCutoff sets the severity at or above which an unsupported
// claim blocks the answer outright.
// Default is SeverityHigh.
func WithSeverityCutoff(cutoff core.Severity) Option {
	return func(v *Validator) error {
		v.severityCutoff = cutoff
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) error {
		if logger == nil {
			logger = slog.Default()
		}
		v.logger = logger
		return nil
	}
}

// NewValidator creates a hallucination validator.
func NewValidator(opts ...Option) (*Validator, error) {
	v := &Validator{
		threshold:      defaultConfidenceThreshold,
		severityCutoff: core.SeverityHigh,
		extractor:      extract.NewExtractor(),
		logger:         slog.Default().With("component", "validator"),
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// Validate checks the generated answer against the evidence and scores it.
//
// Three sub-scores are averaged into the confidence: factual accuracy
// (supported claims over total claims), grounding (explicit grounding
// language, penalized for vague quantifiers over thin evidence), and
// entity consistency (distinct locations referenced vs. locations the
// evidence supports). The answer passes iff confidence meets the threshold
// and no unsupported claim at or above the severity cutoff was found.
func (v *Validator) Validate(generated string, evidence core.RankedResults) core.ValidationOutcome {
	evidenceText := normalizeForMatch(evidence.Content())
	var issues []core.Issue

	factual, factualIssues := v.scoreFactualAccuracy(generated, evidenceText)
	issues = append(issues, factualIssues...)

	grounding, groundingIssues := v.scoreGrounding(generated, len(evidence.Results))
	issues = append(issues, groundingIssues...)

	consistency, driftIssues := v.scoreEntityConsistency(generated, evidence)
	issues = append(issues, driftIssues...)

	confidence := (factual + grounding + consistency) / 3.0

	passed := confidence >= v.threshold && !v.hasBlockingClaim(issues)
	if !passed {
		v.logger.Debug("validation failed",
			"confidence", confidence,
			"factual", factual,
			"grounding", grounding,
			"consistency", consistency,
			"issues", len(issues),
		)
	}

	return core.ValidationOutcome{
		Passed:     passed,
		Confidence: confidence,
		Issues:     issues,
	}
}

// scoreFactualAccuracy extracts factual-looking spans and checks each for
// case-insensitive containment in the evidence. Unsupported spans become
// unsupported_claim issues; implausible figures additionally become
// unrealistic_value issues and always count against the score.
func (v *Validator) scoreFactualAccuracy(generated, evidenceText string) (float64, []core.Issue) {
	claims := extractClaims(generated)
	if len(claims) == 0 {
		return 1.0, nil
	}

	var issues []core.Issue
	supported := 0
	for _, c := range claims {
		unrealistic := isUnrealistic(c)
		if unrealistic {
			issues = append(issues, core.Issue{
				Kind:     core.IssueUnrealisticValue,
				Span:     c.span,
				Severity: core.SeverityHigh,
			})
		}

		if !unrealistic && strings.Contains(evidenceText, normalizeForMatch(c.span)) {
			supported++
			continue
		}

		issues = append(issues, core.Issue{
			Kind:     core.IssueUnsupportedClaim,
			Span:     c.span,
			Severity: severityFor(c.kind),
		})
	}

	return float64(supported) / float64(len(claims)), issues
}

// scoreGrounding rewards explicit grounding language and penalizes vague
// quantifiers when the evidence is thin.
func (v *Validator) scoreGrounding(generated string, evidenceCount int) (float64, []core.Issue) {
	lowered := strings.ToLower(generated)

	score := 0.6
	for _, phrase := range groundingPhrases {
		if strings.Contains(lowered, phrase) {
			score += 0.2
		}
	}

	var issues []core.Issue
	if evidenceCount < thinEvidenceCount {
		for _, quantifier := range vagueQuantifiers {
			if strings.Contains(lowered, quantifier) {
				score -= 0.15
				issues = append(issues, core.Issue{
					Kind:     core.IssueVagueLanguage,
					Span:     quantifier,
					Severity: core.SeverityLow,
				})
			}
		}
	}

	return clamp01(score), issues
}

// scoreEntityConsistency flags answers that reference clearly more distinct
// locations than the evidence supports, a signal of topic drift.
func (v *Validator) scoreEntityConsistency(generated string, evidence core.RankedResults) (float64, []core.Issue) {
	answerLocations := v.extractor.Extract(generated).Locations()
	if len(answerLocations) == 0 {
		return 1.0, nil
	}

	evidenceLocations := make(map[string]bool)
	for _, loc := range v.extractor.Extract(evidence.Content()).Locations() {
		evidenceLocations[strings.ToLower(loc)] = true
	}
	for _, result := range evidence.Results {
		if region, ok := result.Metadata["region"]; ok && region != "" {
			evidenceLocations[strings.ToLower(region)] = true
		}
	}

	allowed := len(evidenceLocations) + locationSlack
	if len(answerLocations) <= allowed {
		return 1.0, nil
	}

	var issues []core.Issue
	for _, loc := range answerLocations {
		if !evidenceLocations[strings.ToLower(loc)] {
			issues = append(issues, core.Issue{
				Kind:     core.IssueEntityDrift,
				Span:     loc,
				Severity: core.SeverityMedium,
			})
		}
	}

	return float64(allowed) / float64(len(answerLocations)), issues
}

// hasBlockingClaim reports whether any unsupported claim sits at or above
// the severity cutoff.
func (v *Validator) hasBlockingClaim(issues []core.Issue) bool {
	for _, issue := range issues {
		if issue.Kind == core.IssueUnsupportedClaim && issue.Severity >= v.severityCutoff {
			return true
		}
		if issue.Kind == core.IssueUnrealisticValue && issue.Severity >= v.severityCutoff {
			return true
		}
	}
	return false
}

// isUnrealistic reports figures outside plausible real-estate bounds:
// percentages above 100% and prices above $100M.
func isUnrealistic(c claim) bool {
	switch c.kind {
	case claimPercentage:
		raw := strings.TrimSuffix(c.span, "%")
		pct, err := strconv.ParseFloat(raw, 64)
		return err == nil && pct > maxRealisticPercentage
	case claimCurrency:
		raw := strings.TrimPrefix(c.span, "$")
		multiplier := 1.0
		switch {
		case strings.HasSuffix(raw, "billion"), strings.HasSuffix(raw, "B"):
			multiplier = 1_000_000_000
		case strings.HasSuffix(raw, "million"), strings.HasSuffix(raw, "M"):
			multiplier = 1_000_000
		case strings.HasSuffix(raw, "K"):
			multiplier = 1_000
		}
		raw = strings.TrimRight(raw, "millionbillionMBK ")
		raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
		price, err := strconv.ParseFloat(raw, 64)
		return err == nil && price*multiplier > maxRealisticPrice
	default:
		return false
	}
}

// normalizeForMatch lowercases and collapses whitespace so cosmetic
// differences don't break containment checks.
func normalizeForMatch(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
