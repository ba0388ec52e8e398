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


package intent

import (
	"log/slog"
	"strings"

	"github.com/poiesic/realsearch/core"
)

// Classifier assigns one intent label to a query from the closed taxonomy.
// Classification is deterministic and makes no external calls; it is safe
// for concurrent use.
type Classifier struct {
	logger *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewClassifier creates a new intent classifier.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		logger: slog.Default().With("component", "classifier"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the intent with the highest pattern-match count.
// Ties resolve by the fixed precedence order (see precedence in patterns.go);
// a query matching nothing classifies as general. A tie between two non-general
// intents is the ambiguity signal: it is logged at debug level, never surfaced.
func (c *Classifier) Classify(text string) core.IntentLabel {
	scores := c.ClassifyScores(text)

	best := core.IntentGeneral
	bestScore := 0
	ambiguous := false
	for _, label := range precedence {
		score := scores[label]
		if score > bestScore {
			best = label
			bestScore = score
			ambiguous = false
		} else if score == bestScore && score > 0 {
			ambiguous = true
		}
	}

	if ambiguous {
		c.logger.Debug("ambiguous intent, resolved by precedence", "intent", best)
	}

	return best
}

// ClassifyScores returns the raw per-intent match counts. Exposed so callers
// can observe ambiguity; most callers want Classify.
func (c *Classifier) ClassifyScores(text string) map[core.IntentLabel]int {
	lower := strings.ToLower(text)

	scores := make(map[core.IntentLabel]int, len(groups))
	for _, g := range groups {
		count := 0
		for _, p := range g.patterns {
			if p.MatchString(lower) {
				count++
			}
		}
		scores[g.label] = count
	}
	return scores
}
