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


package extract

import (
	"log/slog"
	"strings"

	"github.com/poiesic/realsearch/core"
)

// Extractor pulls structured real-estate entities out of free text.
// It is stateless and safe for concurrent use.
type Extractor struct {
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// NewExtractor creates a new entity extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		logger: slog.Default().With("component", "extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs every pattern in the static rule table over the text and
// returns the entities found, grouped by category. It never fails: a category
// with no matches yields an empty sequence. Values within a category are
// deduplicated by case-folded, whitespace-collapsed form, keeping first-seen
// order.
func (e *Extractor) Extract(text string) core.EntitySet {
	entities := make(core.EntitySet, len(core.EntityCategories))
	seen := make(map[core.EntityCategory]map[string]bool, len(core.EntityCategories))
	for _, cat := range core.EntityCategories {
		entities[cat] = []string{}
		seen[cat] = make(map[string]bool)
	}

	for _, r := range rules {
		for _, groups := range r.pattern.FindAllStringSubmatch(text, -1) {
			value := r.transform(groups)
			if value == "" {
				continue
			}
			key := normalizeValue(value)
			if seen[r.category][key] {
				continue
			}
			seen[r.category][key] = true
			entities[r.category] = append(entities[r.category], value)
		}
	}

	e.logger.Debug("extracted entities",
		"locations", len(entities[core.EntityLocation]),
		"properties", len(entities[core.EntityPropertyID]),
		"metrics", len(entities[core.EntityMetric]),
		"agents", len(entities[core.EntityAgent]))

	return entities
}

// normalizeValue case-folds and collapses whitespace for dedup keys.
func normalizeValue(v string) string {
	return strings.Join(strings.Fields(strings.ToLower(v)), " ")
}
