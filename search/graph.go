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


package search

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/realsearch/core"
	"github.com/poiesic/realsearch/storage"
)

// GraphExecutor retrieves relationship-grounded results by binding extracted
// entities into parameterized graph query templates.
type GraphExecutor struct {
	store   storage.GraphStore
	timeout time.Duration
	logger  *slog.Logger
}

// GraphOption configures a GraphExecutor.
type GraphOption func(*GraphExecutor) error

// WithGraphTimeout sets the per-call timeout.
// Default is 3 seconds.
func WithGraphTimeout(timeout time.Duration) GraphOption {
	return func(e *GraphExecutor) error {
		if timeout > 0 {
			e.timeout = timeout
		}
		return nil
	}
}

// WithGraphLogger sets a custom logger.
// Default is slog.Default().
func WithGraphLogger(logger *slog.Logger) GraphOption {
	return func(e *GraphExecutor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewGraphExecutor creates a graph search executor.
func NewGraphExecutor(store storage.GraphStore, opts ...GraphOption) (*GraphExecutor, error) {
	if store == nil {
		return nil, ErrGraphStoreRequired
	}

	e := &GraphExecutor{
		store:   store,
		timeout: defaultExecutorTimeout,
		logger:  slog.Default().With("component", "graph-executor"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Execute picks a template from the intent and entity categories present,
// binds the extracted values, and runs it. An unavailable store is retried
// once with backoff before the error is surfaced.
func (e *GraphExecutor) Execute(ctx context.Context, query core.Query, entities core.EntitySet, label core.IntentLabel, limit int) ([]core.SearchResult, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	key, params := selectTemplate(query, entities, label, limit)
	e.logger.Debug("selected graph template", "template", key, "intent", label)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var results []core.SearchResult
	err := RetryWithBackoff(ctx, func() error {
		var runErr error
		results, runErr = e.store.RunTemplate(ctx, key, params)
		return classifyStoreErr(runErr)
	}, storeMaxAttempts, retryBaseDelay)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("graph search completed", "template", key, "hits", len(results))
	return results, nil
}

// selectTemplate maps entity categories and intent onto one template key
// with its bound parameters. Rules are ordered by specificity: an explicit
// property beats an agent, which beats a located market lookup; anything
// else falls through to the full-text metric template.
func selectTemplate(query core.Query, entities core.EntitySet, label core.IntentLabel, limit int) (storage.TemplateKey, map[string]any) {
	if properties := entities.Properties(); len(properties) > 0 {
		return storage.TemplatePropertyByID, map[string]any{
			"property_id": properties[0],
		}
	}

	if agents := entities.Agents(); len(agents) > 0 {
		return storage.TemplateAgentByName, map[string]any{
			"agent_name": agents[0],
			"limit":      limit,
		}
	}

	if locations := entities.Locations(); len(locations) > 0 {
		city, state := splitLocation(locations[0])

		switch label {
		case core.IntentFactualLookup, core.IntentInvestmentAnalysis, core.IntentComparativeAnalysis:
			return storage.TemplateMarketDataByLocation, map[string]any{
				"city":  city,
				"state": state,
				"limit": limit,
			}
		default:
			return storage.TemplatePropertyByLocation, map[string]any{
				"city":  city,
				"state": state,
				"limit": limit,
			}
		}
	}

	locationQuery := query.Text
	if metrics := entities.Metrics(); len(metrics) > 0 {
		locationQuery = metrics[0]
	}
	return storage.TemplateMarketMetrics, map[string]any{
		"location_query": locationQuery,
		"limit":          limit,
	}
}

// splitLocation breaks a canonical "City, ST" value into its parts. A value
// without a state component comes back with an empty state.
func splitLocation(location string) (city, state string) {
	parts := strings.SplitN(location, ",", 2)
	city = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		state = strings.TrimSpace(parts[1])
	}
	return city, state
}
