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


// Package neo4j implements storage.GraphStore over a Neo4j-protocol database
// using a closed set of Cypher templates keyed by storage.TemplateKey.
package neo4j

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/poiesic/realsearch/core"
	"github.com/poiesic/realsearch/storage"
)

// Config holds connection settings for the graph store.
type Config struct {
	URI      string
	User     string
	Password string
}

// GraphStore runs the real-estate Cypher templates against a Neo4j-protocol
// database (Neo4j, Memgraph). Safe for concurrent use.
type GraphStore struct {
	driver neo4j.DriverWithContext
	logger *slog.Logger
}

var _ storage.GraphStore = (*GraphStore)(nil)

// NewGraphStore connects to the database and verifies connectivity.
//
// Returns storage.GraphStore interface to enforce abstraction.
func NewGraphStore(ctx context.Context, cfg Config) (storage.GraphStore, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	return &GraphStore{
		driver: driver,
		logger: slog.Default().With("component", "graph-store"),
	}, nil
}

// RunTemplate executes the template identified by key with the bound parameters.
func (g *GraphStore) RunTemplate(ctx context.Context, key storage.TemplateKey, params map[string]any) ([]core.SearchResult, error) {
	tmpl, ok := templates[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownTemplate, key)
	}

	for _, name := range tmpl.params {
		if _, ok := params[name]; !ok {
			return nil, fmt.Errorf("%w: template %q missing parameter %q", storage.ErrInvalidQuery, key, name)
		}
	}

	result, err := neo4j.ExecuteQuery(ctx, g.driver, tmpl.cypher, params, neo4j.EagerResultTransformer)
	if err != nil {
		// The driver does not distinguish connectivity from query failures in a
		// portable way; the templates are static so treat failures as the store
		// being unreachable.
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	results := make([]core.SearchResult, 0, len(result.Records))
	for i, record := range result.Records {
		content := stringValue(record, "content")
		if content == "" {
			continue
		}

		id := stringValue(record, "id")
		if id == "" {
			id = fmt.Sprintf("%s-%d", key, i)
		}

		metadata := map[string]string{
			"result_type": stringValue(record, "result_type"),
			"template":    string(key),
		}
		if region := stringValue(record, "region"); region != "" {
			metadata["region"] = region
		}
		if agent := stringValue(record, "agent_name"); agent != "" {
			metadata["agent_name"] = agent
		}

		results = append(results, core.SearchResult{
			ID:       id,
			Source:   core.SourceGraph,
			Content:  content,
			Score:    normalizeRank(tmpl.base, i),
			Metadata: metadata,
		})
	}

	g.logger.Debug("template executed", "template", key, "results", len(results))
	return results, nil
}

// Close closes the underlying driver.
func (g *GraphStore) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}

// normalizeRank maps the store's native result ordering onto [0,1]:
// result i scores base/(1+0.1*i), so the first result carries the template's
// base relevance and later results decay smoothly.
func normalizeRank(base float64, rank int) float64 {
	score := base / (1.0 + 0.1*float64(rank))
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// stringValue reads a record field as a string, tolerating absent or non-string values.
func stringValue(record *neo4j.Record, field string) string {
	v, ok := record.Get(field)
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	return s
}
