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


// Package weaviate implements storage.VectorIndex over a remote Weaviate
// instance. Chunks live in one class; similarity uses nearVector certainty,
// which is already on a [0,1] scale.
package weaviate

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/poiesic/realsearch/core"
	"github.com/poiesic/realsearch/storage"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

// ClassName is the Weaviate class holding document chunks.
const ClassName = "DocumentChunk"

// Config holds connection settings for the index.
type Config struct {
	Host   string // "localhost:8080"
	Scheme string // "http" or "https"
}

// VectorIndex is a remote storage.VectorIndex backed by Weaviate.
type VectorIndex struct {
	client *weaviate.Client
	logger *slog.Logger
}

var _ storage.VectorIndex = (*VectorIndex)(nil)

// NewVectorIndex creates a client for the configured Weaviate instance.
// Connectivity is verified lazily on first use.
//
// Returns storage.VectorIndex interface to enforce abstraction.
func NewVectorIndex(cfg Config) (storage.VectorIndex, error) {
	if cfg.Scheme == "" {
		cfg.Scheme = "http"
	}
	client, err := weaviate.NewClient(weaviate.Config{
		Host:   cfg.Host,
		Scheme: cfg.Scheme,
	})
	if err != nil {
		return nil, err
	}
	return &VectorIndex{
		client: client,
		logger: slog.Default().With("component", "weaviate-vector-index"),
	}, nil
}

// Search performs a nearVector query with the threshold as minimum certainty.
func (v *VectorIndex) Search(ctx context.Context, vector []float32, threshold float64, limit int, queryFilters core.Filters) ([]core.SearchResult, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", storage.ErrInvalidQuery)
	}

	nearVector := v.client.GraphQL().NearVectorArgBuilder().
		WithVector(vector).
		WithCertainty(float32(threshold))

	fields := []graphql.Field{
		{Name: "content"},
		{Name: "chunk_type"},
		{Name: "region"},
		{Name: "property_type"},
		{Name: "price"},
		{Name: "_additional", Fields: []graphql.Field{
			{Name: "id"},
			{Name: "certainty"},
		}},
	}

	query := v.client.GraphQL().Get().
		WithClassName(ClassName).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(limit)

	if where := buildWhere(queryFilters); where != nil {
		query = query.WithWhere(where)
	}

	result, err := query.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", storage.ErrUnavailable, result.Errors[0].Message)
	}

	return parseResults(result), nil
}

// AddChunks inserts document chunks as Weaviate objects with explicit vectors.
func (v *VectorIndex) AddChunks(ctx context.Context, chunks ...*core.DocumentChunk) ([]*core.DocumentChunk, error) {
	batcher := v.client.Batch().ObjectsBatcher()
	for _, chunk := range chunks {
		if err := core.ValidateDocumentChunk(chunk); err != nil {
			return nil, err
		}
		if chunk.Id == 0 {
			chunk.Id = core.IDFromContent(chunk.Content)
		}

		properties := map[string]any{
			"content":    chunk.Content,
			"chunk_type": string(chunk.ChunkType),
			"region":     chunk.Region,
		}
		if pt, ok := chunk.Metadata["property_type"]; ok {
			properties["property_type"] = pt
		}
		if raw, ok := chunk.Metadata["price"]; ok {
			if price, err := strconv.ParseFloat(raw, 64); err == nil {
				properties["price"] = price
			}
		}

		batcher = batcher.WithObjects(&models.Object{
			Class:      ClassName,
			Properties: properties,
			Vector:     chunk.Vector,
		})
	}

	if _, err := batcher.Do(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return chunks, nil
}

// Close releases resources. The HTTP client needs no explicit cleanup.
func (v *VectorIndex) Close() error {
	return nil
}

// buildWhere translates structured query filters into a Weaviate where clause.
// Returns nil when no filter is set.
func buildWhere(f core.Filters) *filters.WhereBuilder {
	var operands []*filters.WhereBuilder

	if f.PropertyType != "" {
		operands = append(operands, filters.Where().
			WithPath([]string{"property_type"}).
			WithOperator(filters.Equal).
			WithValueString(f.PropertyType))
	}
	if f.PriceMin > 0 {
		operands = append(operands, filters.Where().
			WithPath([]string{"price"}).
			WithOperator(filters.GreaterThanEqual).
			WithValueNumber(f.PriceMin))
	}
	if f.PriceMax > 0 {
		operands = append(operands, filters.Where().
			WithPath([]string{"price"}).
			WithOperator(filters.LessThanEqual).
			WithValueNumber(f.PriceMax))
	}

	switch len(operands) {
	case 0:
		return nil
	case 1:
		return operands[0]
	default:
		return filters.Where().
			WithOperator(filters.And).
			WithOperands(operands)
	}
}

// parseResults walks the GraphQL response into SearchResults.
func parseResults(result *models.GraphQLResponse) []core.SearchResult {
	data, ok := result.Data["Get"].(map[string]any)
	if !ok {
		return []core.SearchResult{}
	}
	objects, ok := data[ClassName].([]any)
	if !ok {
		return []core.SearchResult{}
	}

	results := make([]core.SearchResult, 0, len(objects))
	for _, obj := range objects {
		props, ok := obj.(map[string]any)
		if !ok {
			continue
		}

		content, _ := props["content"].(string)
		if content == "" {
			continue
		}

		var id string
		var certainty float64
		if additional, ok := props["_additional"].(map[string]any); ok {
			id, _ = additional["id"].(string)
			if c, ok := additional["certainty"].(float64); ok {
				certainty = c
			}
		}
		if id == "" {
			id = strconv.FormatUint(uint64(core.IDFromContent(content)), 10)
		}

		metadata := map[string]string{}
		if ct, ok := props["chunk_type"].(string); ok && ct != "" {
			metadata["chunk_type"] = ct
		}
		if region, ok := props["region"].(string); ok && region != "" {
			metadata["region"] = region
		}
		if pt, ok := props["property_type"].(string); ok && pt != "" {
			metadata["property_type"] = pt
		}

		results = append(results, core.SearchResult{
			ID:       id,
			Source:   core.SourceVector,
			Content:  content,
			Score:    certainty,
			Metadata: metadata,
		})
	}
	return results
}
