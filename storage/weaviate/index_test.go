package weaviate

import (
	"testing"

	"github.com/poiesic/realsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weaviate/weaviate/entities/models"
)

func TestBuildWhere(t *testing.T) {
	t.Run("no filters yields nil", func(t *testing.T) {
		assert.Nil(t, buildWhere(core.Filters{}))
	})

	t.Run("single filter is not wrapped", func(t *testing.T) {
		where := buildWhere(core.Filters{PropertyType: "condo"})
		require.NotNil(t, where)
		assert.Contains(t, where.String(), "property_type")
		assert.NotContains(t, where.String(), "operands")
	})

	t.Run("multiple filters are And-combined", func(t *testing.T) {
		where := buildWhere(core.Filters{PropertyType: "condo", PriceMin: 100000, PriceMax: 500000})
		require.NotNil(t, where)
		s := where.String()
		assert.Contains(t, s, "And")
		assert.Contains(t, s, "property_type")
		assert.Contains(t, s, "price")
	})
}

func TestParseResults(t *testing.T) {
	t.Run("well-formed response", func(t *testing.T) {
		response := &models.GraphQLResponse{
			Data: map[string]models.JSONObject{
				"Get": map[string]any{
					ClassName: []any{
						map[string]any{
							"content":    "123 Maple St listed at $410,000",
							"chunk_type": "property",
							"region":     "Dallas, TX",
							"_additional": map[string]any{
								"id":        "abc-123",
								"certainty": 0.91,
							},
						},
					},
				},
			},
		}

		results := parseResults(response)
		require.Len(t, results, 1)
		assert.Equal(t, "abc-123", results[0].ID)
		assert.Equal(t, core.SourceVector, results[0].Source)
		assert.InDelta(t, 0.91, results[0].Score, 1e-9)
		assert.Equal(t, "property", results[0].Metadata["chunk_type"])
		assert.Equal(t, "Dallas, TX", results[0].Metadata["region"])
	})

	t.Run("missing id falls back to content hash", func(t *testing.T) {
		response := &models.GraphQLResponse{
			Data: map[string]models.JSONObject{
				"Get": map[string]any{
					ClassName: []any{
						map[string]any{"content": "market summary"},
					},
				},
			},
		}

		results := parseResults(response)
		require.Len(t, results, 1)
		assert.NotEmpty(t, results[0].ID)
	})

	t.Run("entries without content are skipped", func(t *testing.T) {
		response := &models.GraphQLResponse{
			Data: map[string]models.JSONObject{
				"Get": map[string]any{
					ClassName: []any{
						map[string]any{"region": "Austin, TX"},
						"not an object",
					},
				},
			},
		}

		assert.Empty(t, parseResults(response))
	})

	t.Run("empty response", func(t *testing.T) {
		assert.Empty(t, parseResults(&models.GraphQLResponse{}))
	})
}
