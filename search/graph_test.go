package search

import (
	"testing"

	"github.com/poiesic/realsearch/core"
	"github.com/poiesic/realsearch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectTemplate(t *testing.T) {
	query := core.Query{Text: "test query"}

	t.Run("property id wins over everything", func(t *testing.T) {
		entities := core.EntitySet{
			core.EntityPropertyID: {"123 Maple St"},
			core.EntityLocation:   {"Dallas, TX"},
			core.EntityAgent:      {"Jane Smith"},
		}
		key, params := selectTemplate(query, entities, core.IntentRelationshipQuery, 5)
		assert.Equal(t, storage.TemplatePropertyByID, key)
		assert.Equal(t, "123 Maple St", params["property_id"])
	})

	t.Run("agent beats location", func(t *testing.T) {
		entities := core.EntitySet{
			core.EntityAgent:    {"Jane Smith"},
			core.EntityLocation: {"Dallas, TX"},
		}
		key, params := selectTemplate(query, entities, core.IntentRelationshipQuery, 5)
		assert.Equal(t, storage.TemplateAgentByName, key)
		assert.Equal(t, "Jane Smith", params["agent_name"])
		assert.Equal(t, 5, params["limit"])
	})

	t.Run("factual with location uses market data", func(t *testing.T) {
		entities := core.EntitySet{core.EntityLocation: {"Dallas, TX"}}
		key, params := selectTemplate(query, entities, core.IntentFactualLookup, 5)
		assert.Equal(t, storage.TemplateMarketDataByLocation, key)
		assert.Equal(t, "Dallas", params["city"])
		assert.Equal(t, "TX", params["state"])
	})

	t.Run("other intents with location use property listings", func(t *testing.T) {
		entities := core.EntitySet{core.EntityLocation: {"Austin, TX"}}
		key, params := selectTemplate(query, entities, core.IntentGeneral, 5)
		assert.Equal(t, storage.TemplatePropertyByLocation, key)
		assert.Equal(t, "Austin", params["city"])
	})

	t.Run("no entities falls back to market metrics", func(t *testing.T) {
		key, params := selectTemplate(query, core.EntitySet{}, core.IntentGeneral, 5)
		assert.Equal(t, storage.TemplateMarketMetrics, key)
		assert.Equal(t, "test query", params["location_query"])
	})

	t.Run("metric entity narrows the fallback", func(t *testing.T) {
		entities := core.EntitySet{core.EntityMetric: {"cap rate"}}
		key, params := selectTemplate(query, entities, core.IntentInvestmentAnalysis, 5)
		assert.Equal(t, storage.TemplateMarketMetrics, key)
		assert.Equal(t, "cap rate", params["location_query"])
	})
}

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		location string
		city     string
		state    string
	}{
		{"Dallas, TX", "Dallas", "TX"},
		{"San Antonio, TX", "San Antonio", "TX"},
		{"Austin", "Austin", ""},
	}

	for _, tt := range tests {
		city, state := splitLocation(tt.location)
		assert.Equal(t, tt.city, city)
		assert.Equal(t, tt.state, state)
	}
}

func TestNewGraphExecutorRequiresStore(t *testing.T) {
	_, err := NewGraphExecutor(nil)
	require.ErrorIs(t, err, ErrGraphStoreRequired)
}
