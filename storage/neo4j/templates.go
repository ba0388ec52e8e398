package neo4j

import "github.com/poiesic/realsearch/storage"

// template pairs a Cypher query with the base relevance its results carry.
// The graph has no native similarity measure, so the store maps result order
// into [0,1] by rank-inverse scaling from the base (see normalizeRank).
type template struct {
	cypher string
	base   float64
	params []string
}

var templates = map[storage.TemplateKey]template{
	storage.TemplateMarketDataByLocation: {
		base:   1.0,
		params: []string{"city", "state", "limit"},
		cypher: `
			MATCH (l:Location)
			WHERE l.city CONTAINS $city AND l.state = $state
			OPTIONAL MATCH (r:Region)-[:HAS_MARKET_DATA]->(md:MarketData)
			WHERE r.name CONTAINS $city OR r.name CONTAINS $state
			RETURN
				coalesce(md.content, l.content, "No market data available") AS content,
				coalesce(md.market_data_id, l.location_id) AS id,
				"market_data" AS result_type,
				l.city + ", " + l.state AS region
			ORDER BY md.date DESC
			LIMIT $limit
		`,
	},

	storage.TemplatePropertyByID: {
		base:   1.0,
		params: []string{"property_id"},
		cypher: `
			MATCH (p:Property {property_id: $property_id})
			OPTIONAL MATCH (p)-[:LISTED_BY]->(a:Agent)
			OPTIONAL MATCH (p)-[:LOCATED_IN]->(l:Location)
			RETURN
				p.content AS content,
				p.property_id AS id,
				"property_detail" AS result_type,
				coalesce(a.name, "") AS agent_name,
				coalesce(l.city + ", " + l.state, "") AS region
			LIMIT 1
		`,
	},

	storage.TemplatePropertyByLocation: {
		base:   0.8,
		params: []string{"city", "state", "limit"},
		cypher: `
			MATCH (l:Location)<-[:LOCATED_IN]-(p:Property)
			WHERE l.city CONTAINS $city AND l.state = $state
			OPTIONAL MATCH (p)-[:LISTED_BY]->(a:Agent)
			RETURN
				p.content AS content,
				p.property_id AS id,
				"property" AS result_type,
				coalesce(a.name, "") AS agent_name,
				l.city + ", " + l.state AS region
			ORDER BY p.price DESC
			LIMIT $limit
		`,
	},

	storage.TemplateAgentByName: {
		base:   0.9,
		params: []string{"agent_name", "limit"},
		cypher: `
			MATCH (a:Agent)
			WHERE a.name CONTAINS $agent_name
			OPTIONAL MATCH (a)<-[:LISTED_BY]-(p:Property)
			RETURN
				a.content AS content,
				a.agent_id AS id,
				"agent" AS result_type,
				a.name AS agent_name,
				COUNT(p) AS property_count
			ORDER BY property_count DESC
			LIMIT $limit
		`,
	},

	storage.TemplateMarketMetrics: {
		base:   0.95,
		params: []string{"location_query", "limit"},
		cypher: `
			MATCH (md:MarketData)
			WHERE md.region_id CONTAINS $location_query OR md.content CONTAINS $location_query
			RETURN
				md.content AS content,
				md.market_data_id AS id,
				"market_metrics" AS result_type,
				md.region_id AS region
			ORDER BY md.date DESC
			LIMIT $limit
		`,
	},
}
