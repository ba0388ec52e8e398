package extract

import (
	"testing"

	"github.com/poiesic/realsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLocations(t *testing.T) {
	extractor := NewExtractor()

	t.Run("comma form canonicalizes", func(t *testing.T) {
		entities := extractor.Extract("What is the median price in Dallas, TX?")
		assert.Equal(t, []string{"Dallas, TX"}, entities.Locations())
	})

	t.Run("bare form canonicalizes to the same value", func(t *testing.T) {
		withComma := extractor.Extract("Homes in Austin, TX")
		withoutComma := extractor.Extract("Homes in Austin TX")
		assert.Equal(t, withComma.Locations(), withoutComma.Locations())
		assert.Equal(t, []string{"Austin, TX"}, withoutComma.Locations())
	})

	t.Run("both forms in one text dedup", func(t *testing.T) {
		entities := extractor.Extract("Compare Austin, TX with Austin TX listings")
		assert.Equal(t, []string{"Austin, TX"}, entities.Locations())
	})

	t.Run("multi-word city", func(t *testing.T) {
		entities := extractor.Extract("Condos in San Antonio, TX")
		assert.Equal(t, []string{"San Antonio, TX"}, entities.Locations())
	})

	t.Run("metro and county forms", func(t *testing.T) {
		entities := extractor.Extract("Inventory in the Austin metro and Travis county")
		assert.Equal(t, []string{"Austin", "Travis"}, entities.Locations())
	})

	t.Run("market form", func(t *testing.T) {
		entities := extractor.Extract("How hot is the Denver market right now")
		assert.Equal(t, []string{"Denver"}, entities.Locations())
	})

	t.Run("sentence-initial verb is not part of the city", func(t *testing.T) {
		entities := extractor.Extract("Compare Austin TX to Dallas TX")
		assert.Equal(t, []string{"Austin, TX", "Dallas, TX"}, entities.Locations())
	})

	t.Run("capitalized article before market form", func(t *testing.T) {
		entities := extractor.Extract("Describe The Austin market")
		assert.Equal(t, []string{"Austin"}, entities.Locations())
	})

	t.Run("stopword-only capture is dropped", func(t *testing.T) {
		entities := extractor.Extract("Compare TX listings")
		assert.Empty(t, entities.Locations())
	})
}

func TestExtractPropertyIdentifiers(t *testing.T) {
	extractor := NewExtractor()

	t.Run("street address", func(t *testing.T) {
		entities := extractor.Extract("Who is the listing agent for 123 Maple St?")
		assert.Equal(t, []string{"123 Maple St"}, entities.Properties())
	})

	t.Run("longer street forms", func(t *testing.T) {
		entities := extractor.Extract("Details for 456 South Congress Avenue please")
		assert.Equal(t, []string{"456 South Congress Avenue"}, entities.Properties())
	})

	t.Run("explicit listing id", func(t *testing.T) {
		entities := extractor.Extract("Show me listing id TR-2041")
		assert.Equal(t, []string{"TR-2041"}, entities.Properties())
	})
}

func TestExtractMetrics(t *testing.T) {
	extractor := NewExtractor()

	entities := extractor.Extract("Report the median price, days on market, and cap rate")
	assert.Equal(t, []string{"median price", "days on market", "cap rate"}, entities.Metrics())
}

func TestExtractAgents(t *testing.T) {
	extractor := NewExtractor()

	entities := extractor.Extract("Is realtor Jane Smith still active?")
	assert.Equal(t, []string{"Jane Smith"}, entities.Agents())
}

func TestExtractNeverFails(t *testing.T) {
	extractor := NewExtractor()

	t.Run("empty text yields empty categories", func(t *testing.T) {
		entities := extractor.Extract("")
		require.NotNil(t, entities)
		assert.True(t, entities.Empty())
		for _, cat := range core.EntityCategories {
			require.NotNil(t, entities[cat])
			assert.Empty(t, entities[cat])
		}
	})

	t.Run("no matches yields empty categories", func(t *testing.T) {
		entities := extractor.Extract("nothing of interest here")
		assert.True(t, entities.Empty())
	})
}

func TestExtractPreservesFirstSeenOrder(t *testing.T) {
	extractor := NewExtractor()

	entities := extractor.Extract("Compare Dallas, TX with Houston, TX and Dallas, TX again")
	assert.Equal(t, []string{"Dallas, TX", "Houston, TX"}, entities.Locations())
}
