package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateQuery(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateQuery(&Query{Text: "median price in Dallas, TX"}))
	})

	t.Run("valid with role and filters", func(t *testing.T) {
		query := &Query{
			Text:    "investment condos",
			Role:    RoleInvestor,
			Filters: Filters{PropertyType: "condo", PriceMax: 500_000},
		}
		assert.NoError(t, ValidateQuery(query))
	})

	t.Run("nil query", func(t *testing.T) {
		err := ValidateQuery(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})

	t.Run("empty text", func(t *testing.T) {
		err := ValidateQuery(&Query{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidQuery)
		assert.ErrorIs(t, err, ErrEmptyQueryText)
	})

	t.Run("whitespace-only text", func(t *testing.T) {
		err := ValidateQuery(&Query{Text: "  \t\n "})
		assert.ErrorIs(t, err, ErrEmptyQueryText)
	})

	t.Run("unknown role", func(t *testing.T) {
		err := ValidateQuery(&Query{Text: "anything", Role: UserRole("landlord")})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidQuery)
		assert.ErrorIs(t, err, ErrUnknownRole)
	})

	t.Run("zero role is allowed", func(t *testing.T) {
		assert.NoError(t, ValidateQuery(&Query{Text: "anything"}))
	})
}

func TestValidateDocumentChunk(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		chunk := &DocumentChunk{Content: "3 bed 2 bath in Plano", ChunkType: ChunkProperty}
		assert.NoError(t, ValidateDocumentChunk(chunk))
	})

	t.Run("nil chunk", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDocumentChunk(nil), ErrInvalidChunk)
	})

	t.Run("empty content", func(t *testing.T) {
		err := ValidateDocumentChunk(&DocumentChunk{ChunkType: ChunkMarket})
		assert.ErrorIs(t, err, ErrInvalidChunk)
		assert.ErrorIs(t, err, ErrEmptyChunkContent)
	})

	t.Run("invalid chunk type", func(t *testing.T) {
		err := ValidateDocumentChunk(&DocumentChunk{Content: "text", ChunkType: ChunkType("listing")})
		assert.ErrorIs(t, err, ErrInvalidChunk)
		assert.ErrorIs(t, err, ErrInvalidChunkType)
	})

	t.Run("missing vector is allowed", func(t *testing.T) {
		chunk := &DocumentChunk{Content: "market summary", ChunkType: ChunkMarket}
		assert.NoError(t, ValidateDocumentChunk(chunk))
	})
}

func TestValidateChunkType(t *testing.T) {
	assert.NoError(t, ValidateChunkType(ChunkProperty))
	assert.NoError(t, ValidateChunkType(ChunkMarket))
	assert.ErrorIs(t, ValidateChunkType(ChunkType("")), ErrInvalidChunkType)
	assert.ErrorIs(t, ValidateChunkType(ChunkType("neighborhood")), ErrInvalidChunkType)
}

func TestValidateUserRole(t *testing.T) {
	for _, role := range []UserRole{RoleInvestor, RoleBuyer, RoleDeveloper, RoleAgent} {
		assert.NoError(t, ValidateUserRole(role))
	}
	assert.ErrorIs(t, ValidateUserRole(UserRole("")), ErrUnknownRole)
	assert.ErrorIs(t, ValidateUserRole(UserRole("tenant")), ErrUnknownRole)
}
