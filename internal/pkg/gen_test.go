package pkg

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGameID(t *testing.T) {
	// When: generating a batch of game identifiers.
	seen := make(map[string]struct{})

	for i := 0; i < 50; i++ {
		id, err := GenerateGameID()

		// Then: each identifier is a six digit numeric string.
		require.NoError(t, err)
		require.Len(t, id, gameIDDigits)

		for _, ch := range id {
			assert.True(t, ch >= '0' && ch <= '9')
		}

		seen[id] = struct{}{}
	}

	// Then: the identifiers are not all identical.
	assert.Greater(t, len(seen), 1)
}

func TestGeneratePlayerID(t *testing.T) {
	// When: generating a player identifier.
	id := GeneratePlayerID()

	// Then: it parses as a UUID and differs from the next one.
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, GeneratePlayerID())
}
