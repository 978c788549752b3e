package pkg

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const gameIDDigits = 6

// GenerateGameID - generates a short numeric game identifier.
func GenerateGameID() (string, error) {
	id := make([]byte, 0, gameIDDigits)

	for i := 0; i < gameIDDigits; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate game id: %w", err)
		}

		id = append(id, byte('0'+n.Int64()))
	}

	return string(id), nil
}

// GeneratePlayerID - generates a new unique player session identifier.
func GeneratePlayerID() string {
	return uuid.NewString()
}
