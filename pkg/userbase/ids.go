package userbase

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// IDGenerator assigns the synthetic identifier of a row.
type IDGenerator interface {
	NewID(row int, rng *rand.Rand) (string, error)
}

// SequentialIDs formats the row index, e.g. user_000042. It consumes no randomness.
type SequentialIDs struct {
	Prefix string
	Width  int
}

// DefaultSequentialIDs yields user_000000, user_000001, ...
func DefaultSequentialIDs() SequentialIDs {
	return SequentialIDs{Prefix: "user_", Width: 6}
}

func (g SequentialIDs) NewID(row int, _ *rand.Rand) (string, error) {
	if row < 0 {
		return "", fmt.Errorf("negative row index %d", row)
	}
	return fmt.Sprintf("%s%0*d", g.Prefix, g.Width, row), nil
}

// UUIDs draws version 4 UUIDs from the run's random source, so a fixed seed
// reproduces them.
type UUIDs struct{}

func (UUIDs) NewID(_ int, rng *rand.Rand) (string, error) {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return "", fmt.Errorf("failed to generate uuid: %w", err)
	}
	return id.String(), nil
}
