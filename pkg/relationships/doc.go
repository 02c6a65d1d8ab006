// Package relationships synthesizes a random directed "follows" graph over a
// set of opaque identifiers.
//
// Randomness is always supplied by the caller, so a seeded *math/rand.Rand
// reproduces the same edge set for the same identifiers:
//
//	rng := rand.New(rand.NewSource(42))
//	edges, err := relationships.Generate(userIDs, rng)
//
// Edges serialize as {"followerId": ..., "followedId": ...}.
package relationships
