package relationships

import (
	"errors"
	"fmt"
)

// DefaultMaxOutDegree caps how many identifiers a single identifier follows.
const DefaultMaxOutDegree = 10

// ErrInvalidInput is returned when the identifier set or options cannot produce a graph.
var ErrInvalidInput = errors.New("invalid input")

// Rand is the randomness consumed by Generate. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Edge is a directed "follows" relationship. Source never equals Target.
type Edge[ID comparable] struct {
	Source ID `json:"followerId"`
	Target ID `json:"followedId"`
}

type options struct {
	maxOutDegree int
}

// Option configures Generate.
type Option func(*options)

// WithMaxOutDegree overrides DefaultMaxOutDegree.
func WithMaxOutDegree(n int) Option {
	return func(o *options) {
		o.maxOutDegree = n
	}
}

// Generate synthesizes a random follows graph over ids.
//
// Every identifier, in input order, follows k distinct others where k is drawn
// uniformly from [0, min(maxOutDegree, len(ids)-1)]. Targets are sampled without
// replacement and emitted in sampling order, so edges are grouped by source in
// the order of ids. The only side effect is consuming rng.
func Generate[ID comparable](ids []ID, rng Rand, opts ...Option) ([]Edge[ID], error) {
	o := options{maxOutDegree: DefaultMaxOutDegree}
	for _, opt := range opts {
		opt(&o)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: identifier set is empty", ErrInvalidInput)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: random source is nil", ErrInvalidInput)
	}
	if o.maxOutDegree < 0 {
		return nil, fmt.Errorf("%w: max out-degree %d is negative", ErrInvalidInput, o.maxOutDegree)
	}

	upper := min(o.maxOutDegree, len(ids)-1)

	edges := make([]Edge[ID], 0, len(ids)*upper/2)
	candidates := make([]ID, 0, len(ids))

	for _, u := range ids {
		k := rng.Intn(upper + 1)
		if k == 0 {
			continue
		}

		candidates = candidates[:0]
		for _, v := range ids {
			if v != u {
				candidates = append(candidates, v)
			}
		}
		// Duplicate identifiers shrink the candidate pool below upper.
		k = min(k, len(candidates))

		// Partial Fisher-Yates: the first k slots become the sample.
		for i := 0; i < k; i++ {
			j := i + rng.Intn(len(candidates)-i)
			candidates[i], candidates[j] = candidates[j], candidates[i]
			edges = append(edges, Edge[ID]{Source: u, Target: candidates[i]})
		}
	}

	return edges, nil
}
