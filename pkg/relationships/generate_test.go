package relationships

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

// scriptedRand replays fixed draws and fails the test on an out-of-range value.
type scriptedRand struct {
	t     *testing.T
	draws []int
	pos   int
}

func (s *scriptedRand) Intn(n int) int {
	s.t.Helper()
	if s.pos >= len(s.draws) {
		s.t.Fatalf("scriptedRand exhausted after %d draws", s.pos)
	}
	v := s.draws[s.pos]
	s.pos++
	if v < 0 || v >= n {
		s.t.Fatalf("draw %d = %d out of range [0,%d)", s.pos-1, v, n)
	}
	return v
}

func makeIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("user_%06d", i)
	}
	return ids
}

func TestGenerate_ScriptedScenario(t *testing.T) {
	// a: degree 1, picks b
	// b: degree 2, picks a then c
	// c: degree 0
	rng := &scriptedRand{t: t, draws: []int{1, 0, 2, 0, 0, 0}}

	edges, err := Generate([]string{"a", "b", "c"}, rng)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	want := []Edge[string]{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "a"},
		{Source: "b", Target: "c"},
	}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("Generate() = %v, want %v", edges, want)
	}
	if rng.pos != len(rng.draws) {
		t.Errorf("consumed %d draws, want %d", rng.pos, len(rng.draws))
	}
}

func TestGenerate_EmptyIdentifiers(t *testing.T) {
	_, err := Generate([]string{}, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	_, err = Generate[int](nil, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for nil slice, got %v", err)
	}
}

func TestGenerate_NilRand(t *testing.T) {
	_, err := Generate([]string{"a", "b"}, nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerate_SingleIdentifier(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		edges, err := Generate([]string{"only"}, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("seed %d: Generate failed: %v", seed, err)
		}
		if len(edges) != 0 {
			t.Fatalf("seed %d: expected no edges, got %v", seed, edges)
		}
	}
}

func TestGenerate_NoSelfEdgesAndBoundedDegree(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"two", 2},
		{"five", 5},
		{"eleven", 11},
		{"hundred", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := makeIDs(tt.n)
			edges, err := Generate(ids, rand.New(rand.NewSource(int64(tt.n))))
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}

			bound := min(DefaultMaxOutDegree, tt.n-1)
			for _, e := range edges {
				if e.Source == e.Target {
					t.Errorf("self edge %v", e)
				}
			}
			for id, d := range OutDegrees(edges) {
				if d > bound {
					t.Errorf("%s out-degree %d exceeds %d", id, d, bound)
				}
			}
		})
	}
}

func TestGenerate_NoRepeatedTargetPerSource(t *testing.T) {
	ids := makeIDs(30)
	edges, err := Generate(ids, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	seen := make(map[Edge[string]]bool)
	for _, e := range edges {
		if seen[e] {
			t.Errorf("duplicate edge %v", e)
		}
		seen[e] = true
	}
}

func TestGenerate_GroupedInInputOrder(t *testing.T) {
	ids := makeIDs(40)
	edges, err := Generate(ids, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	position := make(map[string]int, len(ids))
	for i, id := range ids {
		position[id] = i
	}
	for i := 1; i < len(edges); i++ {
		if position[edges[i].Source] < position[edges[i-1].Source] {
			t.Fatalf("edge %d source %s precedes %s in input order", i, edges[i].Source, edges[i-1].Source)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	ids := makeIDs(50)

	first, err := Generate(ids, rand.New(rand.NewSource(2024)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, err := Generate(ids, rand.New(rand.NewSource(2024)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("same seed produced different edge sets")
	}
}

func TestGenerate_IntegerIdentifiers(t *testing.T) {
	ids := []int{10, 20, 30, 40}
	edges, err := Generate(ids, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, e := range edges {
		if e.Source == e.Target {
			t.Errorf("self edge %v", e)
		}
	}
}

func TestGenerate_MaxOutDegreeOption(t *testing.T) {
	ids := makeIDs(20)

	edges, err := Generate(ids, rand.New(rand.NewSource(1)), WithMaxOutDegree(0))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(edges) != 0 {
		t.Errorf("max out-degree 0 produced %d edges", len(edges))
	}

	edges, err = Generate(ids, rand.New(rand.NewSource(1)), WithMaxOutDegree(3))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for id, d := range OutDegrees(edges) {
		if d > 3 {
			t.Errorf("%s out-degree %d exceeds 3", id, d)
		}
	}

	_, err = Generate(ids, rand.New(rand.NewSource(1)), WithMaxOutDegree(-1))
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative cap, got %v", err)
	}
}

func TestGenerate_DuplicateIdentifiers(t *testing.T) {
	// "a" twice leaves only "b" as a candidate for either copy.
	rng := &scriptedRand{t: t, draws: []int{2, 0, 0, 0}}
	edges, err := Generate([]string{"a", "a", "b"}, rng)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := []Edge[string]{{Source: "a", Target: "b"}}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("Generate() = %v, want %v", edges, want)
	}
}

func TestEdgeJSON(t *testing.T) {
	data, err := json.Marshal([]Edge[string]{{Source: "user_000001", Target: "user_000002"}})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `[{"followerId":"user_000001","followedId":"user_000002"}]`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestDegreeSummary(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	edges := []Edge[string]{
		{Source: "a", Target: "b"},
		{Source: "a", Target: "c"},
		{Source: "b", Target: "a"},
	}

	s := DegreeSummary(ids, edges)
	if s.Identifiers != 4 || s.Edges != 3 {
		t.Errorf("counts = %d/%d, want 4/3", s.Identifiers, s.Edges)
	}
	if s.MinOutDegree != 0 || s.MaxOutDegree != 2 {
		t.Errorf("min/max = %d/%d, want 0/2", s.MinOutDegree, s.MaxOutDegree)
	}
	if s.Isolated != 2 {
		t.Errorf("isolated = %d, want 2", s.Isolated)
	}
	if s.MeanOutDegree != 0.75 {
		t.Errorf("mean = %v, want 0.75", s.MeanOutDegree)
	}

	empty := DegreeSummary[string](nil, nil)
	if empty.Identifiers != 0 || empty.MinOutDegree != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
}
