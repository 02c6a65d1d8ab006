package relationships

// Summary describes the out-degree distribution of a generated edge set.
type Summary struct {
	Identifiers   int     `json:"identifiers"`
	Edges         int     `json:"edges"`
	MinOutDegree  int     `json:"min_out_degree"`
	MaxOutDegree  int     `json:"max_out_degree"`
	MeanOutDegree float64 `json:"mean_out_degree"`
	Isolated      int     `json:"isolated"` // identifiers following nobody
}

// OutDegrees counts edges per source identifier. Identifiers without edges are absent.
func OutDegrees[ID comparable](edges []Edge[ID]) map[ID]int {
	degrees := make(map[ID]int)
	for _, e := range edges {
		degrees[e.Source]++
	}
	return degrees
}

// DegreeSummary summarises the out-degree of every identifier in ids,
// counting identifiers with no outgoing edge as degree zero.
func DegreeSummary[ID comparable](ids []ID, edges []Edge[ID]) Summary {
	s := Summary{
		Identifiers: len(ids),
		Edges:       len(edges),
	}
	if len(ids) == 0 {
		return s
	}

	degrees := OutDegrees(edges)
	s.MinOutDegree = -1
	seen := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		d := degrees[id]
		if d == 0 {
			s.Isolated++
		}
		if s.MinOutDegree < 0 || d < s.MinOutDegree {
			s.MinOutDegree = d
		}
		if d > s.MaxOutDegree {
			s.MaxOutDegree = d
		}
	}
	s.Identifiers = len(seen)
	s.MeanOutDegree = float64(len(edges)) / float64(len(seen))
	return s
}
