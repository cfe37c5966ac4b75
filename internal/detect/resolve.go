package detect

import "sort"

// Resolve reduces candidate spans from all detectors to a non-overlapping set.
// Precedence: structural kinds beat Token, longer matches beat shorter ones,
// earlier starts beat later ones, and kind priority order breaks remaining
// ties. The result is sorted by start offset.
func Resolve(candidates []Span) []Span {
	if len(candidates) == 0 {
		return nil
	}

	ordered := make([]Span, len(candidates))
	copy(ordered, candidates)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Kind.Structural() != b.Kind.Structural() {
			return a.Kind.Structural()
		}
		if la, lb := a.End-a.Start, b.End-b.Start; la != lb {
			return la > lb
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Kind < b.Kind
	})

	var kept []Span
	for _, s := range ordered {
		if !overlapsAny(s, kept) {
			kept = append(kept, s)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	return kept
}

func overlapsAny(s Span, spans []Span) bool {
	for _, other := range spans {
		if s.Start < other.End && other.Start < s.End {
			return true
		}
	}
	return false
}
