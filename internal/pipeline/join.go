package pipeline

// Enrich resolves each primary record's foreign key against lookup and builds
// an output row via apply. The lookup slice is indexed once per call, not
// scanned per record. apply receives nil when the key is empty or unmatched;
// a missing reference is valid data, not an error.
//
// The output always has the same length and order as primary.
func Enrich[P, L, E any](primary []P, lookup []L, key func(P) string, lookupID func(L) string, apply func(P, *L) E) []E {
	idx := make(map[string]int, len(lookup))
	for i := range lookup {
		idx[lookupID(lookup[i])] = i
	}

	out := make([]E, 0, len(primary))
	for _, p := range primary {
		var match *L
		if k := key(p); k != "" {
			if i, ok := idx[k]; ok {
				match = &lookup[i]
			}
		}
		out = append(out, apply(p, match))
	}
	return out
}
