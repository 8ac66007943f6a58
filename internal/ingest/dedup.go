package ingest

import "arthere/internal/museum"

// DedupCatalog collapses records sharing a name down to one. A later
// record wins only when its reference date is lexicographically greater;
// a missing date sorts lowest, so equal or absent markers leave the
// first-seen record in place. Output preserves first-encounter order,
// which makes the reduction deterministic for any input ordering outside
// the documented equal-marker case.
func DedupCatalog(records []museum.Museum) []museum.Museum {
	byName := make(map[string]int, len(records))
	out := make([]museum.Museum, 0, len(records))

	for _, rec := range records {
		idx, seen := byName[rec.Name]
		if !seen {
			byName[rec.Name] = len(out)
			out = append(out, rec)
			continue
		}
		if rec.ReferenceDate > out[idx].ReferenceDate {
			out[idx] = rec
		}
	}
	return out
}
