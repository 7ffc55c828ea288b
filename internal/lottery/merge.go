package lottery

import (
	"sort"
	"time"
)

// Stats summarizes a merge for operator-facing logs.
type Stats struct {
	Total int // records after the merge
	Added int // records present in incoming but absent from existing
}

// Merge combines an existing collection with newly fetched records.
//
// At most one record survives per draw date. Incoming records are applied
// in fetch order and always win over existing records sharing the same
// date; this is a refresh/repair path, not just an append. The output is
// sorted ascending by date, so the result is deterministic for any given
// pair of inputs.
func Merge(existing, incoming []DrawResult) ([]DrawResult, Stats) {
	byDate := make(map[time.Time]DrawResult, len(existing)+len(incoming))
	for _, r := range existing {
		byDate[r.DrawDate] = r
	}

	added := 0
	for _, r := range incoming {
		if _, ok := byDate[r.DrawDate]; !ok {
			added++
		}
		byDate[r.DrawDate] = r
	}

	merged := make([]DrawResult, 0, len(byDate))
	for _, r := range byDate {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].DrawDate.Before(merged[j].DrawDate)
	})

	return merged, Stats{Total: len(merged), Added: added}
}

// DateSet returns the set of draw dates present in results.
func DateSet(results []DrawResult) map[time.Time]struct{} {
	dates := make(map[time.Time]struct{}, len(results))
	for _, r := range results {
		dates[r.DrawDate] = struct{}{}
	}
	return dates
}
