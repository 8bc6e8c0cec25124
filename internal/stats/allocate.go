package stats

import "sort"

// Allocate orders records and maps their counts onto capacity units.
//
// Records are sorted by RawCount, largest first, keeping input order on
// ties. A single forward pass then halves records while the running
// pressure (starting at total) exceeds capacity; each halving lowers the
// pressure by the units it saved. Once the pressure fits, no later record
// is degraded, even if the allocated sum still exceeds capacity. Finally
// each record gets a contiguous segment, clipped to the capacity left.
//
// The input slice is not modified.
func Allocate(records []LanguageStat, total, capacity int) AggregationResult {
	out := make([]LanguageStat, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RawCount > out[j].RawCount
	})

	pressure := total
	for i := range out {
		r := &out[i]
		if pressure > capacity {
			r.Allocated = r.RawCount / 2
			r.Overflowed = true
			pressure -= r.RawCount - r.Allocated
			continue
		}
		r.Allocated = r.RawCount
		r.Overflowed = false
	}

	cursor := 0
	for i := range out {
		r := &out[i]
		r.Start = cursor
		r.Units = r.Allocated
		if left := capacity - cursor; r.Units > left {
			r.Units = left
		}
		if r.Units < 0 {
			r.Units = 0
		}
		cursor += r.Units
	}

	return AggregationResult{
		Records:       out,
		TotalRawCount: total,
		Capacity:      capacity,
	}
}
