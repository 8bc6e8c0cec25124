// Package stats turns statistics messages from the feed into an LED layout.
// This package has NO I/O: it un-frames, decodes, sorts, degrades and
// assigns display units. Callers own every side effect.
package stats

import "github.com/sweeney/langlights/internal/led"

// TagStatistics is the only message tag that produces records.
const TagStatistics = "statistics"

// DefaultCapacity is the number of units on the reference strip.
const DefaultCapacity = 30

// LanguageStat is one language's contribution to a statistics message.
type LanguageStat struct {
	Code     string
	RawCount int

	// Allocated is the count after degradation (<= RawCount).
	Allocated int
	// Overflowed is true iff Allocated was degraded below RawCount.
	Overflowed bool

	Hue led.Hue

	// Start and Units describe the contiguous segment on the strip.
	// Units = min(Allocated, capacity left when this record was placed).
	Start int
	Units int
}

// Message is the decoded form of one feed message.
// Records is nil for any tag other than TagStatistics.
type Message struct {
	Tag           string
	Records       []LanguageStat
	TotalRawCount int
}

// IsStatistics reports whether the message carries statistics.
func (m Message) IsStatistics() bool {
	return m.Tag == TagStatistics
}

// AggregationResult is the ordered output of one allocation pass.
type AggregationResult struct {
	Records       []LanguageStat
	TotalRawCount int
	Capacity      int
}

// UsedUnits returns the number of units covered by segments.
func (r AggregationResult) UsedUnits() int {
	n := 0
	for _, rec := range r.Records {
		n += rec.Units
	}
	return n
}

// AllocatedSum returns the sum of Allocated over all records.
func (r AggregationResult) AllocatedSum() int {
	n := 0
	for _, rec := range r.Records {
		n += rec.Allocated
	}
	return n
}

// Truncated reports whether the degradation pass left more allocated
// units than the strip holds, so trailing records lost units to clipping.
func (r AggregationResult) Truncated() bool {
	return r.AllocatedSum() > r.Capacity
}
