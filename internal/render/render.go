// Package render converts an allocation into LED colors and status text.
package render

import (
	"fmt"
	"strings"

	"github.com/sweeney/langlights/internal/led"
	"github.com/sweeney/langlights/internal/stats"
)

// Saturation used for every lit unit.
const Saturation = 255

// Brightness returns the base brightness for a level in [0, steps).
// Levels climb in maxVal/steps increments and the last level wraps to 0,
// so cycling through all levels includes a dark setting.
func Brightness(level, steps int, maxVal uint8) uint8 {
	if steps <= 0 || maxVal == 0 {
		return maxVal
	}
	step := int(maxVal) / steps
	return uint8(((level + 1) * step) % int(maxVal))
}

// Boost returns the brightness step used to mark overflowed records.
func Boost(steps int, maxVal uint8) uint8 {
	if steps <= 0 {
		return 0
	}
	return uint8(int(maxVal) / steps)
}

// Options controls frame rendering.
type Options struct {
	Brightness uint8 // base value for lit units
	Boost      uint8 // added for overflowed records, clamped to 255
}

// Frame returns res.Capacity colors. Units inside a record's segment take
// the record's hue; units outside every segment are off.
func Frame(res stats.AggregationResult, opts Options) []led.Color {
	frame := make([]led.Color, res.Capacity)
	for _, r := range res.Records {
		val := opts.Brightness
		if r.Overflowed {
			val = addClamped(val, opts.Boost)
		}
		c := led.Color{Hue: r.Hue, Sat: Saturation, Val: val}
		for i := r.Start; i < r.Start+r.Units && i < len(frame); i++ {
			frame[i] = c
		}
	}
	return frame
}

func addClamped(a, b uint8) uint8 {
	if int(a)+int(b) > 255 {
		return 255
	}
	return a + b
}

// Commit stages every unit of frame on strip and flushes once.
func Commit(strip led.Strip, frame []led.Color) error {
	for i, c := range frame {
		strip.Set(i, c)
	}
	for i := len(frame); i < strip.Len(); i++ {
		strip.Set(i, led.Off)
	}
	if err := strip.Commit(); err != nil {
		return fmt.Errorf("commit frame: %w", err)
	}
	return nil
}

// Summary returns "code:count" pairs in display order, space separated.
func Summary(res stats.AggregationResult) string {
	parts := make([]string, 0, len(res.Records))
	for _, r := range res.Records {
		parts = append(parts, fmt.Sprintf("%s:%d", r.Code, r.RawCount))
	}
	return strings.Join(parts, " ")
}
