// Package led provides the LED strip abstraction.
// Hardware drivers live outside this module; the terminal strip renders
// the same frame for headless runs and the fake records frames for tests.
package led

import "fmt"

// Hue is a position on the 0-255 color wheel.
type Hue uint8

// Color wheel positions, matching the FastLED HSV hue constants.
const (
	HueRed    Hue = 0
	HueOrange Hue = 32
	HueYellow Hue = 64
	HueGreen  Hue = 96
	HueAqua   Hue = 128
	HueBlue   Hue = 160
	HuePurple Hue = 192
	HuePink   Hue = 224
)

// Color is an HSV color. Val 0 is off regardless of hue.
type Color struct {
	Hue Hue
	Sat uint8
	Val uint8
}

// Off is a dark unit.
var Off = Color{}

// IsOff reports whether the unit emits no light.
func (c Color) IsOff() bool {
	return c.Val == 0
}

// RGB converts the color using a six-sector spectrum.
func (c Color) RGB() (r, g, b uint8) {
	if c.Val == 0 {
		return 0, 0, 0
	}
	v := int(c.Val)
	if c.Sat == 0 {
		return c.Val, c.Val, c.Val
	}
	s := int(c.Sat)
	h := int(c.Hue) * 6 // 0..1530, 256 per sector
	sector := h / 256
	frac := h % 256

	p := v * (255 - s) / 255
	q := v * (255 - s*frac/255) / 255
	t := v * (255 - s*(255-frac)/255) / 255

	switch sector {
	case 0:
		return uint8(v), uint8(t), uint8(p)
	case 1:
		return uint8(q), uint8(v), uint8(p)
	case 2:
		return uint8(p), uint8(v), uint8(t)
	case 3:
		return uint8(p), uint8(q), uint8(v)
	case 4:
		return uint8(t), uint8(p), uint8(v)
	default:
		return uint8(v), uint8(p), uint8(q)
	}
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Strip is an addressable LED strip.
type Strip interface {
	// Len returns the number of addressable units.
	Len() int

	// Set stages color c for unit i. Out-of-range indexes are ignored.
	Set(i int, c Color)

	// Commit flushes all staged units at once.
	Commit() error
}
