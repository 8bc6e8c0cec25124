package stats

import "github.com/sweeney/langlights/internal/led"

// HueTable maps language codes to hues with an explicit fallback.
type HueTable struct {
	Hues    map[string]led.Hue
	Default led.Hue
}

// DefaultHues returns the table for the eight known languages.
// Unknown codes fall back to red.
func DefaultHues() HueTable {
	return HueTable{
		Hues: map[string]led.Hue{
			"en": led.HueGreen,
			"es": led.HueOrange,
			"de": led.HueYellow,
			"fr": led.HueBlue,
			"it": led.HueRed,
			"pt": led.HuePink,
			"nl": led.HueAqua,
			"ru": led.HuePurple,
		},
		Default: led.HueRed,
	}
}

// Lookup returns the hue for code, or the table default.
func (t HueTable) Lookup(code string) led.Hue {
	if h, ok := t.Hues[code]; ok {
		return h
	}
	return t.Default
}

// With returns a copy of t with extra entries and a replacement default.
func (t HueTable) With(extra map[string]led.Hue, def led.Hue) HueTable {
	out := HueTable{
		Hues:    make(map[string]led.Hue, len(t.Hues)+len(extra)),
		Default: def,
	}
	for k, v := range t.Hues {
		out.Hues[k] = v
	}
	for k, v := range extra {
		out.Hues[k] = v
	}
	return out
}
