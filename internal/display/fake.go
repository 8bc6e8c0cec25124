package display

// FakeScreen records rendered screens for test assertions.
type FakeScreen struct {
	// Renders contains every rendered set of lines, oldest first.
	Renders [][]string

	// RenderError, if set, will be returned by Render.
	RenderError error
}

// NewFakeScreen creates a FakeScreen.
func NewFakeScreen() *FakeScreen {
	return &FakeScreen{}
}

// Render records a copy of lines.
func (f *FakeScreen) Render(lines []string) error {
	if f.RenderError != nil {
		return f.RenderError
	}
	cp := make([]string, len(lines))
	copy(cp, lines)
	f.Renders = append(f.Renders, cp)
	return nil
}

// Last returns the most recent render, or nil.
func (f *FakeScreen) Last() []string {
	if len(f.Renders) == 0 {
		return nil
	}
	return f.Renders[len(f.Renders)-1]
}
