package led

// FakeStrip records committed frames for test assertions.
type FakeStrip struct {
	staged []Color

	// Frames contains every committed frame, oldest first.
	Frames [][]Color

	// CommitError, if set, will be returned by Commit.
	CommitError error
}

// NewFakeStrip creates a FakeStrip with n units.
func NewFakeStrip(n int) *FakeStrip {
	return &FakeStrip{staged: make([]Color, n)}
}

// Len returns the number of units.
func (f *FakeStrip) Len() int {
	return len(f.staged)
}

// Set stages a unit color.
func (f *FakeStrip) Set(i int, c Color) {
	if i < 0 || i >= len(f.staged) {
		return
	}
	f.staged[i] = c
}

// Commit records a copy of the staged frame.
func (f *FakeStrip) Commit() error {
	if f.CommitError != nil {
		return f.CommitError
	}
	frame := make([]Color, len(f.staged))
	copy(frame, f.staged)
	f.Frames = append(f.Frames, frame)
	return nil
}

// Last returns the most recently committed frame, or nil.
func (f *FakeStrip) Last() []Color {
	if len(f.Frames) == 0 {
		return nil
	}
	return f.Frames[len(f.Frames)-1]
}
