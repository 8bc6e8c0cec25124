package display

import "fmt"

// Log is a fixed-capacity scrolling text log shown on a Screen.
// Not safe for concurrent use; the caller synchronizes.
type Log struct {
	lines  []string
	screen Screen
}

// NewLog creates a log holding at most capacity lines.
// A nil screen keeps the log in memory only.
func NewLog(capacity int, screen Screen) *Log {
	if capacity <= 0 {
		capacity = DefaultLines
	}
	return &Log{
		lines:  make([]string, 0, capacity),
		screen: screen,
	}
}

// Append adds line at the bottom, evicting the oldest line when full,
// and re-renders the screen.
func (l *Log) Append(line string) error {
	if len(l.lines) < cap(l.lines) {
		l.lines = append(l.lines, line)
	} else {
		copy(l.lines, l.lines[1:])
		l.lines[len(l.lines)-1] = line
	}
	return l.Render()
}

// Render draws the current lines. Calling it repeatedly has no further effect
// on the log.
func (l *Log) Render() error {
	if l.screen == nil {
		return nil
	}
	if err := l.screen.Render(l.Lines()); err != nil {
		return fmt.Errorf("render log: %w", err)
	}
	return nil
}

// Lines returns a copy of the lines, oldest first.
func (l *Log) Lines() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Len returns the number of lines held.
func (l *Log) Len() int {
	return len(l.lines)
}
