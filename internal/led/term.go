package led

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	unitGlyph = "●"
	offGlyph  = "·"
)

var offStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3f3f46"))

// TermStrip renders committed frames as a row of colored glyphs.
type TermStrip struct {
	w      io.Writer
	staged []Color
}

// NewTermStrip creates a terminal strip with n units writing to w.
func NewTermStrip(w io.Writer, n int) *TermStrip {
	return &TermStrip{w: w, staged: make([]Color, n)}
}

// Len returns the number of units.
func (s *TermStrip) Len() int {
	return len(s.staged)
}

// Set stages a unit color.
func (s *TermStrip) Set(i int, c Color) {
	if i < 0 || i >= len(s.staged) {
		return
	}
	s.staged[i] = c
}

// Commit writes the whole row in a single write.
func (s *TermStrip) Commit() error {
	if _, err := io.WriteString(s.w, s.View()+"\n"); err != nil {
		return fmt.Errorf("write strip: %w", err)
	}
	return nil
}

// View returns the staged row as styled text.
func (s *TermStrip) View() string {
	var b strings.Builder
	for _, c := range s.staged {
		if c.IsOff() {
			b.WriteString(offStyle.Render(offGlyph))
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(unitGlyph))
	}
	return b.String()
}
