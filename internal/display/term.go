package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var screenStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#52525b")).
	Foreground(lipgloss.Color("#e4e4e7")).
	Padding(0, 1)

// TermScreen draws the status screen as a bordered box on a terminal.
// Lines are clipped like the fixed-width OLED it stands in for.
type TermScreen struct {
	w     io.Writer
	rows  int
	width int
}

// NewTermScreen creates a terminal screen with the given geometry.
func NewTermScreen(w io.Writer, rows, width int) *TermScreen {
	if rows <= 0 {
		rows = DefaultLines
	}
	if width <= 0 {
		width = DefaultWidth
	}
	return &TermScreen{w: w, rows: rows, width: width}
}

// Render writes the box in a single write.
func (s *TermScreen) Render(lines []string) error {
	if _, err := io.WriteString(s.w, s.View(lines)+"\n"); err != nil {
		return fmt.Errorf("write screen: %w", err)
	}
	return nil
}

// View returns the box for lines without writing it.
func (s *TermScreen) View(lines []string) string {
	rows := make([]string, s.rows)
	for i := 0; i < s.rows && i < len(lines); i++ {
		rows[i] = clip(lines[i], s.width)
	}
	return screenStyle.Width(s.width + 2).Render(strings.Join(rows, "\n"))
}

func clip(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}
