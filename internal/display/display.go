// Package display provides the status screen and its scrolling log.
package display

// Screen is the status display.
type Screen interface {
	// Render clears the screen and draws lines top to bottom.
	Render(lines []string) error
}

// DefaultLines is the number of text rows on the status screen.
const DefaultLines = 4

// DefaultWidth is the number of characters per row on the status screen.
const DefaultWidth = 21
