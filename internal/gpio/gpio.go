// Package gpio provides push-button input with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Button reads the physical control.
type Button interface {
	// Pressed returns the logical button state.
	// The button is active-low: raw 0 = pressed.
	Pressed() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Pin defaults (BCM numbering)
const (
	DefaultChip      = "gpiochip0"
	DefaultPinButton = 17
)

// NoButton is a Button that is never pressed, for devices without one.
type NoButton struct{}

// Pressed always reports false.
func (NoButton) Pressed() (bool, error) { return false, nil }

// Close does nothing.
func (NoButton) Close() error { return nil }
