// Package conn contains the connection lifecycle state machine.
// This package has NO transport or clock dependencies: every method takes
// the current time and returns the actions the caller must perform.
package conn

import "time"

// State is the lifecycle state of the feed connection.
type State string

const (
	StateDisconnected State = "DISCONNECTED"
	StateConnecting   State = "CONNECTING"
	StateConnected    State = "CONNECTED"
	// StateSleeping is terminal for a run; only Wake leaves it.
	StateSleeping State = "SLEEPING"
)

// ActionType identifies what the caller must do.
type ActionType string

const (
	ActionDial  ActionType = "DIAL"
	ActionSend  ActionType = "SEND"
	ActionSleep ActionType = "SLEEP"
)

// Action is a side effect requested by the machine.
type Action struct {
	Type  ActionType
	Frame string // outbound text for ActionSend
}

// Socket.io engine frames.
const (
	FrameUpgrade   = "5"
	FrameHeartbeat = "2"
)

// Defaults for Config fields left at zero.
const (
	DefaultHeartbeat           = 25 * time.Second
	DefaultReconnectInterval   = 5 * time.Second
	DefaultDisconnectThreshold = 10
	DefaultDebounce            = 300 * time.Millisecond
	DefaultBrightnessSteps     = 5
)

// Config holds the fixed machine parameters.
type Config struct {
	AccessKey           string
	Heartbeat           time.Duration
	ReconnectInterval   time.Duration
	DisconnectThreshold int // sleep once the count exceeds this
	Debounce            time.Duration
	BrightnessSteps     int
}

func (c Config) withDefaults() Config {
	if c.Heartbeat <= 0 {
		c.Heartbeat = DefaultHeartbeat
	}
	if c.ReconnectInterval <= 0 {
		c.ReconnectInterval = DefaultReconnectInterval
	}
	if c.DisconnectThreshold <= 0 {
		c.DisconnectThreshold = DefaultDisconnectThreshold
	}
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
	if c.BrightnessSteps <= 0 {
		c.BrightnessSteps = DefaultBrightnessSteps
	}
	return c
}
