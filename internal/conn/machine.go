package conn

import "time"

// Machine tracks the feed connection, heartbeat, button and brightness.
type Machine struct {
	cfg   Config
	state State

	disconnects    int
	lastDisconnect time.Time
	lastHeartbeat  time.Time
	lastPress      time.Time
	level          int
}

// NewMachine creates a machine in StateDisconnected.
func NewMachine(cfg Config) *Machine {
	return &Machine{
		cfg:   cfg.withDefaults(),
		state: StateDisconnected,
	}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// DisconnectCount returns the disconnects since the last successful connect.
func (m *Machine) DisconnectCount() int {
	return m.disconnects
}

// Level returns the brightness level in [0, BrightnessSteps).
func (m *Machine) Level() int {
	return m.level
}

// Steps returns the number of brightness levels.
func (m *Machine) Steps() int {
	return m.cfg.BrightnessSteps
}

// AcceptsText reports whether incoming text should be decoded.
func (m *Machine) AcceptsText() bool {
	return m.state == StateConnecting || m.state == StateConnected
}

// Dial starts a connection attempt if disconnected.
func (m *Machine) Dial() []Action {
	if m.state != StateDisconnected {
		return nil
	}
	m.state = StateConnecting
	return []Action{{Type: ActionDial}}
}

// Connected handles the transport's connected event. It confirms the
// upgrade, subscribes to statistics and resets the disconnect count.
func (m *Machine) Connected(now time.Time) []Action {
	if m.state == StateSleeping {
		return nil
	}
	m.state = StateConnected
	m.disconnects = 0
	m.lastHeartbeat = now
	return []Action{
		{Type: ActionSend, Frame: FrameUpgrade},
		{Type: ActionSend, Frame: SubscribeFrame(m.cfg.AccessKey)},
	}
}

// Disconnected handles the transport's disconnect event, including failed
// dials. Once the count exceeds the threshold the machine sleeps.
func (m *Machine) Disconnected(now time.Time) []Action {
	if m.state != StateConnecting && m.state != StateConnected {
		return nil
	}
	m.state = StateDisconnected
	m.disconnects++
	m.lastDisconnect = now

	if m.disconnects > m.cfg.DisconnectThreshold {
		m.state = StateSleeping
		return []Action{{Type: ActionSleep}}
	}
	return nil
}

// Tick sends the heartbeat while connected and paces reconnects while
// disconnected.
func (m *Machine) Tick(now time.Time) []Action {
	switch m.state {
	case StateConnected:
		if now.Sub(m.lastHeartbeat) >= m.cfg.Heartbeat {
			m.lastHeartbeat = now
			return []Action{{Type: ActionSend, Frame: FrameHeartbeat}}
		}
	case StateDisconnected:
		if m.lastDisconnect.IsZero() || now.Sub(m.lastDisconnect) >= m.cfg.ReconnectInterval {
			return m.Dial()
		}
	}
	return nil
}

// Press handles a button sample that reads pressed. Presses closer than
// the debounce interval to the last accepted one are ignored. An accepted
// press advances the brightness level and, when connected, re-subscribes
// to force a fresh snapshot.
func (m *Machine) Press(now time.Time) (accepted bool, actions []Action) {
	if !m.lastPress.IsZero() && now.Sub(m.lastPress) <= m.cfg.Debounce {
		return false, nil
	}
	m.lastPress = now
	m.level = (m.level + 1) % m.cfg.BrightnessSteps

	if m.state == StateConnected {
		actions = append(actions, Action{Type: ActionSend, Frame: SubscribeFrame(m.cfg.AccessKey)})
	}
	return true, actions
}

// Wake leaves StateSleeping with a fresh disconnect count.
func (m *Machine) Wake() {
	if m.state != StateSleeping {
		return
	}
	m.state = StateDisconnected
	m.disconnects = 0
	m.lastDisconnect = time.Time{}
}
