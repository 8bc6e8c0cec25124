// Package status provides a thread-safe status tracker for the langlights daemon.
// The control loop writes it; HTTP handlers and MQTT events read snapshots.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/langlights/internal/conn"
	"github.com/sweeney/langlights/internal/led"
	"github.com/sweeney/langlights/internal/stats"
)

// Config contains daemon configuration for display.
type Config struct {
	Server              string
	Port                int
	Capacity            int
	HeartbeatMs         int64
	DisconnectThreshold int
	SleepMs             int64
	Broker              string
	HTTPAddr            string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type and safe to use after the lock is released.
type Snapshot struct {
	State        conn.State
	Disconnects  int
	Level        int
	Brightness   uint8
	Result       stats.AggregationResult
	Frame        []led.Color
	Lines        []string
	LastFrame    time.Time
	Frames       int
	DecodeErrors int

	Session       string
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, session string, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			State:     conn.StateDisconnected,
			Session:   session,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// SetConnection records the connection state and disconnect count.
func (t *Tracker) SetConnection(state conn.State, disconnects int) {
	t.mu.Lock()
	t.snap.State = state
	t.snap.Disconnects = disconnects
	t.mu.Unlock()
}

// SetBrightness records the brightness level and its value.
func (t *Tracker) SetBrightness(level int, value uint8) {
	t.mu.Lock()
	t.snap.Level = level
	t.snap.Brightness = value
	t.mu.Unlock()
}

// SetFrame records the latest allocation and rendered frame.
func (t *Tracker) SetFrame(at time.Time, res stats.AggregationResult, frame []led.Color) {
	recs := make([]stats.LanguageStat, len(res.Records))
	copy(recs, res.Records)
	res.Records = recs
	f := make([]led.Color, len(frame))
	copy(f, frame)

	t.mu.Lock()
	t.snap.Result = res
	t.snap.Frame = f
	t.snap.LastFrame = at
	t.snap.Frames++
	t.mu.Unlock()
}

// SetLines records the status screen lines.
func (t *Tracker) SetLines(lines []string) {
	cp := make([]string, len(lines))
	copy(cp, lines)
	t.mu.Lock()
	t.snap.Lines = cp
	t.mu.Unlock()
}

// AddDecodeError counts a message that failed to decode.
func (t *Tracker) AddDecodeError() {
	t.mu.Lock()
	t.snap.DecodeErrors++
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
