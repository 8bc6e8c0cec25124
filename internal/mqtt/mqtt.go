// Package mqtt mirrors rendered frames and lifecycle events to an MQTT broker.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/langlights/internal/stats"
)

// DefaultTopicPrefix is the topic root when none is configured.
const DefaultTopicPrefix = "langlights"

// Topics holds the topics the publisher writes to.
type Topics struct {
	Stats  string
	System string
}

// TopicsFor derives topics from a prefix.
func TopicsFor(prefix string) Topics {
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return Topics{
		Stats:  prefix + "/stats",
		System: prefix + "/system",
	}
}

// Publisher publishes events to MQTT.
type Publisher interface {
	// PublishFrame sends the allocation behind a rendered frame.
	// Returns error if publishing fails (should not crash the process).
	PublishFrame(event FrameEvent) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// FrameEvent is one rendered statistics frame.
type FrameEvent struct {
	Timestamp  time.Time
	Result     stats.AggregationResult
	Brightness uint8
}

// SystemEvent represents a system lifecycle event (e.g., startup, sleep, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "CONNECTED", "SLEEP", "SHUTDOWN"
	Reason     string // e.g., "SIGTERM", "disconnects=11"
	Session    string // run identifier
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// FramePayload represents the MQTT message payload for a frame.
type FramePayload struct {
	Stats StatsPayload `json:"stats"`
}

// StatsPayload contains the frame details.
type StatsPayload struct {
	Timestamp  string            `json:"timestamp"`
	Total      int               `json:"total"`
	Capacity   int               `json:"capacity"`
	Used       int               `json:"used"`
	Truncated  bool              `json:"truncated"`
	Brightness uint8             `json:"brightness"`
	Languages  []LanguagePayload `json:"languages"`
}

// LanguagePayload is one record of the allocation.
type LanguagePayload struct {
	Code       string `json:"code"`
	Count      int    `json:"count"`
	Allocated  int    `json:"allocated"`
	LEDs       int    `json:"leds"`
	Overflowed bool   `json:"overflowed"`
}

// FormatFramePayload creates the JSON payload for a frame event.
func FormatFramePayload(event FrameEvent) ([]byte, error) {
	res := event.Result
	langs := make([]LanguagePayload, 0, len(res.Records))
	for _, r := range res.Records {
		langs = append(langs, LanguagePayload{
			Code:       r.Code,
			Count:      r.RawCount,
			Allocated:  r.Allocated,
			LEDs:       r.Units,
			Overflowed: r.Overflowed,
		})
	}
	payload := FramePayload{
		Stats: StatsPayload{
			Timestamp:  event.Timestamp.UTC().Format(time.RFC3339),
			Total:      res.TotalRawCount,
			Capacity:   res.Capacity,
			Used:       res.UsedUnits(),
			Truncated:  res.Truncated(),
			Brightness: event.Brightness,
			Languages:  langs,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
	Session   string `json:"session,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
			Session:   event.Session,
		},
	}
	return json.Marshal(payload)
}

// NopPublisher discards everything. Used when no broker is configured.
type NopPublisher struct{}

// PublishFrame discards the event.
func (NopPublisher) PublishFrame(FrameEvent) error { return nil }

// PublishSystem discards the event.
func (NopPublisher) PublishSystem(SystemEvent) error { return nil }

// Close does nothing.
func (NopPublisher) Close() error { return nil }

// IsConnected always reports false.
func (NopPublisher) IsConnected() bool { return false }
