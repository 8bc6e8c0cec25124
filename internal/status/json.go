package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string         `json:"event,omitempty"`
	Reason        string         `json:"reason,omitempty"`
	Session       string         `json:"session"`
	State         string         `json:"state"`
	Disconnects   int            `json:"disconnects"`
	Brightness    BrightnessJSON `json:"brightness"`
	Total         int            `json:"total"`
	Truncated     bool           `json:"truncated"`
	Languages     []LanguageJSON `json:"languages"`
	Strip         []string       `json:"strip"`
	Lines         []string       `json:"lines"`
	Frames        int            `json:"frames"`
	DecodeErrors  int            `json:"decode_errors"`
	LastFrame     string         `json:"last_frame,omitempty"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	StartTime     string         `json:"start_time"`
	Timestamp     string         `json:"timestamp"`
	MQTT          MQTTStatus     `json:"mqtt"`
	Config        ConfigJSON     `json:"config"`
}

// BrightnessJSON reports the brightness setting.
type BrightnessJSON struct {
	Level int   `json:"level"`
	Value uint8 `json:"value"`
}

// LanguageJSON is one allocated language.
type LanguageJSON struct {
	Code       string `json:"code"`
	Count      int    `json:"count"`
	LEDs       int    `json:"leds"`
	Overflowed bool   `json:"overflowed"`
	Color      string `json:"color"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	Server              string `json:"server"`
	Port                int    `json:"port"`
	Capacity            int    `json:"capacity"`
	HeartbeatMs         int64  `json:"heartbeat_ms"`
	DisconnectThreshold int    `json:"disconnect_threshold"`
	SleepMs             int64  `json:"sleep_ms"`
	Broker              string `json:"broker"`
	HTTPAddr            string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	state := string(snap.State)
	if state == "" {
		state = "UNKNOWN"
	}

	langs := make([]LanguageJSON, 0, len(snap.Result.Records))
	for _, r := range snap.Result.Records {
		color := ""
		if r.Start < len(snap.Frame) && r.Units > 0 {
			color = snap.Frame[r.Start].Hex()
		}
		langs = append(langs, LanguageJSON{
			Code:       r.Code,
			Count:      r.RawCount,
			LEDs:       r.Units,
			Overflowed: r.Overflowed,
			Color:      color,
		})
	}
	strip := make([]string, len(snap.Frame))
	for i, c := range snap.Frame {
		strip[i] = c.Hex()
	}
	lines := snap.Lines
	if lines == nil {
		lines = []string{}
	}

	inner := StatusInner{
		Session:       snap.Session,
		State:         state,
		Disconnects:   snap.Disconnects,
		Brightness:    BrightnessJSON{Level: snap.Level, Value: snap.Brightness},
		Total:         snap.Result.TotalRawCount,
		Truncated:     snap.Result.Truncated(),
		Languages:     langs,
		Strip:         strip,
		Lines:         lines,
		Frames:        snap.Frames,
		DecodeErrors:  snap.DecodeErrors,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Config: ConfigJSON{
			Server:              snap.Config.Server,
			Port:                snap.Config.Port,
			Capacity:            snap.Config.Capacity,
			HeartbeatMs:         snap.Config.HeartbeatMs,
			DisconnectThreshold: snap.Config.DisconnectThreshold,
			SleepMs:             snap.Config.SleepMs,
			Broker:              snap.Config.Broker,
			HTTPAddr:            snap.Config.HTTPAddr,
		},
	}
	if !snap.LastFrame.IsZero() {
		inner.LastFrame = snap.LastFrame.UTC().Format(time.RFC3339)
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
