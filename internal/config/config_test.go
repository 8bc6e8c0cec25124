package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/langlights/internal/led"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() invalid: %v", err)
	}
	if cfg.Capacity != 30 {
		t.Errorf("Capacity: got %d, want 30", cfg.Capacity)
	}
	if cfg.Heartbeat != 25*time.Second {
		t.Errorf("Heartbeat: got %v, want 25s", cfg.Heartbeat)
	}
	if cfg.DisconnectThreshold != 10 {
		t.Errorf("DisconnectThreshold: got %d, want 10", cfg.DisconnectThreshold)
	}
	if cfg.Debounce != 300*time.Millisecond {
		t.Errorf("Debounce: got %v, want 300ms", cfg.Debounce)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	data := []byte(`
server: rapscript.net
port: 8143
access_key: secret
capacity: 60
heartbeat: 10s
sleep: 0s
button_pin: -1
mqtt:
  broker: tcp://192.168.1.200:1883
  topic_prefix: lights
hues:
  ja: 200
default_hue: 32
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Server != "rapscript.net" || cfg.Port != 8143 || cfg.AccessKey != "secret" {
		t.Errorf("server fields: got %s:%d key=%q", cfg.Server, cfg.Port, cfg.AccessKey)
	}
	if cfg.Capacity != 60 {
		t.Errorf("Capacity: got %d, want 60", cfg.Capacity)
	}
	if cfg.Heartbeat != 10*time.Second {
		t.Errorf("Heartbeat: got %v, want 10s", cfg.Heartbeat)
	}
	if cfg.Sleep != 0 {
		t.Errorf("Sleep: got %v, want 0", cfg.Sleep)
	}
	if cfg.ButtonPin != -1 {
		t.Errorf("ButtonPin: got %d, want -1", cfg.ButtonPin)
	}
	if cfg.MQTT.Broker != "tcp://192.168.1.200:1883" || cfg.MQTT.TopicPrefix != "lights" {
		t.Errorf("MQTT: got %+v", cfg.MQTT)
	}
	// untouched fields keep defaults
	if cfg.ReconnectInterval != 5*time.Second {
		t.Errorf("ReconnectInterval: got %v, want default 5s", cfg.ReconnectInterval)
	}
	if !cfg.TLS {
		t.Error("TLS: expected default true")
	}

	hues := cfg.HueTable()
	if got := hues.Lookup("ja"); got != led.Hue(200) {
		t.Errorf("ja hue: got %d, want 200", got)
	}
	if got := hues.Lookup("en"); got != led.HueGreen {
		t.Errorf("en hue: got %d, want green", got)
	}
	if got := hues.Lookup("xx"); got != led.HueOrange {
		t.Errorf("default hue: got %d, want orange", got)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty server", `server: ""`, "server"},
		{"bad port", `port: 70000`, "port"},
		{"zero capacity", `capacity: 0`, "capacity"},
		{"zero heartbeat", `heartbeat: 0s`, "heartbeat"},
		{"negative sleep", `sleep: -1s`, "sleep"},
		{"bright too high", `max_brightness: 300`, "max_brightness"},
		{"zero poll", `poll: 0s`, "poll"},
		{"not yaml", `server: [`, "parse config"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "langlights.yaml")
	if err := os.WriteFile(path, []byte("server: example.org\nport: 9000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server != "example.org" || cfg.Port != 9000 {
		t.Errorf("got %s:%d", cfg.Server, cfg.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist cause, got %v", err)
	}
}

func TestMachineConfig(t *testing.T) {
	cfg := Default()
	cfg.AccessKey = "k"
	m := cfg.Machine()
	if m.AccessKey != "k" || m.Heartbeat != cfg.Heartbeat || m.BrightnessSteps != cfg.BrightnessSteps {
		t.Errorf("Machine(): got %+v", m)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Server = "rapscript.net"
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), "heartbeat: 25s") {
		t.Errorf("expected duration rendered as string, got:\n%s", data)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if back.Server != "rapscript.net" || back.Heartbeat != cfg.Heartbeat {
		t.Errorf("round trip: got %+v", back)
	}
}
