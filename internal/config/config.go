// Package config loads the langlights daemon configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/langlights/internal/conn"
	"github.com/sweeney/langlights/internal/gpio"
	"github.com/sweeney/langlights/internal/led"
	"github.com/sweeney/langlights/internal/stats"
)

// Config is the complete daemon configuration.
type Config struct {
	Server    string `yaml:"server"`
	Port      int    `yaml:"port"`
	TLS       bool   `yaml:"tls"`
	Path      string `yaml:"path"` // socket.io endpoint, including the query
	AccessKey string `yaml:"access_key"`

	Capacity            int           `yaml:"capacity"` // LED units on the strip
	Heartbeat           time.Duration `yaml:"heartbeat"`
	ReconnectInterval   time.Duration `yaml:"reconnect_interval"`
	DisconnectThreshold int           `yaml:"disconnect_threshold"`
	Sleep               time.Duration `yaml:"sleep"` // 0 exits instead of sleeping

	BrightnessSteps int           `yaml:"brightness_steps"`
	MaxBrightness   int           `yaml:"max_brightness"`
	Debounce        time.Duration `yaml:"debounce"`
	Poll            time.Duration `yaml:"poll"`

	GPIOChip  string `yaml:"gpio_chip"`
	ButtonPin int    `yaml:"button_pin"` // negative disables the button

	HTTP     string `yaml:"http"` // empty disables the status page
	Terminal bool   `yaml:"terminal"`

	MQTT MQTTConfig `yaml:"mqtt"`

	Hues       map[string]uint8 `yaml:"hues,omitempty"`
	DefaultHue uint8            `yaml:"default_hue"`
}

// MQTTConfig contains the optional broker mirror settings.
type MQTTConfig struct {
	Broker      string `yaml:"broker"` // empty disables the mirror
	TopicPrefix string `yaml:"topic_prefix"`
	ClientID    string `yaml:"client_id"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server:              "localhost",
		Port:                443,
		TLS:                 true,
		Capacity:            stats.DefaultCapacity,
		Heartbeat:           conn.DefaultHeartbeat,
		ReconnectInterval:   conn.DefaultReconnectInterval,
		DisconnectThreshold: conn.DefaultDisconnectThreshold,
		Sleep:               10 * time.Minute,
		BrightnessSteps:     conn.DefaultBrightnessSteps,
		MaxBrightness:       255,
		Debounce:            conn.DefaultDebounce,
		Poll:                50 * time.Millisecond,
		GPIOChip:            gpio.DefaultChip,
		ButtonPin:           gpio.DefaultPinButton,
		HTTP:                ":8080",
		Terminal:            true,
		DefaultHue:          uint8(led.HueRed),
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for values the daemon cannot run with.
func (c *Config) Validate() error {
	if c.Server == "" {
		return fmt.Errorf("server is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be in 1..65535, got %d", c.Port)
	}
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be > 0")
	}
	if c.Heartbeat <= 0 {
		return fmt.Errorf("heartbeat must be > 0")
	}
	if c.ReconnectInterval <= 0 {
		return fmt.Errorf("reconnect_interval must be > 0")
	}
	if c.DisconnectThreshold <= 0 {
		return fmt.Errorf("disconnect_threshold must be > 0")
	}
	if c.Sleep < 0 {
		return fmt.Errorf("sleep must be >= 0")
	}
	if c.BrightnessSteps <= 0 {
		return fmt.Errorf("brightness_steps must be > 0")
	}
	if c.MaxBrightness <= 0 || c.MaxBrightness > 255 {
		return fmt.Errorf("max_brightness must be in 1..255, got %d", c.MaxBrightness)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must be >= 0")
	}
	if c.Poll <= 0 {
		return fmt.Errorf("poll must be > 0")
	}
	for code := range c.Hues {
		if code == "" {
			return fmt.Errorf("hues: empty language code")
		}
	}
	return nil
}

// HueTable returns the built-in hue table with configured overrides applied.
func (c *Config) HueTable() stats.HueTable {
	extra := make(map[string]led.Hue, len(c.Hues))
	for code, h := range c.Hues {
		extra[code] = led.Hue(h)
	}
	return stats.DefaultHues().With(extra, led.Hue(c.DefaultHue))
}

// Machine returns the connection state machine parameters.
func (c *Config) Machine() conn.Config {
	return conn.Config{
		AccessKey:           c.AccessKey,
		Heartbeat:           c.Heartbeat,
		ReconnectInterval:   c.ReconnectInterval,
		DisconnectThreshold: c.DisconnectThreshold,
		Debounce:            c.Debounce,
		BrightnessSteps:     c.BrightnessSteps,
	}
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
