// Package config loads station settings from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Modes the binary can run in
const (
	ModeLocal  = "local"
	ModeServer = "server"
	ModeClient = "client"
)

type Config struct {
	Mode string `yaml:"mode"`

	Switch  SwitchConfig  `yaml:"switch"`
	Station StationConfig `yaml:"station"`
	Net     NetConfig     `yaml:"net"`
	Log     LogConfig     `yaml:"log"`
	Journal JournalConfig `yaml:"journal"`

	Locale      string `yaml:"locale"`
	LocalesPath string `yaml:"locales_path"`
	Audio       bool   `yaml:"audio"`
	GUI         bool   `yaml:"gui"`

	// Keys rebinds actions by name, e.g. quit: x
	Keys map[string]string `yaml:"keys"`
}

type SwitchConfig struct {
	Radius         float64       `yaml:"radius"`
	ShutoffVoltage float64       `yaml:"shutoff_voltage"`
	Cooldown       time.Duration `yaml:"cooldown"`
	DeferredSync   time.Duration `yaml:"deferred_sync"`
}

type StationConfig struct {
	// Layout is an ASCII map. Empty means generate one from Seed.
	Layout     string        `yaml:"layout"`
	Seed       int64         `yaml:"seed"`
	Rows       int           `yaml:"rows"`
	Cols       int           `yaml:"cols"`
	APCVoltage float64       `yaml:"apc_voltage"`
	Tick       time.Duration `yaml:"tick"`
}

type NetConfig struct {
	Listen    string `yaml:"listen"`
	ServerURL string `yaml:"server_url"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File receives the log while the terminal renderer owns the tty.
	// Empty keeps logging on stderr.
	File string `yaml:"file"`
}

type JournalConfig struct {
	// Path of the SQLite journal. Empty disables journaling.
	Path string `yaml:"path"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Mode: ModeLocal,
		Switch: SwitchConfig{
			Radius:         10,
			ShutoffVoltage: 50,
			Cooldown:       200 * time.Millisecond,
			DeferredSync:   3 * time.Second,
		},
		Station: StationConfig{
			Rows:       24,
			Cols:       48,
			APCVoltage: 240,
			Tick:       50 * time.Millisecond,
		},
		Net: NetConfig{
			Listen:    "127.0.0.1:7777",
			ServerURL: "ws://127.0.0.1:7777/ws",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			File:   "lightstation.log",
		},
		Locale:      "en_GB",
		LocalesPath: "locales",
	}
}

// Load reads path over the defaults. A missing file is an error; an empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the rest of the program relies on
func (c Config) Validate() error {
	switch c.Mode {
	case ModeLocal, ModeServer, ModeClient:
	default:
		return fmt.Errorf("mode %q: want local, server or client", c.Mode)
	}
	if c.Switch.Radius <= 0 {
		return fmt.Errorf("switch.radius must be positive, got %v", c.Switch.Radius)
	}
	if c.Switch.ShutoffVoltage < 0 {
		return fmt.Errorf("switch.shutoff_voltage must not be negative, got %v", c.Switch.ShutoffVoltage)
	}
	if c.Switch.Cooldown < 0 || c.Switch.DeferredSync < 0 {
		return fmt.Errorf("switch delays must not be negative")
	}
	if c.Station.Tick <= 0 {
		return fmt.Errorf("station.tick must be positive, got %v", c.Station.Tick)
	}
	if c.Station.Layout == "" && (c.Station.Rows < 8 || c.Station.Cols < 8) {
		return fmt.Errorf("station.rows and station.cols must be at least 8 to generate a layout")
	}
	if c.Station.APCVoltage < 0 {
		return fmt.Errorf("station.apc_voltage must not be negative, got %v", c.Station.APCVoltage)
	}
	if c.Mode == ModeServer && c.Net.Listen == "" {
		return fmt.Errorf("net.listen is required in server mode")
	}
	if c.Mode == ModeClient && c.Net.ServerURL == "" {
		return fmt.Errorf("net.server_url is required in client mode")
	}
	return nil
}
