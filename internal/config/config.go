package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the global ~/.mockmsg/config.toml.
type Config struct {
	DefaultProfile string   `toml:"default_profile"`
	LogLevel       string   `toml:"log_level"`
	ScenarioFile   string   `toml:"scenario_file"`
	Gesture        Gesture  `toml:"gesture"`
	Receipts       Receipts `toml:"receipts"`
}

// Gesture configures the multi-tap that toggles the debug panel.
type Gesture struct {
	Taps   int      `toml:"taps"`
	Window Duration `toml:"window"`
}

// Receipts configures simulated delivery and read receipts for sent
// messages. Zero disables a stage.
type Receipts struct {
	DeliveredAfter Duration `toml:"delivered_after"`
	ReadAfter      Duration `toml:"read_after"`
}

// Duration is a time.Duration written as a Go duration string ("1.5s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Gesture:  Gesture{Taps: 3, Window: Duration{500 * time.Millisecond}},
		Receipts: Receipts{
			DeliveredAfter: Duration{2 * time.Second},
			ReadAfter:      Duration{5 * time.Second},
		},
	}
}

// Load reads config from the given path on top of Default(). Returns nil
// and an error if the file is missing or malformed.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load that falls back to Default() for a missing file.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
