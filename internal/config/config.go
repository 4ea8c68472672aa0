// Package config loads the static configuration for the Mudra gesture launcher.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/gesture"
)

// Defaults for the debounce and cooldown tuning knobs.
const (
	DefaultStableFrames    = 6
	DefaultCooldownSeconds = 3.0
	DefaultCameraID        = 0
	DefaultMotionThreshold = 1.0
	DefaultListenAddr      = ":8080"
)

// Config is the static configuration, loaded once at process start.
type Config struct {
	// StableFrames is how many consecutive frames the same finger count
	// must appear before triggering.
	StableFrames int `yaml:"stable_frames"`

	// CooldownSeconds is the minimum wait between two triggered actions.
	CooldownSeconds float64 `yaml:"cooldown_seconds"`

	CameraID        int     `yaml:"camera_id"`
	MotionThreshold float64 `yaml:"motion_threshold"`
	ListenAddr      string  `yaml:"listen_addr"`
	PluginDir       string  `yaml:"plugin_dir"`

	// Mappings binds finger counts (0-5) to action descriptors.
	Mappings map[int]action.Descriptor `yaml:"mappings"`

	// Programs is the per-platform executable lookup table used by
	// open_program actions.
	Programs action.LookupTable `yaml:"programs"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StableFrames:    DefaultStableFrames,
		CooldownSeconds: DefaultCooldownSeconds,
		CameraID:        DefaultCameraID,
		MotionThreshold: DefaultMotionThreshold,
		ListenAddr:      DefaultListenAddr,
		Mappings: map[int]action.Descriptor{
			0: {Kind: action.KindNoOp}, // closed fist: do nothing
			1: {Kind: action.KindOpenURL, Parameter: "https://www.youtube.com/"},
			2: {Kind: action.KindOpenProgram, Parameter: "chrome"},
			3: {Kind: action.KindOpenProgram, Parameter: "code"},
			4: {Kind: action.KindOpenProgram, Parameter: "files"},
			5: {Kind: action.KindNoOp},
		},
		Programs: action.DefaultLookupTable(),
	}
}

// DefaultPath returns the default config file location, ~/.mudra/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mudra", "config.yaml"), nil
}

// Load reads the YAML config at path on top of the defaults. A missing file
// yields the defaults; a malformed or invalid file is an error. Keys given
// in the mappings or programs sections override only the counts and
// programs they name.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if c.StableFrames < 1 {
		return fmt.Errorf("stable_frames must be >= 1, got %d", c.StableFrames)
	}
	if c.CooldownSeconds < 0 {
		return fmt.Errorf("cooldown_seconds must be >= 0, got %g", c.CooldownSeconds)
	}
	for count, desc := range c.Mappings {
		if count < 0 || count > 5 {
			return fmt.Errorf("mapping key %d out of range 0-5", count)
		}
		if !desc.Kind.Valid() {
			return fmt.Errorf("mapping %d: unknown action kind %q", count, desc.Kind)
		}
	}
	return nil
}

// Cooldown returns the cooldown as a duration.
func (c Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds * float64(time.Second))
}

// Mapping returns the count-to-action mapping in the emitter's form.
func (c Config) Mapping() gesture.Mapping {
	m := make(gesture.Mapping, len(c.Mappings))
	for count, desc := range c.Mappings {
		m[count] = desc
	}
	return m
}
