// Package config loads the TOML settings shared by the game front ends.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Garsondee/Pong/internal/pong"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "pong.toml"

var (
	// ErrUnknownKey is returned when a binding names a key no front end can
	// report.
	ErrUnknownKey = errors.New("unknown key name")
	// ErrInvalid wraps every Validate failure.
	ErrInvalid = errors.New("invalid config")
)

type Config struct {
	LogLevel string `toml:"log_level"`
	Seed     uint64 `toml:"seed"` // 0 picks a time-based seed

	Rules  RulesConfig  `toml:"rules"`
	Keys   Keys         `toml:"keys"`
	Audio  AudioConfig  `toml:"audio"`
	Window WindowConfig `toml:"window"`
}

// RulesConfig mirrors pong.Rules with the bounce angle in degrees.
type RulesConfig struct {
	PaddleSpeed       float64 `toml:"paddle_speed"`
	BaseSpeed         float64 `toml:"base_speed"`
	MaxSpeed          float64 `toml:"max_speed"`
	RampInterval      float64 `toml:"ramp_interval"`
	RampFactor        float64 `toml:"ramp_factor"`
	MaxBounceAngleDeg float64 `toml:"max_bounce_angle_deg"`
	WinScore          int     `toml:"win_score"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0..1
}

type WindowConfig struct {
	Scale float64 `toml:"scale"`
	Title string  `toml:"title"`
}

// Default returns the built-in settings.
func Default() Config {
	r := pong.DefaultRules()
	return Config{
		LogLevel: "info",
		Rules: RulesConfig{
			PaddleSpeed:       r.PaddleSpeed,
			BaseSpeed:         r.BaseSpeed,
			MaxSpeed:          r.MaxSpeed,
			RampInterval:      r.RampInterval,
			RampFactor:        r.RampFactor,
			MaxBounceAngleDeg: r.MaxBounceAngle * 180 / math.Pi,
			WinScore:          r.WinScore,
		},
		Keys:   DefaultKeys(),
		Audio:  AudioConfig{Enabled: true, Volume: 0.5},
		Window: WindowConfig{Scale: 1, Title: "Pong"},
	}
}

// Load reads path over the defaults. A missing file is not an error; found
// reports whether the file existed. Keys in the file that match no setting are
// rejected so typos do not pass silently.
func Load(path string) (cfg Config, found bool, err error) {
	cfg = Default()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), false, nil
	}
	if err != nil {
		return Config{}, true, fmt.Errorf("decode %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		names := make([]string, len(undec))
		for i, k := range undec {
			names[i] = k.String()
		}
		return Config{}, true, fmt.Errorf("%s: unrecognised settings: %s", path, strings.Join(names, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, true, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, true, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

// Validate checks value ranges and key bindings.
func (c *Config) Validate() error {
	r := c.Rules
	switch {
	case r.PaddleSpeed <= 0:
		return fmt.Errorf("%w: rules.paddle_speed must be positive", ErrInvalid)
	case r.BaseSpeed <= 0:
		return fmt.Errorf("%w: rules.base_speed must be positive", ErrInvalid)
	case r.MaxSpeed < r.BaseSpeed:
		return fmt.Errorf("%w: rules.max_speed %.1f is below base_speed %.1f", ErrInvalid, r.MaxSpeed, r.BaseSpeed)
	case r.RampInterval <= 0:
		return fmt.Errorf("%w: rules.ramp_interval must be positive", ErrInvalid)
	case r.RampFactor < 1:
		return fmt.Errorf("%w: rules.ramp_factor must be at least 1", ErrInvalid)
	case r.MaxBounceAngleDeg < 0 || r.MaxBounceAngleDeg >= 90:
		return fmt.Errorf("%w: rules.max_bounce_angle_deg must be in [0, 90)", ErrInvalid)
	case r.WinScore < 1:
		return fmt.Errorf("%w: rules.win_score must be at least 1", ErrInvalid)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume must be in [0, 1]", ErrInvalid)
	case c.Window.Scale <= 0:
		return fmt.Errorf("%w: window.scale must be positive", ErrInvalid)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return c.Keys.Validate()
}

// ToRules converts the [rules] table for the simulation.
func (c *Config) ToRules() pong.Rules {
	r := c.Rules
	return pong.Rules{
		PaddleSpeed:    r.PaddleSpeed,
		BaseSpeed:      r.BaseSpeed,
		MaxSpeed:       r.MaxSpeed,
		RampInterval:   r.RampInterval,
		RampFactor:     r.RampFactor,
		MaxBounceAngle: r.MaxBounceAngleDeg * math.Pi / 180,
		WinScore:       r.WinScore,
	}
}
