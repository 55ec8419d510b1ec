// Package config provides configuration loading using koanf.
// Precedence: environment → YAML file → compiled defaults.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/aelexs/watchface/internal/domain"
	"github.com/aelexs/watchface/internal/watchface"
)

// EnvPrefix marks the environment variables read by Load. A double
// underscore separates nesting levels: WATCHFACE_FACE__TICK_INTERVAL sets
// face.tick_interval.
const EnvPrefix = "WATCHFACE_"

// Config holds all service configuration.
type Config struct {
	// Environment identifier: "local", "dev", "prod"
	Environment string `koanf:"environment"`

	// Logging configuration
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	Server ServerConfig `koanf:"server"`
	Face   FaceConfig   `koanf:"face"`

	// OpenTelemetry configuration
	OTEL OTELConfig `koanf:"otel"`
}

// ServerConfig holds the HTTP host configuration.
type ServerConfig struct {
	HTTPPort       int      `koanf:"http_port"`
	AllowedOrigins []string `koanf:"allowed_origins"` // Empty allows any origin on /ws
	MaxWidgets     int      `koanf:"max_widgets"`
}

// FaceConfig selects and tunes the rendered face.
type FaceConfig struct {
	Preset       string        `koanf:"preset"`
	Motion       string        `koanf:"motion"`   // Empty keeps the preset's motion
	Schedule     string        `koanf:"schedule"` // Empty keeps the preset's schedule
	Width        float64       `koanf:"width"`
	Height       float64       `koanf:"height"`
	Density      float64       `koanf:"density"`
	TickInterval time.Duration `koanf:"tick_interval"`
	Align        bool          `koanf:"align"`
}

// OTELConfig holds OpenTelemetry configuration.
type OTELConfig struct {
	Endpoint    string `koanf:"endpoint"` // Empty disables OTLP export
	ServiceName string `koanf:"service_name"`
}

// defaults returns a Config with compiled default values.
func defaults() *Config {
	return &Config{
		Environment: "local",
		LogLevel:    "info",
		LogFormat:   "json",

		Server: ServerConfig{
			HTTPPort:   8080,
			MaxWidgets: domain.MaxMountedWidgets,
		},
		Face: FaceConfig{
			Preset:       watchface.PresetStrap,
			Width:        domain.DefaultViewportWidth,
			Height:       domain.DefaultViewportHeight,
			Density:      1,
			TickInterval: domain.TickInterval,
			Align:        true,
		},
		OTEL: OTELConfig{
			ServiceName: domain.ServiceName,
		},
	}
}

type loadOptions struct {
	file string
}

// Option customises Load.
type Option func(*loadOptions)

// WithFile layers a YAML file between the defaults and the environment.
// An empty path is ignored.
func WithFile(path string) Option {
	return func(o *loadOptions) { o.file = path }
}

// Load loads configuration following the precedence:
// 1. Environment variables (highest)
// 2. YAML file, when WithFile is given
// 3. Compiled defaults (lowest)
func Load(_ context.Context, opts ...Option) (*Config, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")
	cfg := defaults()

	if o.file != "" {
		if err := k.Load(file.Provider(o.file), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", o.file, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validateRequired(cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// envKey maps WATCHFACE_FACE__TICK_INTERVAL to face.tick_interval.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

// validateRequired checks that required configuration is present.
func validateRequired(cfg *Config) error {
	if cfg.Environment == "prod" && cfg.OTEL.Endpoint == "" {
		return fmt.Errorf("%w: otel.endpoint", domain.ErrConfigRequired)
	}
	return nil
}

// validate checks that present values are usable.
func validate(cfg *Config) error {
	if cfg.Server.HTTPPort < 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", domain.ErrInvalidConfig, cfg.Server.HTTPPort)
	}
	if cfg.Server.MaxWidgets <= 0 {
		return fmt.Errorf("%w: server.max_widgets %d", domain.ErrInvalidConfig, cfg.Server.MaxWidgets)
	}
	if cfg.Face.TickInterval <= 0 {
		return fmt.Errorf("%w: face.tick_interval %s", domain.ErrInvalidConfig, cfg.Face.TickInterval)
	}
	if _, err := cfg.Face.Style(); err != nil {
		return fmt.Errorf("%w: face: %w", domain.ErrInvalidConfig, err)
	}
	if err := cfg.Face.Viewport().Validate(); err != nil {
		return fmt.Errorf("%w: face: %w", domain.ErrInvalidConfig, err)
	}
	return nil
}

// Style resolves the preset and applies the motion, schedule and density
// overrides.
func (f FaceConfig) Style() (watchface.Style, error) {
	s, err := watchface.PresetByName(f.Preset)
	if err != nil {
		return watchface.Style{}, err
	}
	if f.Motion != "" {
		if s.Motion, err = watchface.ParseMotion(f.Motion); err != nil {
			return watchface.Style{}, err
		}
	}
	if f.Schedule != "" {
		if s.Schedule, err = watchface.ParseSchedule(f.Schedule); err != nil {
			return watchface.Style{}, err
		}
	}
	if f.Density != 0 {
		s.Density = f.Density
	}
	if err := s.Validate(); err != nil {
		return watchface.Style{}, err
	}
	return s, nil
}

// Viewport returns the configured drawing area.
func (f FaceConfig) Viewport() watchface.Viewport {
	return watchface.Viewport{Width: f.Width, Height: f.Height}
}

// IsLocal returns true if running in local development environment.
func (c *Config) IsLocal() bool {
	return c.Environment == "local"
}

// IsProd returns true if running in production environment.
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}
