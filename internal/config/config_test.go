package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aelexs/watchface/internal/config"
	"github.com/aelexs/watchface/internal/domain"
	"github.com/aelexs/watchface/internal/watchface"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, domain.MaxMountedWidgets, cfg.Server.MaxWidgets)
	assert.Empty(t, cfg.Server.AllowedOrigins)

	assert.Equal(t, watchface.PresetStrap, cfg.Face.Preset)
	assert.Equal(t, domain.TickInterval, cfg.Face.TickInterval)
	assert.Equal(t, watchface.Viewport{Width: 480, Height: 480}, cfg.Face.Viewport())
	assert.True(t, cfg.Face.Align)
	assert.Equal(t, domain.ServiceName, cfg.OTEL.ServiceName)
}

func TestIsLocal(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{"local returns true", "local", true},
		{"prod returns false", "prod", false},
		{"dev returns false", "dev", false},
		{"empty returns false", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Environment: tt.env}

			assert.Equal(t, tt.want, cfg.IsLocal())
		})
	}
}

func TestIsProd(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{"prod returns true", "prod", true},
		{"local returns false", "local", false},
		{"dev returns false", "dev", false},
		{"empty returns false", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Environment: tt.env}

			assert.Equal(t, tt.want, cfg.IsProd())
		})
	}
}

func TestValidateRequired_ProdRequiresOTELEndpoint(t *testing.T) {
	t.Setenv("WATCHFACE_ENVIRONMENT", "prod")

	_, err := config.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigRequired)
	assert.Contains(t, err.Error(), "otel.endpoint")
}

func TestLoadWithEnvOverride(t *testing.T) {
	t.Setenv("WATCHFACE_ENVIRONMENT", "prod")
	t.Setenv("WATCHFACE_OTEL__ENDPOINT", "collector:4317")
	t.Setenv("WATCHFACE_LOG_LEVEL", "debug")
	t.Setenv("WATCHFACE_SERVER__HTTP_PORT", "9000")
	t.Setenv("WATCHFACE_FACE__PRESET", "classic")
	t.Setenv("WATCHFACE_FACE__TICK_INTERVAL", "250ms")
	t.Setenv("WATCHFACE_FACE__WIDTH", "320")

	cfg, err := config.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, "collector:4317", cfg.OTEL.Endpoint)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Equal(t, "classic", cfg.Face.Preset)
	assert.Equal(t, 250*time.Millisecond, cfg.Face.TickInterval)
	assert.InDelta(t, 320.0, cfg.Face.Width, 1e-9)
	assert.InDelta(t, 480.0, cfg.Face.Height, 1e-9)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchface.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_format: text
server:
  allowed_origins: ["https://example.com"]
face:
  preset: bezel
  motion: step
  density: 2
`), 0o600))

	t.Run("file values apply", func(t *testing.T) {
		cfg, err := config.Load(context.Background(), config.WithFile(path))

		require.NoError(t, err)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, []string{"https://example.com"}, cfg.Server.AllowedOrigins)

		s, err := cfg.Face.Style()
		require.NoError(t, err)
		assert.Equal(t, watchface.PresetBezel, s.Name)
		assert.Equal(t, watchface.MotionStep, s.Motion)
		assert.InDelta(t, 2.0, s.Density, 1e-9)
	})

	t.Run("env wins over file", func(t *testing.T) {
		t.Setenv("WATCHFACE_FACE__PRESET", "smooth")

		cfg, err := config.Load(context.Background(), config.WithFile(path))

		require.NoError(t, err)
		assert.Equal(t, "smooth", cfg.Face.Preset)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := config.Load(context.Background(), config.WithFile(filepath.Join(t.TempDir(), "nope.yaml")))

		assert.Error(t, err)
	})
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"unknown preset", "WATCHFACE_FACE__PRESET", "sundial", domain.ErrUnknownPreset},
		{"unknown motion", "WATCHFACE_FACE__MOTION", "jitter", domain.ErrInvalidMotion},
		{"unknown schedule", "WATCHFACE_FACE__SCHEDULE", "daily", domain.ErrInvalidSchedule},
		{"zero width", "WATCHFACE_FACE__WIDTH", "0", domain.ErrInvalidViewport},
		{"negative tick", "WATCHFACE_FACE__TICK_INTERVAL", "-1s", domain.ErrInvalidConfig},
		{"port out of range", "WATCHFACE_SERVER__HTTP_PORT", "70000", domain.ErrInvalidConfig},
		{"no widgets", "WATCHFACE_SERVER__MAX_WIDGETS", "0", domain.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := config.Load(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFaceConfigStyle_Overrides(t *testing.T) {
	f := config.FaceConfig{Preset: "classic", Motion: "sweep", Schedule: "unified"}

	s, err := f.Style()

	require.NoError(t, err)
	assert.Equal(t, watchface.MotionSweep, s.Motion)
	assert.Equal(t, watchface.ScheduleUnified, s.Schedule)
	assert.InDelta(t, 1.0, s.Density, 1e-9)
}
