package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aelexs/watchface/internal/observability"
	"github.com/stretchr/testify/assert"
)

func TestRedactingHandler(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		value        string
		shouldRedact bool
	}{
		{"api_key is redacted", "api_key", "secret123", true},
		{"password is redacted", "password", "mysecret", true},
		{"db_password is redacted", "db_password", "dbpass", true},
		{"auth_token is redacted", "auth_token", "token123", true},
		{"jwt_secret is redacted", "jwt_secret", "jwtsec", true},
		{"authorization is redacted", "authorization", "Bearer xyz", true},
		{"AWS_SECRET_ACCESS_KEY is redacted", "aws_secret_access_key", "AKIA...", true},
		{"session cookie is redacted", "cookie", "sid=abc", true},
		{"widget_id not redacted", "widget_id", "w-123", false},
		{"preset not redacted", "preset", "strap", false},
		{"message not redacted", "message", "hello world", false},
		{"error not redacted", "error", "something failed", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := observability.NewRedactingHandler(&buf, nil)
			logger := slog.New(handler)

			logger.Info("test", tt.key, tt.value)
			output := buf.String()

			if tt.shouldRedact {
				assert.Contains(t, output, "[REDACTED]", "expected %s to be redacted", tt.key)
				assert.NotContains(t, output, tt.value, "expected actual value to not appear for %s", tt.key)
			} else {
				assert.Contains(t, output, tt.value, "expected %s value to appear", tt.key)
				assert.NotContains(t, output, "[REDACTED]", "expected %s to not be redacted", tt.key)
			}
		})
	}
}

func TestInitLogger(t *testing.T) {
	t.Run("creates logger with service context", func(t *testing.T) {
		cfg := observability.LogConfig{
			Level:       "info",
			Format:      "json",
			ServiceName: "test-service",
			Environment: "test",
		}

		logger := observability.InitLogger(cfg)
		assert.NotNil(t, logger)
	})

	t.Run("respects log level", func(t *testing.T) {
		cfg := observability.LogConfig{
			Level:       "error",
			Format:      "json",
			ServiceName: "test-service",
			Environment: "test",
		}

		_ = observability.InitLogger(cfg)
		// Logger is set as default, but we can't easily test level filtering
		// without more complex setup. The important thing is it doesn't panic.
	})

	t.Run("writes to the configured output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := observability.InitLogger(observability.LogConfig{
			Level:       "debug",
			Format:      "text",
			ServiceName: "watchface",
			Environment: "test",
			Output:      &buf,
		})

		logger.Debug("mounted", "preset", "strap")

		assert.Contains(t, buf.String(), "msg=mounted")
		assert.Contains(t, buf.String(), "service=watchface")
		assert.Contains(t, buf.String(), "preset=strap")
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, observability.ParseLevel(tt.in))
		})
	}
}

func TestDiscard(t *testing.T) {
	logger := observability.Discard()

	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
