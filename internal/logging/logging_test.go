package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"WARN", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"WARNING", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.input))
		})
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatJSON, ParseFormat(" JSON "))
	assert.Equal(t, FormatConsole, ParseFormat("console"))
	assert.Equal(t, FormatConsole, ParseFormat("pretty"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: zapcore.WarnLevel, Format: FormatJSON, Output: &buf, Name: "glyphprompt"})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Named("registry").Warn("duplicate device identity", zap.String("identity", "Keyboard"))
	require.NoError(t, logger.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "glyphprompt.registry", entry["logger"])
	assert.Equal(t, "duplicate device identity", entry["msg"])
	assert.Equal(t, "Keyboard", entry["identity"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: zapcore.DebugLevel, Output: &buf})
	require.NoError(t, err)

	logger.Debug("resolved action", zap.String("action", "Player/Jump"))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "resolved action")
	assert.Contains(t, out, "Player/Jump")
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New(Config{Format: "xml", Output: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, zapcore.InfoLevel, cfg.Level)
	assert.Equal(t, FormatConsole, cfg.Format)
	assert.NotNil(t, cfg.Output)
}

func TestComponent(t *testing.T) {
	assert.NotNil(t, Component(nil, "tracker"))

	var buf bytes.Buffer
	logger, err := New(Config{Format: FormatJSON, Output: &buf})
	require.NoError(t, err)

	Component(logger, "tracker").Info("switched")
	require.NoError(t, logger.Sync())
	assert.Contains(t, buf.String(), `"logger":"tracker"`)
}
