// Package logging builds the zap loggers used across glyphprompt.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the log encoding.
type Format string

const (
	// FormatConsole is human readable, one line per entry.
	FormatConsole Format = "console"
	// FormatJSON is one JSON object per entry.
	FormatJSON Format = "json"
)

// ParseFormat parses a format name. Unknown names yield FormatConsole.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatConsole
}

// ParseLogLevel parses a level name. Unknown names yield info.
func ParseLogLevel(s string) zapcore.Level {
	switch s {
	case "debug", "DEBUG":
		return zapcore.DebugLevel
	case "info", "INFO":
		return zapcore.InfoLevel
	case "warn", "WARN", "warning", "WARNING":
		return zapcore.WarnLevel
	case "error", "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Config configures a logger.
type Config struct {
	// Level is the minimum level to output.
	Level zapcore.Level
	// Format is the output encoding.
	Format Format
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Name is the root logger name.
	Name string
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  zapcore.InfoLevel,
		Format: FormatConsole,
		Output: os.Stderr,
		Name:   "glyphprompt",
	}
}

// New builds a logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	var encoder zapcore.Encoder
	switch cfg.Format {
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case FormatConsole, "":
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(ec)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(cfg.Output), zap.NewAtomicLevelAt(cfg.Level))
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if cfg.Name != "" {
		logger = logger.Named(cfg.Name)
	}
	return logger, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// Component returns l named after a component, or a no-op logger when l is
// nil.
func Component(l *zap.Logger, name string) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.Named(name)
}
