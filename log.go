package paperpress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogConfig captures options for configuring the package logger.
type LogConfig struct {
	Level  string    // "debug", "info", "warn", ... (default "warn")
	Output io.Writer // defaults to os.Stderr
}

var (
	logOnce sync.Once
	baseLog zerolog.Logger
)

// ConfigureLogging initialises the package logger exactly once. Library
// diagnostics go to stderr so generated output and user-facing messages
// on stdout stay clean.
func ConfigureLogging(cfg LogConfig) {
	logOnce.Do(func() {
		level := zerolog.WarnLevel
		if cfg.Level != "" {
			if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
				level = parsed
			}
		} else if env := os.Getenv("PAPERPRESS_LOG_LEVEL"); env != "" {
			if parsed, err := zerolog.ParseLevel(env); err == nil {
				level = parsed
			}
		}
		zerolog.TimeFieldFormat = time.RFC3339

		writer := cfg.Output
		if writer == nil {
			writer = os.Stderr
		}

		baseLog = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	})
}

func logger() zerolog.Logger {
	ConfigureLogging(LogConfig{})
	return baseLog
}

// componentLogger returns a child logger annotated with the component name.
func componentLogger(component string) zerolog.Logger {
	return logger().With().Str("component", component).Logger()
}
