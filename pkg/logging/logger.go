// Package logging configures the zerolog logger shared by the catalog packages.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs every page fetch and request.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"

	// LevelDisabled turns logging off.
	LevelDisabled LogLevel = "disabled"
)

// Levels lists the accepted level names.
var Levels = []LogLevel{LevelDebug, LevelInfo, LevelWarn, LevelError, LevelDisabled}

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger. Loggers created afterwards by
// NewLogger inherit its output.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

// ParseLevel validates a level name from configuration.
func ParseLevel(s string) (LogLevel, error) {
	level := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	if level == "warning" {
		return LevelWarn, nil
	}
	for _, l := range Levels {
		if l == level {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown log level %q", s)
}

// parseLevel converts LogLevel to zerolog.Level. Unknown names fall back to info.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Every page fetch (engine, start, items, total, exhausted)
//   - Outgoing requests (endpoint, query)
//   - Rate limit state updates while healthy
//
// Info: Normal operation events
//   - Server startup/shutdown
//
// Warn: Conditions the caller can recover from
//   - Page fetch failures (the cursor is kept, the caller may retry)
//   - Catalog error responses (4xx/5xx)
//   - Rate limit running low (requests are delayed)
//
// Error: Error conditions requiring attention
//   - Network failures
//   - Rate limit exhausted (requests are refused locally)
//   - Sources that never signal exhaustion
//
// Context Fields:
//   - component: emitting package (catalog-client, catalog, pagination, catalog-server)
//   - engine: pagination engine label (browse, search:series, ...)
//   - endpoint: catalog endpoint path
//   - status: HTTP status code
//   - error_class: error classification (client, server, rate_limit, network)
//   - remaining: rate limit budget left in the current window
