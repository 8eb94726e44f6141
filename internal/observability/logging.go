// Package observability provides the structured logger and prometheus
// metrics for egressgate.
package observability

import (
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// LogConfig configures logger construction.
type LogConfig struct {
	// Level is the minimum level: "debug", "info", "warn", "error".
	Level string

	// Format is "json" (default, for production) or "text" (development).
	Format string

	// Output defaults to os.Stderr.
	Output io.Writer

	// AddSource includes file:line in records.
	AddSource bool
}

// Redaction patterns for the two secret classes that show up in
// URL-validation logs: userinfo embedded in URLs, and query-string secrets.
var (
	urlUserinfo    = regexp.MustCompile(`://[^/@\s]+@`)
	urlQuerySecret = regexp.MustCompile(`(?i)([?&](?:token|key|secret|signature|apikey)=)[^&\s]+`)
)

// NewLogger builds a slog.Logger per the config. Unknown levels fall back to
// info; unknown formats fall back to json. URL-embedded credentials are
// scrubbed from string attribute values before they reach the handler.
func NewLogger(config LogConfig) *slog.Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	var level slog.Level
	switch strings.ToLower(config.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:       level,
		AddSource:   config.AddSource,
		ReplaceAttr: redactAttr,
	}

	var handler slog.Handler
	if strings.ToLower(config.Format) == "text" {
		handler = slog.NewTextHandler(config.Output, opts)
	} else {
		handler = slog.NewJSONHandler(config.Output, opts)
	}
	return slog.New(handler)
}

func redactAttr(groups []string, attr slog.Attr) slog.Attr {
	if attr.Value.Kind() != slog.KindString {
		return attr
	}
	attr.Value = slog.StringValue(Redact(attr.Value.String()))
	return attr
}

// Redact scrubs URL credentials from a string.
func Redact(value string) string {
	value = urlUserinfo.ReplaceAllString(value, "://[REDACTED]@")
	value = urlQuerySecret.ReplaceAllString(value, "${1}[REDACTED]")
	return value
}
