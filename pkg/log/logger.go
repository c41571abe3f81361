// Package log provides structured logging for statkit pipelines.
//
// The package configures Go's standard log/slog with a JSON handler wrapped
// so that stack traces carried by cockroachdb/errors values surface as a
// plain string attribute. Warnings raised through pkg/errors can additionally
// be routed to a zerolog sink.
package log

import (
	"io"
	"log/slog"
	"os"

	"github.com/gostatlab/statkit/pkg/errors"
)

const (
	// ErrAttrKey is the attribute key for error values.
	ErrAttrKey = "error"
	// StacktraceAttrKey is the attribute key the handler writes extracted
	// stack traces under.
	StacktraceAttrKey = "stacktrace"
)

// ParseLevel maps a level name (debug, info, warn, error) to its slog level.
// Unknown names return a validation error so bad configuration surfaces as a
// rejected setting rather than a crash.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.NewValidationError("log_level",
			"must be one of debug, info, warn, error", level)
	}
}

// NewHandler builds the JSON handler used by the pipelines: level-filtered,
// source-annotated, with cockroachdb/errors stack traces lifted into the
// stacktrace attribute.
func NewHandler(w io.Writer, level slog.Level) slog.Handler {
	base := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})
	return withStackTraces(base)
}

// SetupLogger installs the statkit JSON logger as the slog default. The
// default logger is left untouched when the level name is invalid.
func SetupLogger(level string) error {
	parsed, err := ParseLevel(level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(NewHandler(os.Stdout, parsed)))
	return nil
}

// ErrAttr passes err to slog under the shared error key.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
