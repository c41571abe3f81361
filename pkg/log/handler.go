package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// stackHandler scans a record's attributes for error values and, when one
// carries a cockroachdb/errors stack trace, republishes the trace as a
// string attribute so JSON consumers see it without unwrapping.
type stackHandler struct {
	next slog.Handler
}

func withStackTraces(next slog.Handler) slog.Handler {
	return &stackHandler{next: next}
}

func (h *stackHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l)
}

func (h *stackHandler) Handle(ctx context.Context, r slog.Record) error {
	var trace string
	r.Attrs(func(attr slog.Attr) bool {
		err, ok := attr.Value.Any().(error)
		if !ok {
			return true
		}
		trace = stackTrace(err)
		// Keep scanning if this error carried no trace.
		return trace == ""
	})
	if trace != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, trace))
	}
	return h.next.Handle(ctx, r)
}

func (h *stackHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &stackHandler{next: h.next.WithAttrs(attrs)}
}

func (h *stackHandler) WithGroup(g string) slog.Handler {
	return &stackHandler{next: h.next.WithGroup(g)}
}

func stackTrace(err error) string {
	details := errors.GetSafeDetails(err).SafeDetails
	if len(details) > 0 {
		return details[0]
	}
	return ""
}
