package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/gostatlab/statkit/pkg/errors"
)

// EnableZerologWarnings routes warnings raised through pkg/errors to a zerolog
// logger writing to w. Warning types that implement zerolog.LogObjectMarshaler
// are emitted as structured objects; anything else falls back to the error
// message. Passing nil writes to stderr.
func EnableZerologWarnings(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	logger := zerolog.New(w).With().Timestamp().Logger()

	errors.SetZerologWarnFunc(func(warning error) {
		ev := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev.Object("warning", obj).Msg("statkit warning")
			return
		}
		ev.Err(warning).Msg("statkit warning")
	})
}

// DisableZerologWarnings restores the default warning handler path.
func DisableZerologWarnings() {
	errors.SetZerologWarnFunc(nil)
}
