package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/vinum/pkg/errors"
)

// InitWarnLogger routes library warnings (for example ConvergenceWarning
// from the logistic solver) into a zerolog console writer. Warning types
// that implement zerolog.LogObjectMarshaler are logged with their
// structured fields.
func InitWarnLogger() {
	InitWarnLoggerTo(os.Stderr)
}

// InitWarnLoggerTo is InitWarnLogger with a custom destination, which
// tests use to capture output.
func InitWarnLoggerTo(w io.Writer) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	errors.SetZerologWarnFunc(func(warning error) {
		event := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event.Object("warning", obj).Msg(warning.Error())
			return
		}
		event.Msg(warning.Error())
	})
}
