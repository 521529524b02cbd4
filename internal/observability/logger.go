package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Verbose bool
	Quiet   bool
	JSON    bool
	Out     io.Writer // defaults to os.Stderr
}

// NewLogger builds the process logger and installs it as the global zerolog logger.
func NewLogger(app string, opts Options) zerolog.Logger {
	if opts.Quiet {
		logger := zerolog.Nop()
		log.Logger = logger
		return logger
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if !opts.JSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(out).Level(level).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
