package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds a console logger for cfg writing to out.
func New(cfg Config, out io.Writer) zerolog.Logger {
	if cfg.Bypass {
		return zerolog.Nop()
	}
	output := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    cfg.NoColor,
		TimeFormat: time.RFC3339,
	}
	if !cfg.Timestamp {
		output.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	ctx := zerolog.New(output).Level(cfg.Level).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Logger()
}

// Apply installs the logger for cfg as the global zerolog logger.
func Apply(cfg Config, out io.Writer) zerolog.Logger {
	logger := New(cfg, out)
	log.Logger = logger
	return logger
}
