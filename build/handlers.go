package build

import (
	"os"

	"github.com/btcsuite/btclog/v2"
)

// NewDefaultLoggers returns the console handler and, if a rotator is given,
// the rotating log file handler. Disabled loggers are left out, so the result
// may be empty.
func NewDefaultLoggers(cfg *LogConfig,
	rotator *RotatingLogWriter) []btclog.Handler {

	var handlers []btclog.Handler
	if !cfg.Console.Disable {
		consoleOpts := cfg.Console.HandlerOptions()
		if cfg.Console.Style {
			consoleOpts = append(
				consoleOpts, btclog.WithStyledOutput(),
			)
		}

		handlers = append(handlers, btclog.NewDefaultHandler(
			os.Stderr, consoleOpts...,
		))
	}

	if rotator != nil && !cfg.File.Disable {
		handlers = append(handlers, btclog.NewDefaultHandler(
			rotator, cfg.File.HandlerOptions()...,
		))
	}

	return handlers
}
