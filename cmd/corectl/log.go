package main

import (
	"path/filepath"

	"github.com/btcsuite/btclog/v2"
	"github.com/lightningnetwork/corerpc/build"
	"github.com/lightningnetwork/corerpc/corecfg"
	"github.com/lightningnetwork/corerpc/corerpc"
	"github.com/lightningnetwork/corerpc/monitoring"
	"github.com/lightningnetwork/corerpc/rpcauth"
	"github.com/lightningnetwork/corerpc/transport"
)

// Subsystem is the logging subsystem of the command itself.
const Subsystem = "CCLI"

// logFilename is the name of the rotated log file under logdir.
const logFilename = "corectl.log"

// log is the command's own logger. It stays disabled until setupLogging has
// run.
var log = btclog.Disabled

// addSubLogger creates a logger for subsystem from root and hands it to each
// of the given UseLogger functions.
func addSubLogger(root *build.SubLoggerManager, subsystem string,
	useLoggers ...func(btclog.Logger)) {

	logger := root.GenSubLogger(subsystem)
	for _, useLogger := range useLoggers {
		useLogger(logger)
	}
}

// setupLoggers wires every package's logger to root.
func setupLoggers(root *build.SubLoggerManager) {
	addSubLogger(root, Subsystem, func(l btclog.Logger) {
		log = l
	})
	addSubLogger(root, corerpc.Subsystem, corerpc.UseLogger)
	addSubLogger(root, transport.Subsystem, transport.UseLogger)
	addSubLogger(root, rpcauth.Subsystem, rpcauth.UseLogger)
	addSubLogger(root, monitoring.Subsystem, monitoring.UseLogger)
}

// setupLogging starts the console logger and, if a log directory is set, the
// rotated log file. The returned function closes the log file.
func setupLogging(cfg *corecfg.Config) (func(), error) {
	var rotator *build.RotatingLogWriter
	if cfg.LogDir != "" {
		rotator = build.NewRotatingLogWriter()
		logFile := filepath.Join(cfg.LogDir, logFilename)
		err := rotator.InitLogRotator(cfg.LogConfig.File, logFile)
		if err != nil {
			return nil, err
		}
	}

	root := build.NewSubLoggerManager(
		build.NewDefaultLoggers(cfg.LogConfig, rotator)...,
	)
	setupLoggers(root)

	err := build.ParseAndSetDebugLevels(cfg.DebugLevel, root)
	if err != nil {
		if rotator != nil {
			_ = rotator.Close()
		}

		return nil, err
	}

	return func() {
		if rotator != nil {
			_ = rotator.Close()
		}
	}, nil
}
