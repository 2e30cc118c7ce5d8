package main

import (
	"io"

	"github.com/osse101/MixOptimizer_Go/internal/config"
	"github.com/osse101/MixOptimizer_Go/internal/logger"
)

// initLogger points the default logger at w using the app configuration.
// Command output goes to stdout, so logs go to stderr.
func initLogger(cfg *config.Config, w io.Writer) {
	logger.InitLoggerWithWriter(cfg.LoggerConfig(), w)
}
