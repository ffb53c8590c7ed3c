// ABOUTME: zap logger construction for every entry point
// ABOUTME: Production JSON output by default, optionally redirected to a file
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/harperreed/leasebook/config"
)

// New builds a logger from cfg. When toFile is set (the TUI) output goes to
// cfg.File, or leasebook.log in the data dir, so the screen stays clean.
// The returned func flushes the logger.
func New(cfg config.LogConfig, dataDir string, toFile bool) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	path := cfg.File
	if path == "" && toFile {
		path = filepath.Join(dataDir, "leasebook.log")
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		zc.OutputPaths = []string{path}
		zc.ErrorOutputPaths = []string{path}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}
