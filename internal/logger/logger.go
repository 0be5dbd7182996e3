// SPDX-License-Identifier: EPL-2.0

// Package logger builds the process logger from configuration.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSize    = 64 // MB
	defaultMaxBackups = 3
	defaultMaxAge     = 7 // days
)

var ErrInvalidLevel = errors.New("invalid log level")

// Config selects the level and optional rotating file output.
type Config struct {
	Level      string // debug, info, warn, error
	File       string // empty logs to the console only
	MaxSize    int    // MB per file
	MaxBackups int
	MaxAge     int // days
}

// ParseLevel maps a level name to a zap level. An empty name is info.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}

	return zapcore.InfoLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
}

// New builds a console logger writing to console, and additionally to a
// rotated file when cfg.File is set. The returned closer flushes the logger
// and closes the file.
func New(cfg Config, console io.Writer) (*zap.Logger, func() error, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	if console == nil {
		console = os.Stderr
	}

	output := console
	var file *lumberjack.Logger

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}

		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    positiveOr(cfg.MaxSize, defaultMaxSize),
			MaxBackups: positiveOr(cfg.MaxBackups, defaultMaxBackups),
			MaxAge:     positiveOr(cfg.MaxAge, defaultMaxAge),
			Compress:   true,
		}
		output = io.MultiWriter(console, file)
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		MessageKey:     "M",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(output)),
		level,
	)
	log := zap.New(core)

	closer := func() error {
		_ = log.Sync()
		if file != nil {
			return file.Close()
		}
		return nil
	}

	return log, closer, nil
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
