// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package logger builds the process-wide structured logger.

Output always goes to stdout. When a file path is configured, the same entries
are teed into a size-rotated file managed by lumberjack.

Usage:

	log, flush := logger.New(logger.Options{Level: "info", JSON: true})
	defer flush()
*/
package logger

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// # Options

// Rotation configures the optional file sink.
type Rotation struct {
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Options drives [New].
type Options struct {
	// Level is one of debug, info, warn, error. Unknown values fall back to info.
	Level string
	// JSON selects the production encoder; otherwise a colored console encoder is used.
	JSON bool
	// Rotation enables the lumberjack file sink when Filename is set.
	Rotation Rotation
	// Fields are attached to every entry (e.g. app name).
	Fields []zap.Field
}

// # Construction

// New returns a configured logger and a flush function to call on shutdown.
func New(opts Options) (*zap.Logger, func()) {
	var level zapcore.Level
	if err := level.Set(opts.Level); err != nil {
		level = zapcore.InfoLevel
	}

	encoder := buildEncoder(opts.JSON)
	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}

	if opts.Rotation.Filename != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.Rotation.Filename,
			MaxSize:    atLeast(opts.Rotation.MaxSizeMB, 1),
			MaxBackups: atLeast(opts.Rotation.MaxBackups, 0),
			MaxAge:     atLeast(opts.Rotation.MaxAgeDays, 0),
			Compress:   opts.Rotation.Compress,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), level))
	}

	// Sampling keeps a hot error loop from flooding the sinks.
	core := zapcore.NewSamplerWithOptions(zapcore.NewTee(cores...), time.Second, 100, 100)

	options := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if !opts.JSON {
		options = append(options, zap.Development())
	}

	log := zap.New(core, options...).With(opts.Fields...)
	return log, func() { _ = log.Sync() }
}

func buildEncoder(json bool) zapcore.Encoder {
	if json {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "ts"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeCaller = zapcore.ShortCallerEncoder
		return zapcore.NewJSONEncoder(cfg)
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func atLeast(value, floor int) int {
	if value < floor {
		return floor
	}
	return value
}
