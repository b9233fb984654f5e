package logger

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Prm groups logger parameters.
type Prm struct {
	// Level is a minimal severity of written records: debug, info, warn
	// or error. Empty value means info.
	Level string

	// Encoding is "console" (default) or "json".
	Encoding string

	// Timestamp forces time field in records. By default, it is written
	// only when stdout is a terminal.
	Timestamp bool
}

// New builds zap logger writing to stdout.
func New(prm Prm) (*zap.Logger, error) {
	lvl := zap.NewAtomicLevelAt(zap.InfoLevel)
	if prm.Level != "" {
		var err error
		if lvl, err = zap.ParseAtomicLevel(prm.Level); err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
	}

	c := zap.NewProductionConfig()
	c.Level = lvl
	c.Encoding = "console"
	if prm.Encoding != "" {
		c.Encoding = prm.Encoding
	}
	c.Sampling = nil
	c.OutputPaths = []string{"stdout"}
	if prm.Timestamp || term.IsTerminal(int(os.Stdout.Fd())) {
		c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		c.EncoderConfig.EncodeTime = func(time.Time, zapcore.PrimitiveArrayEncoder) {}
	}

	l, err := c.Build(
		zap.AddStacktrace(zap.NewAtomicLevelAt(zap.FatalLevel)),
	)
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	return l, nil
}
