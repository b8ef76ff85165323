// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ LoggerInterface = (*Logger)(nil)

// Logger is the service wide structured logger, a thin layer over zap's sugared logger.
type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

// NewLogger creates a JSON logger at the given level, unknown levels fall back to error.
func NewLogger(l string) *Logger {
	level := zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	if parsed, err := zapcore.ParseLevel(strings.ToLower(l)); err == nil {
		level.SetLevel(parsed)
	}

	c := zap.NewProductionConfig()
	c.Level = level
	c.Encoding = "json"
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	c.EncoderConfig.TimeKey = "@timestamp"
	c.OutputPaths = []string{"stdout"}
	c.ErrorOutputPaths = []string{"stderr"}

	base, err := c.Build(zap.AddCallerSkip(0))
	if err != nil {
		panic(err)
	}

	return &Logger{
		SugaredLogger: base.Sugar(),
		security:      newSecurityLogger(base.Named("security")),
	}
}
