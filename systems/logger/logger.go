// Package logger provides minerhub loggers.
package logger

import (
	"strings"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/pkg/errors"
)

// Level describes logging verbosity.
type Level int

const (
	// LevelDebug prints everything.
	LevelDebug Level = iota
	// LevelInfo skips debug messages.
	LevelInfo
	// LevelWarn prints only warnings and errors.
	LevelWarn
	// LevelError prints only errors.
	LevelError
)

// LevelString parses logging level.
func LevelString(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}

	return LevelInfo, errors.Errorf("unknown log level %s", s)
}

// Logger provider wrapper implementation.
type provider struct {
	logger common.ILoggerProvider
	level  Level
	hubID  string
}

// ConstructLogger has data required for a new logger.
type ConstructLogger struct {
	Level  Level
	Target common.ILoggerProvider
	HubID  string
}

// NewLoggerProvider constructs a new leveled logger.
// Target receives every message passing the level filter with the hub ID attached.
func NewLoggerProvider(ctor *ConstructLogger) common.ILoggerProvider {
	target := ctor.Target
	if nil == target {
		target = NewConsoleLogger()
	}

	return &provider{
		logger: target,
		level:  ctor.Level,
		hubID:  ctor.HubID,
	}
}

// Debug sends debug level message.
func (p *provider) Debug(msg string, fields ...string) {
	if p.level > LevelDebug {
		return
	}

	p.logger.Debug(msg, p.prepareFields(fields...)...)
}

// Info sends info level message.
func (p *provider) Info(msg string, fields ...string) {
	if p.level > LevelInfo {
		return
	}

	p.logger.Info(msg, p.prepareFields(fields...)...)
}

// Warn sends warning level message.
func (p *provider) Warn(msg string, fields ...string) {
	if p.level > LevelWarn {
		return
	}

	p.logger.Warn(msg, p.prepareFields(fields...)...)
}

// Error sends error level message.
func (p *provider) Error(msg string, err error, fields ...string) {
	p.logger.Error(msg, err, p.prepareFields(fields...)...)
}

// Fatal sends fatal level message.
func (p *provider) Fatal(msg string, err error, fields ...string) {
	p.logger.Fatal(msg, err, p.prepareFields(fields...)...)
}

// Extending logger fields with current hub ID.
func (p *provider) prepareFields(fields ...string) []string {
	if "" == p.hubID {
		return fields
	}

	return append(fields, common.LogHubToken, p.hubID)
}
