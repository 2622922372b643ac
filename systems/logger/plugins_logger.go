package logger

import (
	"github.com/go-home-io/minerhub/plugins/common"
)

// System logger implementation.
type pluginLogger struct {
	systemLogger common.ILoggerProvider
	pluginFields []string
}

// ConstructPluginLogger has data required for a new system logger.
type ConstructPluginLogger struct {
	SystemLogger common.ILoggerProvider
	System       string
	Provider     string
}

// NewPluginLogger constructs a new system logger.
// It adds system type and provider name to every message
// and is passed to miners, coordinators and entities.
func NewPluginLogger(ctor *ConstructPluginLogger) common.ILoggerProvider {
	fields := []string{common.LogSystemToken, ctor.System}
	if "" != ctor.Provider {
		fields = append(fields, common.LogProviderToken, ctor.Provider)
	}

	return &pluginLogger{
		systemLogger: ctor.SystemLogger,
		pluginFields: fields,
	}
}

// Debug sends debug level message.
func (l *pluginLogger) Debug(msg string, fields ...string) {
	l.systemLogger.Debug(msg, l.with(fields)...)
}

// Info sends info level message.
func (l *pluginLogger) Info(msg string, fields ...string) {
	l.systemLogger.Info(msg, l.with(fields)...)
}

// Warn sends warning level message.
func (l *pluginLogger) Warn(msg string, fields ...string) {
	l.systemLogger.Warn(msg, l.with(fields)...)
}

// Error sends error level message.
func (l *pluginLogger) Error(msg string, err error, fields ...string) {
	l.systemLogger.Error(msg, err, l.with(fields)...)
}

// Fatal sends fatal level message.
func (l *pluginLogger) Fatal(msg string, err error, fields ...string) {
	l.systemLogger.Fatal(msg, err, l.with(fields)...)
}

// Copies fields so caller's slice is never modified.
func (l *pluginLogger) with(fields []string) []string {
	out := make([]string, 0, len(fields)+len(l.pluginFields))
	out = append(out, fields...)
	return append(out, l.pluginFields...)
}
