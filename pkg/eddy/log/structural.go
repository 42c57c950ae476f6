package log

import (
	"context"
	slogger "log/slog"
)

// Structural is a wrapper over slog.
type Structural struct{}

var loggerMap = map[Severity]func(string, ...any){
	SevUnspecified: slogger.Info,
	SevDebug:       slogger.Debug,
	SevInfo:        slogger.Info,
	SevWarn:        slogger.Warn,
	SevError:       slogger.Error,
	SevFatal:       slogger.Error,
}

// Log logs the message to the structural Go logger. For Fatal and Exit
// severities, it does not perform the exit itself, but defers to the log
// wrapper.
func (s *Structural) Log(ctx context.Context, sev Severity, _ int, msg string) {
	loggerMap[sev](msg)
}
