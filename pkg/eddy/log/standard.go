package log

import (
	"context"
	"fmt"
	stdlog "log"
)

// Standard is a wrapper over the standard Go logger.
type Standard struct{}

// Log logs the message to the standard Go logger. For Fatal and Exit
// severities, it does not perform the exit itself, but defers to the log
// wrapper.
func (s *Standard) Log(_ context.Context, sev Severity, calldepth int, msg string) {
	stdlog.Output(calldepth+1, fmt.Sprintf("%v %v", sevPrefix(sev), msg))
}

func sevPrefix(sev Severity) string {
	switch sev {
	case SevDebug:
		return "DEBUG"
	case SevInfo:
		return "INFO"
	case SevWarn:
		return "WARN"
	case SevError:
		return "ERROR"
	case SevFatal:
		return "FATAL"
	default:
		return "LOG"
	}
}
