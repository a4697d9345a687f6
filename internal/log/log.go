// Package log holds the process-wide zap logger. It discards everything
// unless a logger is installed with Set.
package log

import (
	"go.uber.org/zap"
)

var defaultLogger = zap.NewNop()

func Get() *zap.Logger {
	return defaultLogger
}

// Set installs l as the process-wide logger. A nil l restores the no-op logger.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	defaultLogger = l
}

func Flush() {
	_ = defaultLogger.Sync()
}
