package logger

import (
	"strings"
	"sync"
)

// Log levels accepted by the log_level config key.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process-wide logger. The first call fixes the level;
// later calls return the same instance regardless of level.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = New(level)
	})
	return globalLogger
}

// New builds a standalone logger, mainly for the simulator and tests.
func New(level string) *Logger {
	return newZapLogger(normalizeLevel(level))
}

func normalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}
