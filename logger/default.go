package logger

import "sync"

var (
	defMu     sync.RWMutex
	defLogger = NewSlog(InfoLevel, false)
)

func current() Logger {
	defMu.RLock()
	defer defMu.RUnlock()

	return defLogger
}

// SetDefault replaces the package default logger. Drivers created afterwards
// without WithLogger log through l.
func SetDefault(l Logger) {
	if l == nil {
		return
	}

	defMu.Lock()
	defLogger = l
	defMu.Unlock()
}

// GetLogger returns the package default logger.
func GetLogger() Logger {
	return current()
}

// Debug logs at debug level through the default logger.
func Debug(msg string, keysAndValues ...any) { current().Debug(msg, keysAndValues...) }

// Info logs at info level through the default logger.
func Info(msg string, keysAndValues ...any) { current().Info(msg, keysAndValues...) }

// Warn logs at warn level through the default logger.
func Warn(msg string, keysAndValues ...any) { current().Warn(msg, keysAndValues...) }

// Error logs at error level through the default logger.
func Error(msg string, keysAndValues ...any) { current().Error(msg, keysAndValues...) }

// Fatal logs at fatal level through the default logger.
func Fatal(msg string, keysAndValues ...any) { current().Fatal(msg, keysAndValues...) }

// SetLevel changes the level of the default logger.
func SetLevel(level Level) {
	current().SetLevel(level)
}

// With returns a child of the default logger carrying keyValues.
func With(keyValues ...any) Logger {
	return current().With(keyValues...)
}
