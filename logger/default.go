package logger

import (
	"fmt"
	"sync/atomic"
)

var std atomic.Pointer[Logger]

func init() {
	std.Store(New())
}

// Default returns the process-wide Logger used by the package-level functions.
func Default() *Logger {
	return std.Load()
}

// SetDefault replaces the process-wide Logger. A nil l is ignored.
func SetDefault(l *Logger) {
	if l != nil {
		std.Store(l)
	}
}

// Init configures the default Logger.
func Init(cfg Config) {
	Default().Init(cfg)
}

// EnsureConsoleAttached attaches the default Logger's console.
func EnsureConsoleAttached() bool {
	return Default().EnsureConsoleAttached()
}

// CloseConsole detaches the default Logger's console.
func CloseConsole() {
	Default().CloseConsole()
}

// Log writes msg at level using the default Logger.
func Log(level Level, msg string) {
	Default().output(callerSkip, level, msg)
}

// Trace logs a trace message using the default Logger.
func Trace(msg string) {
	Default().output(callerSkip, TraceLevel, msg)
}

// Debug logs a debug message using the default Logger.
func Debug(msg string) {
	Default().output(callerSkip, DebugLevel, msg)
}

// Info logs an informational message using the default Logger.
func Info(msg string) {
	Default().output(callerSkip, InfoLevel, msg)
}

// Warn logs a warning message using the default Logger.
func Warn(msg string) {
	Default().output(callerSkip, WarnLevel, msg)
}

// Error logs an error message using the default Logger.
func Error(msg string) {
	Default().output(callerSkip, ErrorLevel, msg)
}

// Fatal logs a fatal message using the default Logger. The process keeps running.
func Fatal(msg string) {
	Default().output(callerSkip, FatalLevel, msg)
}

// Tracef logs a formatted trace message using the default Logger.
func Tracef(format string, v ...any) {
	Default().output(callerSkip, TraceLevel, fmt.Sprintf(format, v...))
}

// Debugf logs a formatted debug message using the default Logger.
func Debugf(format string, v ...any) {
	Default().output(callerSkip, DebugLevel, fmt.Sprintf(format, v...))
}

// Infof logs a formatted informational message using the default Logger.
func Infof(format string, v ...any) {
	Default().output(callerSkip, InfoLevel, fmt.Sprintf(format, v...))
}

// Warnf logs a formatted warning message using the default Logger.
func Warnf(format string, v ...any) {
	Default().output(callerSkip, WarnLevel, fmt.Sprintf(format, v...))
}

// Errorf logs a formatted error message using the default Logger.
func Errorf(format string, v ...any) {
	Default().output(callerSkip, ErrorLevel, fmt.Sprintf(format, v...))
}

// Fatalf logs a formatted fatal message using the default Logger. The process keeps running.
func Fatalf(format string, v ...any) {
	Default().output(callerSkip, FatalLevel, fmt.Sprintf(format, v...))
}
