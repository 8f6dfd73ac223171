package logger

import (
	"strings"

	"github.com/pkg/errors"
)

// Level defines log severity. Levels are totally ordered; a message is
// emitted when its level is at or above the configured threshold.
type Level int

const (
	// TraceLevel is the most verbose level.
	TraceLevel Level = iota
	// DebugLevel enables debug logging.
	DebugLevel
	// InfoLevel enables informational logging.
	InfoLevel
	// WarnLevel enables warning logging.
	WarnLevel
	// ErrorLevel enables error logging.
	ErrorLevel
	// FatalLevel enables fatal logging. It does not exit the process.
	FatalLevel
	// OffLevel disables all output when used as a threshold.
	OffLevel
)

var levelNames = [...]string{
	TraceLevel: "TRACE",
	DebugLevel: "DEBUG",
	InfoLevel:  "INFO",
	WarnLevel:  "WARN",
	ErrorLevel: "ERROR",
	FatalLevel: "FATAL",
	OffLevel:   "OFF",
}

// String returns the upper-case level name used in formatted lines.
func (l Level) String() string {
	if l < TraceLevel || l > OffLevel {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// AllLevels returns every level a message can be logged at.
func AllLevels() []Level {
	return []Level{
		TraceLevel,
		DebugLevel,
		InfoLevel,
		WarnLevel,
		ErrorLevel,
		FatalLevel,
	}
}

// ParseLevel parses a level name. Matching is case-insensitive and
// surrounding whitespace is ignored.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TraceLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "FATAL":
		return FatalLevel, nil
	case "OFF", "NONE":
		return OffLevel, nil
	}
	return TraceLevel, errors.Errorf("unknown log level %q", s)
}
