package adapters

import (
	"fmt"
	"strings"
)

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelVerbose LogLevel = "VERBOSE"
	LogLevelDebug   LogLevel = "DEBUG"
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarn    LogLevel = "WARN"
	LogLevelError   LogLevel = "ERROR"
	LogLevelNone    LogLevel = "NONE"
)

// levelDetail orders levels from least to most detailed.
var levelDetail = map[LogLevel]int{
	LogLevelNone:    0,
	LogLevelError:   1,
	LogLevelWarn:    2,
	LogLevelInfo:    3,
	LogLevelDebug:   4,
	LogLevelVerbose: 5,
}

// AtLeast reports whether l is at least as detailed as other.
// Unknown levels are treated as NONE.
func (l LogLevel) AtLeast(other LogLevel) bool {
	return levelDetail[l] >= levelDetail[other]
}

// ParseLogLevel parses a level name case-insensitively.
func ParseLogLevel(s string) (LogLevel, error) {
	level := LogLevel(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelDetail[level]; !ok {
		return "", fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// LoggerAdapter is an interface for logging.
// Implement this interface to use custom loggers.
type LoggerAdapter interface {
	// Verbose logs a message describing a single vendor call
	Verbose(message string, args ...interface{})
	// Debug logs a debug message
	Debug(message string, args ...interface{})
	// Info logs an info message
	Info(message string, args ...interface{})
	// Warn logs a warning message
	Warn(message string, args ...interface{})
	// Error logs an error message
	Error(message string, args ...interface{})
	// Level returns the configured level
	Level() LogLevel
}
