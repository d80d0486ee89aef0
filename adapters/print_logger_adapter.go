package adapters

import (
	"log"
)

// PrintLoggerAdapter implements LoggerAdapter using standard log package
type PrintLoggerAdapter struct {
	level LogLevel
	tag   string
}

// NewPrintLoggerAdapter creates a new print logger with the specified level
func NewPrintLoggerAdapter(level LogLevel) *PrintLoggerAdapter {
	return &PrintLoggerAdapter{level: level, tag: "Localytics"}
}

// WithTag returns a copy of the logger that prefixes messages with tag.
func (p *PrintLoggerAdapter) WithTag(tag string) *PrintLoggerAdapter {
	return &PrintLoggerAdapter{level: p.level, tag: tag}
}

func (p *PrintLoggerAdapter) shouldLog(level LogLevel) bool {
	return level != LogLevelNone && p.level.AtLeast(level)
}

func (p *PrintLoggerAdapter) print(level LogLevel, message string, args []interface{}) {
	if p.shouldLog(level) {
		log.Printf("["+string(level)+"] ["+p.tag+"] "+message, args...)
	}
}

func (p *PrintLoggerAdapter) Verbose(message string, args ...interface{}) {
	p.print(LogLevelVerbose, message, args)
}

func (p *PrintLoggerAdapter) Debug(message string, args ...interface{}) {
	p.print(LogLevelDebug, message, args)
}

func (p *PrintLoggerAdapter) Info(message string, args ...interface{}) {
	p.print(LogLevelInfo, message, args)
}

func (p *PrintLoggerAdapter) Warn(message string, args ...interface{}) {
	p.print(LogLevelWarn, message, args)
}

func (p *PrintLoggerAdapter) Error(message string, args ...interface{}) {
	p.print(LogLevelError, message, args)
}

func (p *PrintLoggerAdapter) Level() LogLevel {
	return p.level
}
