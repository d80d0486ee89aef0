package adapters

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// SlogLevelVerbose sits below slog.LevelDebug so verbose vendor-call lines
// can be filtered separately from debug output.
const SlogLevelVerbose = slog.Level(-8)

// SlogLoggerAdapter implements LoggerAdapter on top of a structured slog.Logger.
type SlogLoggerAdapter struct {
	logger *slog.Logger
	level  LogLevel
}

var _ LoggerAdapter = (*SlogLoggerAdapter)(nil)

// NewSlogLoggerAdapter creates a JSON logger writing to w at the given level.
func NewSlogLoggerAdapter(w io.Writer, level LogLevel, tag string) *SlogLoggerAdapter {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: toSlogLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == SlogLevelVerbose {
					a.Value = slog.StringValue(string(LogLevelVerbose))
				}
			}
			return a
		},
	})
	return &SlogLoggerAdapter{
		logger: slog.New(handler).With("integration", tag),
		level:  level,
	}
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LogLevelVerbose:
		return SlogLevelVerbose
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		// NONE: above every level the adapter emits.
		return slog.LevelError + 4
	}
}

func (s *SlogLoggerAdapter) log(level slog.Level, message string, args []interface{}) {
	ctx := context.Background()
	if !s.logger.Enabled(ctx, level) {
		return
	}
	s.logger.Log(ctx, level, fmt.Sprintf(message, args...))
}

func (s *SlogLoggerAdapter) Verbose(message string, args ...interface{}) {
	s.log(SlogLevelVerbose, message, args)
}

func (s *SlogLoggerAdapter) Debug(message string, args ...interface{}) {
	s.log(slog.LevelDebug, message, args)
}

func (s *SlogLoggerAdapter) Info(message string, args ...interface{}) {
	s.log(slog.LevelInfo, message, args)
}

func (s *SlogLoggerAdapter) Warn(message string, args ...interface{}) {
	s.log(slog.LevelWarn, message, args)
}

func (s *SlogLoggerAdapter) Error(message string, args ...interface{}) {
	s.log(slog.LevelError, message, args)
}

func (s *SlogLoggerAdapter) Level() LogLevel {
	return s.level
}
