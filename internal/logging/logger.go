package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/fadedpez/blackjack/internal/types"
)

// Level represents a logging level
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "debug",
	INFO:  "info",
	WARN:  "warn",
	ERROR: "error",
}

var charmLevels = map[Level]log.Level{
	DEBUG: log.DebugLevel,
	INFO:  log.InfoLevel,
	WARN:  log.WarnLevel,
	ERROR: log.ErrorLevel,
}

// String returns the lower-case name of the level
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel converts a name such as "debug" or "WARN" into a Level
func ParseLevel(name string) (Level, error) {
	for level, n := range levelNames {
		if strings.EqualFold(n, name) {
			return level, nil
		}
	}
	return INFO, fmt.Errorf("unknown log level %q", name)
}

// Logger is a leveled, structured logger. Methods take a message followed by
// key/value pairs.
type Logger struct {
	*log.Logger
	level Level
}

// NewLogger creates a logger writing to w at the given level
func NewLogger(w io.Writer, level Level) *Logger {
	return &Logger{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "2006-01-02 15:04:05.000",
			Level:           charmLevels[level],
		}),
		level: level,
	}
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() *Logger {
	return NewLogger(io.Discard, ERROR)
}

// Level returns the configured minimum level
func (l *Logger) Level() Level {
	return l.level
}

// Named returns a child logger tagged with the given component prefix
func (l *Logger) Named(component string) *Logger {
	return &Logger{
		Logger: l.Logger.WithPrefix(component),
		level:  l.level,
	}
}

// LogError logs a GameError with its code and cause as fields
func (l *Logger) LogError(err error) {
	var gameErr *types.GameError
	if types.As(err, &gameErr) {
		keyvals := []interface{}{"code", gameErr.Code, "message", gameErr.Message}
		if gameErr.Err != nil {
			keyvals = append(keyvals, "cause", gameErr.Err)
		}
		l.Error("Game error occurred", keyvals...)
		return
	}
	l.Error("Unexpected error", "error", err)
}

// Default logger instance
var Default = NewLogger(os.Stderr, INFO)
