package core

import (
	"fmt"
	"log"
	"time"
)

// MaxLogEntries bounds the entries held between two drains
const MaxLogEntries = 32

// LogLevel is the severity of a program log entry
type LogLevel uint8

const (
	LevelNormal LogLevel = iota
	LevelWarning
	LevelError
	LevelSuccess
	LevelDebug
)

func (l LogLevel) String() string {
	switch l {
	case LevelNormal:
		return "INFO"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelSuccess:
		return "OK"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// LogEntry is one message handed to the log panel
type LogEntry struct {
	Message string
	Level   LogLevel
	Time    time.Time
}

// Log collects entries produced during lowering and interpretation.
// The renderer drains it once per frame. Every entry is mirrored to the
// process logger.
type Log struct {
	entries []LogEntry
	dropped int
	now     func() time.Time
}

// NewLog creates an empty log
func NewLog() *Log {
	return &Log{
		entries: make([]LogEntry, 0, MaxLogEntries),
		now:     time.Now,
	}
}

// Add appends an entry. Once MaxLogEntries-1 entries are pending the last
// slot is taken by a capacity warning and later entries are dropped until
// the next Drain.
func (l *Log) Add(level LogLevel, msg string) {
	log.Printf("[%s] %s", level, msg)

	if len(l.entries) >= MaxLogEntries {
		l.dropped++
		return
	}
	if len(l.entries) == MaxLogEntries-1 {
		l.dropped++
		l.entries = append(l.entries, LogEntry{
			Message: "Log capacity reached, further messages dropped",
			Level:   LevelWarning,
			Time:    l.now(),
		})
		return
	}
	l.entries = append(l.entries, LogEntry{Message: msg, Level: level, Time: l.now()})
}

// Addf formats and appends an entry
func (l *Log) Addf(level LogLevel, format string, args ...any) {
	l.Add(level, fmt.Sprintf(format, args...))
}

// Error appends an error-level entry from err
func (l *Log) Error(err error) {
	l.Add(LevelError, err.Error())
}

// Warn appends a warning-level entry from err
func (l *Log) Warn(err error) {
	l.Add(LevelWarning, err.Error())
}

// Entries returns pending entries without clearing them
func (l *Log) Entries() []LogEntry {
	return l.entries
}

// Len returns the number of pending entries
func (l *Log) Len() int {
	return len(l.entries)
}

// Dropped returns how many entries were discarded since the last drain
func (l *Log) Dropped() int {
	return l.dropped
}

// Drain returns pending entries and resets the log
func (l *Log) Drain() []LogEntry {
	out := l.entries
	l.entries = make([]LogEntry, 0, MaxLogEntries)
	l.dropped = 0
	return out
}

// HasLevel reports whether any pending entry has the given level
func (l *Log) HasLevel(level LogLevel) bool {
	for _, e := range l.entries {
		if e.Level == level {
			return true
		}
	}
	return false
}
