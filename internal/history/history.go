// Package history provides the append-only notification log.
//
// Every notification attempt, success and failure is recorded as one line of
// plain text. The log rotates to a single backup generation once it grows
// past MaxLogSize.
package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

const (
	// LogFileName is the name of the notification log in the working directory.
	LogFileName = "notification.log"
	// BackupSuffix is appended to the log path for the rotated generation.
	BackupSuffix = ".old"
	// MaxLogSize is the size in bytes above which the log is rotated.
	MaxLogSize int64 = 10 * 1024 * 1024
	// TimestampFormat is ISO-8601 in UTC with millisecond precision.
	TimestampFormat = "2006-01-02T15:04:05.000Z07:00"
)

// Level is the severity tag of a log entry.
type Level string

// Log levels written by the dispatcher.
const (
	LevelInfo     Level = "INFO"
	LevelSuccess  Level = "SUCCESS"
	LevelError    Level = "ERROR"
	LevelComplete Level = "COMPLETE"
	LevelApproval Level = "APPROVAL"
	LevelCritical Level = "CRITICAL"
)

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelInfo, LevelSuccess, LevelError, LevelComplete, LevelApproval, LevelCritical:
		return true
	default:
		return false
	}
}

// Entry is a single line of the notification log.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Title     string
	Message   string
}

// Format renders the entry as "[<timestamp>] <LEVEL>: <title> - <message>\n".
func (e Entry) Format() string {
	return fmt.Sprintf("[%s] %s: %s - %s\n", e.Timestamp.UTC().Format(TimestampFormat), e.Level, e.Title, e.Message)
}

// DefaultLogPath returns the log path inside dir.
func DefaultLogPath(dir string) string {
	return filepath.Join(dir, LogFileName)
}

// BackupPath returns the rotated generation path for logPath.
func BackupPath(logPath string) string {
	return logPath + BackupSuffix
}

var entryPattern = regexp.MustCompile(`^\[([^\]]+)\] ([A-Z]+): (.*?) - (.*)$`)

// ParseEntry parses one formatted log line (without the trailing newline).
func ParseEntry(line string) (Entry, error) {
	m := entryPattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, fmt.Errorf("malformed log line: %q", line)
	}
	ts, err := time.Parse(TimestampFormat, m[1])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp: %w", err)
	}
	level := Level(m[2])
	if !level.Valid() {
		return Entry{}, fmt.Errorf("unknown log level %q", m[2])
	}
	return Entry{Timestamp: ts, Level: level, Title: m[3], Message: m[4]}, nil
}

// ReadEntries loads all entries from a log file.
// Returns an empty slice if the file doesn't exist. Malformed lines
// (for example a message containing a newline) are skipped.
func ReadEntries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	entries := []Entry{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		entry, err := ParseEntry(scanner.Text())
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log file: %w", err)
	}
	return entries, nil
}
