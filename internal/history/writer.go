package history

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Writer appends entries to the notification log and rotates it by size.
// Append never fails from the caller's point of view: logging problems are
// reported on the diagnostic logger only.
type Writer struct {
	// Path is the live log file.
	Path string
	// MaxSize is the rotation threshold in bytes.
	MaxSize int64

	log zerolog.Logger
	now func() time.Time

	// mu guards the append -> stat -> rotate sequence.
	mu sync.Mutex
}

// NewWriter creates a writer for path and makes sure the file exists.
func NewWriter(path string, log zerolog.Logger) *Writer {
	w := &Writer{
		Path:    path,
		MaxSize: MaxLogSize,
		log:     log,
		now:     time.Now,
	}
	w.ensureFile()
	return w
}

func (w *Writer) ensureFile() {
	if _, err := os.Stat(w.Path); err == nil {
		return
	}
	f, err := os.OpenFile(w.Path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		w.log.Warn().Err(err).Str("path", w.Path).Msg("failed to create log file")
		return
	}
	_ = f.Close()
}

// Append writes a new entry stamped with the current time.
func (w *Writer) Append(level Level, title, message string) {
	w.LogEntry(Entry{
		Timestamp: w.now(),
		Level:     level,
		Title:     title,
		Message:   message,
	})
}

// LogEntry writes entry to the log and rotates if the threshold is crossed.
// Errors are non-fatal: they are logged and never returned.
func (w *Writer) LogEntry(entry Entry) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.logEntryInternal(entry); err != nil {
		w.log.Error().Err(err).Str("path", w.Path).Msg("failed to write to log file")
	}
}

func (w *Writer) logEntryInternal(entry Entry) error {
	f, err := os.OpenFile(w.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	if _, err := f.WriteString(entry.Format()); err != nil {
		_ = f.Close()
		return fmt.Errorf("appending entry: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing log file: %w", err)
	}

	info, err := os.Stat(w.Path)
	if err != nil {
		return fmt.Errorf("checking log size: %w", err)
	}
	if info.Size() > w.MaxSize {
		if err := w.rotate(); err != nil {
			w.log.Error().Err(err).Str("path", w.Path).Msg("failed to rotate log file")
			return nil
		}
		w.log.Debug().Str("path", w.Path).Int64("size", info.Size()).Msg("log rotated")
	}
	return nil
}

// rotate replaces any previous backup with the current log and starts a
// fresh, empty log file.
func (w *Writer) rotate() error {
	backupPath := BackupPath(w.Path)

	if err := os.Remove(backupPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing old backup: %w", err)
	}
	if err := os.Rename(w.Path, backupPath); err != nil {
		return fmt.Errorf("renaming log to backup: %w", err)
	}
	if err := os.WriteFile(w.Path, nil, 0o644); err != nil {
		return fmt.Errorf("creating fresh log file: %w", err)
	}
	return nil
}

// Size returns the current size of the live log, or 0 if it doesn't exist.
func (w *Writer) Size() int64 {
	info, err := os.Stat(w.Path)
	if err != nil {
		return 0
	}
	return info.Size()
}
