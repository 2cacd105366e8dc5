// Package history_test tests log entry formatting and parsing.
// Related: internal/history/history.go
// Tags: history, log, format, parse
package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_Format(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)
	tests := map[string]struct {
		entry Entry
		want  string
	}{
		"info attempt": {
			entry: Entry{Timestamp: ts, Level: LevelInfo, Title: "[Agent] Build", Message: "Done"},
			want:  "[2025-03-14T09:26:53.589Z] INFO: [Agent] Build - Done\n",
		},
		"critical": {
			entry: Entry{Timestamp: ts, Level: LevelCritical, Title: "Error Notification Failed", Message: "exit status 1"},
			want:  "[2025-03-14T09:26:53.589Z] CRITICAL: Error Notification Failed - exit status 1\n",
		},
		"non-utc timestamp is normalized": {
			entry: Entry{Timestamp: ts.In(time.FixedZone("CET", 3600)), Level: LevelSuccess, Title: "T", Message: "M"},
			want:  "[2025-03-14T09:26:53.589Z] SUCCESS: T - M\n",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.entry.Format())
		})
	}
}

func TestParseEntry(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		line    string
		want    Entry
		wantErr bool
	}{
		"approval entry": {
			line: "[2025-03-14T09:26:53.589Z] APPROVAL: [Agent] [APPROVAL REQUIRED] Deploy - ok?",
			want: Entry{
				Timestamp: time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC),
				Level:     LevelApproval,
				Title:     "[Agent] [APPROVAL REQUIRED] Deploy",
				Message:   "ok?",
			},
		},
		"message containing separator": {
			line: "[2025-03-14T09:26:53.589Z] INFO: T - a - b",
			want: Entry{
				Timestamp: time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC),
				Level:     LevelInfo,
				Title:     "T",
				Message:   "a - b",
			},
		},
		"garbage": {
			line:    "not a log line",
			wantErr: true,
		},
		"bad timestamp": {
			line:    "[yesterday] INFO: T - M",
			wantErr: true,
		},
		"unknown level": {
			line:    "[2025-03-14T09:26:53.589Z] WARN: T - M",
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseEntry(tc.line)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Timestamp.Equal(got.Timestamp))
			assert.Equal(t, tc.want.Level, got.Level)
			assert.Equal(t, tc.want.Title, got.Title)
			assert.Equal(t, tc.want.Message, got.Message)
		})
	}
}

func TestLevel_Valid(t *testing.T) {
	t.Parallel()

	for _, l := range []Level{LevelInfo, LevelSuccess, LevelError, LevelComplete, LevelApproval, LevelCritical} {
		assert.True(t, l.Valid(), string(l))
	}
	assert.False(t, Level("WARN").Valid())
}

func TestReadEntries(t *testing.T) {
	t.Parallel()

	t.Run("missing file returns empty", func(t *testing.T) {
		t.Parallel()
		entries, err := ReadEntries(filepath.Join(t.TempDir(), "absent.log"))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("skips malformed lines", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), LogFileName)
		content := "[2025-03-14T09:26:53.589Z] INFO: T - M\n" +
			"continuation of a multi-line message\n" +
			"[2025-03-14T09:26:54.000Z] SUCCESS: T - sent\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		entries, err := ReadEntries(path)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, LevelInfo, entries[0].Level)
		assert.Equal(t, LevelSuccess, entries[1].Level)
	})
}

func TestPaths(t *testing.T) {
	t.Parallel()
	assert.Equal(t, filepath.Join("/work", "notification.log"), DefaultLogPath("/work"))
	assert.Equal(t, "/work/notification.log.old", BackupPath("/work/notification.log"))
}
