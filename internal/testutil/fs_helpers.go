package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/notify-agent/notify-agent-mcp/internal/config"
	"github.com/notify-agent/notify-agent-mcp/internal/history"
)

// WriteConfig writes content as config.json inside dir.
func WriteConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := config.Path(dir)
	WriteFile(t, path, content)
	return path
}

// WriteFile writes content to a file, creating parent directories if needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads file content, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}

	return string(content)
}

// LogEntries returns the parsed notification log entries inside dir.
func LogEntries(t *testing.T, dir string) []history.Entry {
	t.Helper()

	entries, err := history.ReadEntries(history.DefaultLogPath(dir))
	if err != nil {
		t.Fatalf("failed to read notification log in %s: %v", dir, err)
	}
	return entries
}

// LogLevels returns the level of every notification log entry inside dir.
func LogLevels(t *testing.T, dir string) []history.Level {
	t.Helper()

	entries := LogEntries(t, dir)
	levels := make([]history.Level, len(entries))
	for i, e := range entries {
		levels[i] = e.Level
	}
	return levels
}

// notifyEnvVars lists environment variables that change configuration loading.
var notifyEnvVars = []string{
	"NOTIFY_AGENT_MCP_ENABLED",
	"NOTIFY_AGENT_MCP_TITLEPREFIX",
	"NOTIFY_AGENT_MCP_TITLE_PREFIX",
	"NOTIFY_AGENT_MCP_TOOLS__NOTIFY",
	"NOTIFY_AGENT_MCP_POLICY",
	"NOTIFY_AGENT_MCP_BACKEND",
}

// ClearNotifyEnv unsets configuration environment variables for the test.
// Tests calling it cannot use t.Parallel().
func ClearNotifyEnv(t *testing.T) {
	t.Helper()

	for _, v := range notifyEnvVars {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}
