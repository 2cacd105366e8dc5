package notify

import (
	"context"
	"os/exec"
	"runtime"
	"strings"

	"github.com/notify-agent/notify-agent-mcp/internal/config"
)

// Sender delivers a notification to the desktop.
type Sender interface {
	// Send blocks until the backend has accepted or rejected the notification
	Send(ctx context.Context, n Notification) error

	// Available reports whether this backend can work on the current machine
	Available() bool
}

// NewSender returns the sender for the given backend kind. Unknown kinds
// use the native platform sender. The native sender for an unsupported
// platform reports Available() == false.
func NewSender(kind, appName string) Sender {
	if kind == config.BackendBeeep {
		return newBeeepSender(appName)
	}
	return newNativeSender(appName)
}

// Platform returns the current operating system name
func Platform() string {
	return runtime.GOOS
}

// toolAvailable checks if a command-line tool is available in PATH
func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// noopSender is a sender that does nothing (for unsupported platforms)
type noopSender struct{}

func (noopSender) Send(context.Context, Notification) error { return nil }
func (noopSender) Available() bool                          { return false }

// escapeForPowerShell quotes s for a single-quoted PowerShell string literal.
// Only the quote itself is special there; $ and ` are already literal.
func escapeForPowerShell(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
