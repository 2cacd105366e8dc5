//go:build darwin

package notify

import (
	"context"
	"fmt"
	"os/exec"
)

// darwinSender implements Sender for macOS using osascript
type darwinSender struct {
	available bool
}

func newNativeSender(string) Sender {
	return &darwinSender{available: toolAvailable("osascript")}
}

// Send displays the notification with osascript and then activates
// n.Activate when set. An activation failure does not fail the send.
func (s *darwinSender) Send(ctx context.Context, n Notification) error {
	script := fmt.Sprintf(`display notification %q with title %q`, n.Message, n.Title)
	if n.Sound {
		script += ` sound name "Glass"`
	}

	if err := exec.CommandContext(ctx, "osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript: %w", err)
	}

	if n.Activate != "" {
		activate := fmt.Sprintf(`tell application %q to activate`, n.Activate)
		_ = exec.CommandContext(ctx, "osascript", "-e", activate).Run()
	}
	return nil
}

// Available returns true if osascript is available
func (s *darwinSender) Available() bool {
	return s.available
}
