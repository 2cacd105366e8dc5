//go:build linux

package notify

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsService   = "org.freedesktop.Notifications"
	notificationsPath      = "/org/freedesktop/Notifications"
	notificationsNotify    = "org.freedesktop.Notifications.Notify"
	defaultLinuxSoundName  = "message-new-instant"
	defaultExpireTimeoutMs = int32(-1)
)

// linuxSender implements Sender for Linux over the session bus, with
// notify-send as a fallback when the bus is unreachable.
type linuxSender struct {
	appName    string
	notifySend bool
	sessionBus func() (*dbus.Conn, error)
}

func newNativeSender(appName string) Sender {
	return &linuxSender{
		appName:    appName,
		notifySend: toolAvailable("notify-send"),
		sessionBus: dbus.SessionBus,
	}
}

// hasDisplay checks if a display environment is available
func hasDisplay() bool {
	// Check for X11 display
	if os.Getenv("DISPLAY") != "" {
		return true
	}
	// Check for Wayland display
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return true
	}
	return os.Getenv("DBUS_SESSION_BUS_ADDRESS") != ""
}

func (s *linuxSender) Send(ctx context.Context, n Notification) error {
	busErr := s.sendDBus(ctx, n)
	if busErr == nil {
		return nil
	}
	if !s.notifySend {
		return busErr
	}
	if err := s.sendNotifySend(ctx, n); err != nil {
		return fmt.Errorf("%v; notify-send: %w", busErr, err)
	}
	return nil
}

// sendDBus calls org.freedesktop.Notifications.Notify on the shared session bus.
func (s *linuxSender) sendDBus(ctx context.Context, n Notification) error {
	conn, err := s.sessionBus()
	if err != nil {
		return fmt.Errorf("connecting to session bus: %w", err)
	}
	// The session bus connection is shared, so it is not closed here.

	hints := map[string]dbus.Variant{}
	if n.Sound {
		hints["sound-name"] = dbus.MakeVariant(defaultLinuxSoundName)
	}

	obj := conn.Object(notificationsService, dbus.ObjectPath(notificationsPath))
	call := obj.CallWithContext(ctx, notificationsNotify, 0,
		n.AppName, uint32(0), "", n.Title, n.Message, []string{}, hints, defaultExpireTimeoutMs)
	if call.Err != nil {
		return fmt.Errorf("dbus notify: %w", call.Err)
	}
	return nil
}

func (s *linuxSender) sendNotifySend(ctx context.Context, n Notification) error {
	args := []string{"-a", n.AppName}
	if n.Sound {
		args = append(args, "-h", "string:sound-name:"+defaultLinuxSoundName)
	}
	args = append(args, n.Title, n.Message)
	return exec.CommandContext(ctx, "notify-send", args...).Run()
}

// Available returns true if a desktop session is present
func (s *linuxSender) Available() bool {
	return hasDisplay()
}
