package errors

import (
	"fmt"
	"runtime"
)

// NotificationsDisabled is returned when the master switch or the Notify
// tool toggle is off and a caller explicitly requested a notification.
func NotificationsDisabled() *NotifyError {
	return New(Disabled,
		"Notifications are disabled in configuration",
		`Set "enabled": true in config.json`,
		`Set "tools": {"Notify": true} in config.json`,
	)
}

// MissingTitleOrMessage is returned when an inbound event lacks a title or message.
func MissingTitleOrMessage() *NotifyError {
	return New(InvalidParams, "Both title and message are required")
}

// InvalidArguments is returned when an inbound event cannot be decoded.
func InvalidArguments(cause error) *NotifyError {
	err := New(InvalidParams, fmt.Sprintf("invalid arguments: %v", cause))
	err.Err = cause
	return err
}

// PlatformNotSupported is returned when no notification backend is available.
func PlatformNotSupported() *NotifyError {
	return New(PlatformUnsupported,
		fmt.Sprintf("desktop notifications are not supported on %s", runtime.GOOS),
		`Try "backend": "beeep" in config.json`,
		"Install notify-send (libnotify) on Linux",
	)
}

// NotificationFailed wraps a backend failure for the primary notification.
func NotificationFailed(cause error) *NotifyError {
	return NewBackendError(fmt.Sprintf("Failed to send notification: %v", cause), cause)
}
