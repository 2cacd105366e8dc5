package notify

import (
	notifyerrors "github.com/notify-agent/notify-agent-mcp/internal/errors"
)

// Event is a single inbound request to consider sending a notification.
// Optional flags default to false.
type Event struct {
	Title            string `json:"title"`
	Message          string `json:"message"`
	ApprovalRequired bool   `json:"approvalRequired,omitempty"`
	Completed        bool   `json:"completed,omitempty"`
}

// Validate rejects events without a title or a message.
func (e Event) Validate() error {
	if e.Title == "" || e.Message == "" {
		return notifyerrors.MissingTitleOrMessage()
	}
	return nil
}

// Notification is a single backend call.
type Notification struct {
	// Title is the already prefixed notification title
	Title string

	// Message is the notification body text
	Message string

	// Sound requests an audible alert alongside the notification
	Sound bool

	// Wait asks the backend to block until the user dismisses the notification
	Wait bool

	// AppName is reported to the notification center where supported
	AppName string

	// Activate names an application to bring to the foreground afterwards (macOS)
	Activate string
}

// NewNotification creates a Notification with sound on and wait off.
func NewNotification(title, message string) Notification {
	return Notification{
		Title:   title,
		Message: message,
		Sound:   true,
		Wait:    false,
	}
}

// Result reports which category notifications were delivered for an event.
type Result struct {
	Primary          bool `json:"primary"`
	ApprovalRequired bool `json:"approvalRequired"`
	ResponseComplete bool `json:"responseComplete"`
}

// Sent reports whether the primary notification went out.
func (r Result) Sent() bool {
	return r.Primary
}
