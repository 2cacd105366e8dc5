package notify

import (
	"context"

	"github.com/gen2brain/beeep"
)

// beeepSender implements Sender with gen2brain/beeep.
type beeepSender struct {
	notify func(title, message string) error
	alert  func(title, message string) error
}

func newBeeepSender(appName string) Sender {
	if appName != "" {
		beeep.AppName = appName
	}
	return &beeepSender{
		notify: func(title, message string) error { return beeep.Notify(title, message, "") },
		alert:  func(title, message string) error { return beeep.Alert(title, message, "") },
	}
}

// Send uses beeep.Alert when sound is requested, beeep.Notify otherwise.
// beeep has no cancellation, so ctx is only checked before the call.
func (s *beeepSender) Send(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.Sound {
		return s.alert(n.Title, n.Message)
	}
	return s.notify(n.Title, n.Message)
}

func (s *beeepSender) Available() bool { return true }
