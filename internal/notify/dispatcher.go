package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/notify-agent/notify-agent-mcp/internal/config"
	notifyerrors "github.com/notify-agent/notify-agent-mcp/internal/errors"
	"github.com/notify-agent/notify-agent-mcp/internal/history"
)

const (
	approvalTag = "[APPROVAL REQUIRED] "
	completeTag = "[COMPLETE] "
	errorTag    = "[ERROR] "
)

// Dispatcher turns events into backend calls and notification log entries.
// It holds no mutable state; the configuration snapshot is fixed at
// construction and concurrent Dispatch calls are safe.
type Dispatcher struct {
	config config.Configuration
	policy Policy
	sender Sender
	sink   *history.Writer
	log    zerolog.Logger
}

// NewDispatcher creates a dispatcher with the backend selected by cfg.Backend.
func NewDispatcher(cfg config.Configuration, sink *history.Writer, log zerolog.Logger) *Dispatcher {
	return NewDispatcherWithSender(cfg, NewSender(cfg.Backend, cfg.AppName), sink, log)
}

// NewDispatcherWithSender creates a dispatcher with a custom sender (for testing).
// A nil sink disables the notification log.
func NewDispatcherWithSender(cfg config.Configuration, sender Sender, sink *history.Writer, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		config: cfg,
		policy: PolicyFor(cfg),
		sender: sender,
		sink:   sink,
		log:    log,
	}
}

// Config returns the dispatcher's configuration snapshot
func (d *Dispatcher) Config() config.Configuration {
	return d.config
}

// Policy returns the active notification policy
func (d *Dispatcher) Policy() Policy {
	return d.policy
}

// SenderAvailable reports whether the backend works on this machine
func (d *Dispatcher) SenderAvailable() bool {
	return d.sender.Available()
}

// Dispatch handles one inbound event.
//
// Checks run in order, with nothing logged before the event validates:
//  1. enabled and tools.Notify, else a Disabled error
//  2. non-empty title and message, else an InvalidParams error
//  3. the policy; a denied event returns an empty Result and no error
//
// Then the primary notification is sent. Its failure is returned. The
// category notifications that follow are best-effort and only logged.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) (Result, error) {
	if !d.config.Active() {
		return Result{}, notifyerrors.NotificationsDisabled()
	}
	if err := e.Validate(); err != nil {
		return Result{}, err
	}
	if !d.policy.ShouldNotify(e, d.config) {
		d.log.Debug().
			Str("policy", d.policy.Name()).
			Str("title", e.Title).
			Msg("event did not match any enabled category")
		return Result{}, nil
	}

	if err := d.Notify(ctx, e.Title, e.Message); err != nil {
		return Result{}, err
	}

	res := Result{Primary: true}
	if e.ApprovalRequired {
		res.ApprovalRequired = d.NotifyApprovalRequired(ctx, e.Title, e.Message)
	}
	if e.Completed {
		res.ResponseComplete = d.NotifyResponseComplete(ctx, e.Title, e.Message)
	}
	return res, nil
}

// Notify sends the primary notification with the configured title prefix.
// It does not consult the policy.
func (d *Dispatcher) Notify(ctx context.Context, title, message string) error {
	fullTitle := d.config.TitlePrefix + title
	d.record(history.LevelInfo, fullTitle, message)

	if !d.sender.Available() {
		err := notifyerrors.PlatformNotSupported()
		d.record(history.LevelError, "Platform Error", err.Message)
		return err
	}

	if err := d.send(ctx, fullTitle, message); err != nil {
		d.record(history.LevelError, "Notification Failed", err.Error())
		return notifyerrors.NotificationFailed(err)
	}

	d.record(history.LevelSuccess, fullTitle, "Notification sent successfully: "+message)
	return nil
}

// NotifyApprovalRequired sends the approval-required notification when
// enabled in config. It reports whether the notification was delivered.
func (d *Dispatcher) NotifyApprovalRequired(ctx context.Context, title, message string) bool {
	if !d.config.Enabled || !d.config.NotifyOnApprovalRequired {
		return false
	}
	return d.sendCategory(ctx, categoryNotification{
		title:   d.config.TitlePrefix + approvalTag + title,
		message: "User approval required: " + message,
		level:   history.LevelApproval,
		sent:    "Approval required notification sent",
		failed:  "Approval Required Notification Failed",
	})
}

// NotifyResponseComplete sends the response-complete notification when
// enabled in config. It reports whether the notification was delivered.
func (d *Dispatcher) NotifyResponseComplete(ctx context.Context, title, message string) bool {
	if !d.config.Enabled || !d.config.NotifyOnResponseComplete {
		return false
	}
	return d.sendCategory(ctx, categoryNotification{
		title:   d.config.TitlePrefix + completeTag + title,
		message: "Copilot Agent completed: " + message,
		level:   history.LevelComplete,
		sent:    "Response complete notification sent",
		failed:  "Response Complete Notification Failed",
	})
}

// NotifyError reports a system-level failure to the user. Only the master
// switch is honoured. It never fails; a backend error is logged as CRITICAL.
func (d *Dispatcher) NotifyError(ctx context.Context, title, message string) {
	if !d.config.Enabled {
		return
	}

	fullTitle := d.config.TitlePrefix + errorTag + title
	d.record(history.LevelError, fullTitle, message)

	if !d.sender.Available() {
		d.record(history.LevelCritical, "Error Notification Failed", notifyerrors.PlatformNotSupported().Message)
		return
	}
	if err := d.send(ctx, fullTitle, message); err != nil {
		d.record(history.LevelCritical, "Error Notification Failed", err.Error())
		d.log.Error().Err(err).Str("title", fullTitle).Msg("error notification failed")
	}
}

type categoryNotification struct {
	title   string
	message string
	level   history.Level
	sent    string
	failed  string
}

func (d *Dispatcher) sendCategory(ctx context.Context, c categoryNotification) bool {
	d.record(c.level, c.title, c.message)

	if !d.sender.Available() {
		d.log.Warn().Str("title", c.title).Str("platform", Platform()).Msg("skipping notification, platform not supported")
		return false
	}

	if err := d.send(ctx, c.title, c.message); err != nil {
		d.record(history.LevelError, c.failed, err.Error())
		d.log.Warn().Err(err).Str("title", c.title).Msg("category notification failed")
		return false
	}

	d.record(history.LevelSuccess, c.title, c.sent)
	return true
}

func (d *Dispatcher) send(ctx context.Context, title, message string) error {
	n := NewNotification(title, message)
	n.AppName = d.config.AppName
	n.Activate = d.config.ActivateApp
	return d.sender.Send(ctx, n)
}

func (d *Dispatcher) record(level history.Level, title, message string) {
	if d.sink == nil {
		return
	}
	d.sink.Append(level, title, message)
}
