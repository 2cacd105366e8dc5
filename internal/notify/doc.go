// Package notify decides whether an inbound agent event deserves a desktop
// notification and dispatches it to a platform backend.
//
// An Event is first checked against the configuration (master switch and
// the Notify tool toggle), then validated, then offered to a Policy. When
// the policy allows it, the Dispatcher sends the primary notification and
// the category notifications (approval required, response complete), and
// records every attempt in the notification log.
//
// # Policies
//
//   - GatedByCategory: notify only for approval-required or completed events
//     whose category is switched on in configuration (default)
//   - AlwaysNotify: notify for every valid event
//
// # Backends
//
//   - macOS: osascript, optionally activating an application afterwards
//   - Linux: org.freedesktop.Notifications over the session bus, falling back
//     to notify-send
//   - Windows: PowerShell toast
//   - beeep: cross-platform backend selected with "backend": "beeep"
//
// # Usage
//
//	d := notify.NewDispatcher(cfg, history.NewWriter(path, log), log)
//	res, err := d.Dispatch(ctx, notify.Event{Title: "Build", Message: "Done", Completed: true})
package notify
