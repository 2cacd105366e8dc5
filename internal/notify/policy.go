package notify

import "github.com/notify-agent/notify-agent-mcp/internal/config"

// Policy decides whether an event produces notifications at all.
type Policy interface {
	ShouldNotify(e Event, cfg config.Configuration) bool
	Name() string
}

// GatedByCategory notifies only for event categories switched on in config.
type GatedByCategory struct{}

// ShouldNotify implements Policy.
func (GatedByCategory) ShouldNotify(e Event, cfg config.Configuration) bool {
	return ShouldNotify(e, cfg)
}

// Name implements Policy.
func (GatedByCategory) Name() string { return config.PolicyGated }

// AlwaysNotify notifies for every event.
type AlwaysNotify struct{}

// ShouldNotify implements Policy.
func (AlwaysNotify) ShouldNotify(Event, config.Configuration) bool { return true }

// Name implements Policy.
func (AlwaysNotify) Name() string { return config.PolicyAlways }

// ShouldNotify is the category gate. An event with neither flag set is denied.
func ShouldNotify(e Event, cfg config.Configuration) bool {
	if e.ApprovalRequired && cfg.NotifyOnApprovalRequired {
		return true
	}
	if e.Completed && cfg.NotifyOnResponseComplete {
		return true
	}
	return false
}

// PolicyFor returns the policy selected by cfg.Policy, defaulting to GatedByCategory.
func PolicyFor(cfg config.Configuration) Policy {
	if cfg.Policy == config.PolicyAlways {
		return AlwaysNotify{}
	}
	return GatedByCategory{}
}
