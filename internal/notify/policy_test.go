// Package notify_test tests the notification policies.
// Related: internal/notify/policy.go
// Tags: notify, policy, gating
package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notify-agent/notify-agent-mcp/internal/config"
)

func TestShouldNotify(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		event      Event
		onApproval bool
		onComplete bool
		want       bool
	}{
		"bare event is denied": {
			event:      Event{Title: "T", Message: "M"},
			onApproval: true,
			onComplete: true,
			want:       false,
		},
		"approval allowed": {
			event:      Event{Title: "T", Message: "M", ApprovalRequired: true},
			onApproval: true,
			want:       true,
		},
		"approval switched off": {
			event:      Event{Title: "T", Message: "M", ApprovalRequired: true},
			onApproval: false,
			onComplete: true,
			want:       false,
		},
		"completed allowed": {
			event:      Event{Title: "T", Message: "M", Completed: true},
			onComplete: true,
			want:       true,
		},
		"completed switched off": {
			event:      Event{Title: "T", Message: "M", Completed: true},
			onApproval: true,
			onComplete: false,
			want:       false,
		},
		"both flags, only completion enabled": {
			event:      Event{Title: "T", Message: "M", ApprovalRequired: true, Completed: true},
			onComplete: true,
			want:       true,
		},
		"both flags, nothing enabled": {
			event: Event{Title: "T", Message: "M", ApprovalRequired: true, Completed: true},
			want:  false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := config.DefaultConfiguration()
			cfg.NotifyOnApprovalRequired = tc.onApproval
			cfg.NotifyOnResponseComplete = tc.onComplete

			assert.Equal(t, tc.want, ShouldNotify(tc.event, cfg))
			assert.Equal(t, tc.want, GatedByCategory{}.ShouldNotify(tc.event, cfg))
			assert.True(t, AlwaysNotify{}.ShouldNotify(tc.event, cfg))
		})
	}
}

func TestShouldNotify_IgnoresMasterSwitch(t *testing.T) {
	t.Parallel()
	cfg := config.DefaultConfiguration()
	cfg.Enabled = false

	// The master switch is enforced by the dispatcher, not the gate.
	assert.True(t, ShouldNotify(Event{Title: "T", Message: "M", Completed: true}, cfg))
}

func TestPolicyFor(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		policy string
		want   Policy
	}{
		"gated":   {policy: config.PolicyGated, want: GatedByCategory{}},
		"always":  {policy: config.PolicyAlways, want: AlwaysNotify{}},
		"unknown": {policy: "", want: GatedByCategory{}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := config.DefaultConfiguration()
			cfg.Policy = tc.policy
			got := PolicyFor(cfg)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.Name(), got.Name())
		})
	}
}
