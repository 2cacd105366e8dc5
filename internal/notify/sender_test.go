package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notify-agent/notify-agent-mcp/internal/config"
)

func TestPlatform(t *testing.T) {
	t.Parallel()
	assert.NotEmpty(t, Platform())
}

func TestNewSender(t *testing.T) {
	t.Parallel()

	// NOTE: Send is never called on real senders to avoid triggering OS notifications
	tests := map[string]struct {
		kind string
	}{
		"native":  {kind: config.BackendNative},
		"beeep":   {kind: config.BackendBeeep},
		"unknown": {kind: "other"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			sender := NewSender(tc.kind, "notify-agent-mcp-test")
			assert.NotNil(t, sender)
			_ = sender.Available()
		})
	}

	_, isBeeep := NewSender(config.BackendBeeep, "").(*beeepSender)
	assert.True(t, isBeeep)
}

func TestNoopSender(t *testing.T) {
	t.Parallel()
	s := noopSender{}
	assert.False(t, s.Available())
	assert.NoError(t, s.Send(context.Background(), NewNotification("T", "M")))
}

func TestBeeepSender_Send(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		sound     bool
		wantAlert bool
	}{
		"sound uses alert":   {sound: true, wantAlert: true},
		"silent uses notify": {sound: false, wantAlert: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var alerts, notifies int
			s := &beeepSender{
				alert:  func(string, string) error { alerts++; return nil },
				notify: func(string, string) error { notifies++; return nil },
			}
			n := NewNotification("T", "M")
			n.Sound = tc.sound

			assert.NoError(t, s.Send(context.Background(), n))
			if tc.wantAlert {
				assert.Equal(t, 1, alerts)
				assert.Equal(t, 0, notifies)
			} else {
				assert.Equal(t, 0, alerts)
				assert.Equal(t, 1, notifies)
			}
		})
	}
}

func TestBeeepSender_Errors(t *testing.T) {
	t.Parallel()
	boom := errors.New("no notification daemon")
	s := &beeepSender{
		alert:  func(string, string) error { return boom },
		notify: func(string, string) error { return boom },
	}

	assert.ErrorIs(t, s.Send(context.Background(), NewNotification("T", "M")), boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, NewNotification("T", "M")), context.Canceled)
	assert.True(t, s.Available())
}

func TestEscapeForPowerShell(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  string
	}{
		"plain":             {input: "Build done", want: "Build done"},
		"single quote":      {input: "it's done", want: "it''s done"},
		"dollar is literal": {input: "Cost $5", want: "Cost $5"},
		"backtick literal":  {input: "run `make`", want: "run `make`"},
		"variable syntax":   {input: "$env:PATH", want: "$env:PATH"},
		"mixed":             {input: "'$x'", want: "''$x''"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, escapeForPowerShell(tc.input))
		})
	}
}
