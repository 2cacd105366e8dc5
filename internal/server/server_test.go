// Package server_test tests the notify tool handler and MCP wiring.
// Related: internal/server/server.go
// Tags: server, mcp, tools, error-handling
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notify-agent/notify-agent-mcp/internal/config"
	"github.com/notify-agent/notify-agent-mcp/internal/history"
	"github.com/notify-agent/notify-agent-mcp/internal/notify"
	"github.com/notify-agent/notify-agent-mcp/internal/testutil"
)

type fixture struct {
	dir    string
	server *Server
	sender *testutil.MockSender
	diag   *bytes.Buffer
}

func newFixture(t *testing.T, cfg config.Configuration, sender *testutil.MockSender, opts ...Option) fixture {
	t.Helper()
	dir := t.TempDir()
	var diag bytes.Buffer
	log := zerolog.New(&diag)
	sink := history.NewWriter(history.DefaultLogPath(dir), log)
	d := notify.NewDispatcherWithSender(cfg, sender, sink, log)
	return fixture{dir: dir, server: New(d, log, opts...), sender: sender, diag: &diag}
}

func callRequest(args any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = ToolName
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestHandleNotify_Success(t *testing.T) {
	t.Parallel()
	f := newFixture(t, config.DefaultConfiguration(), testutil.NewMockSender())

	res, err := f.server.HandleNotify(context.Background(), callRequest(map[string]any{
		"title":     "Build",
		"message":   "Done",
		"completed": true,
	}))

	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, `Notification sent: "Build" - "Done"`, resultText(t, res))
	assert.Equal(t, []string{"[Agent] Build", "[Agent] [COMPLETE] Build"}, f.sender.Titles())
}

func TestHandleNotify_PolicyDeniedStillReportsSent(t *testing.T) {
	t.Parallel()
	f := newFixture(t, config.DefaultConfiguration(), testutil.NewMockSender())

	res, err := f.server.HandleNotify(context.Background(), callRequest(map[string]any{
		"title":   "Build",
		"message": "Done",
	}))

	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, `Notification sent: "Build" - "Done"`, resultText(t, res))
	f.sender.AssertNotCalled(t)
}

func TestHandleNotify_Rejections(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate func(*config.Configuration)
		args   any
		want   string
	}{
		"disabled": {
			mutate: func(c *config.Configuration) { c.Enabled = false },
			args:   map[string]any{"title": "T", "message": "M"},
			want:   "method_not_found: Notifications are disabled in configuration",
		},
		"tool toggled off": {
			mutate: func(c *config.Configuration) { c.Tools.Notify = false },
			args:   map[string]any{"title": "T", "message": "M"},
			want:   "method_not_found: Notifications are disabled in configuration",
		},
		"empty title": {
			args: map[string]any{"title": "", "message": "M"},
			want: "invalid_params: Both title and message are required",
		},
		"missing message": {
			args: map[string]any{"title": "T"},
			want: "invalid_params: Both title and message are required",
		},
		"no arguments": {
			args: nil,
			want: "invalid_params: Both title and message are required",
		},
		"boolean as string": {
			args: map[string]any{"title": "T", "message": "M", "completed": "yes"},
			want: "invalid_params: invalid arguments",
		},
		"title as number": {
			args: map[string]any{"title": 42, "message": "M"},
			want: "invalid_params: invalid arguments",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := config.DefaultConfiguration()
			if tc.mutate != nil {
				tc.mutate(&cfg)
			}
			f := newFixture(t, cfg, testutil.NewMockSender())

			res, err := f.server.HandleNotify(context.Background(), callRequest(tc.args))

			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(t, res), tc.want)
			f.sender.AssertNotCalled(t)
			assert.Empty(t, testutil.LogEntries(t, f.dir))
		})
	}
}

func TestHandleNotify_BackendFailure(t *testing.T) {
	t.Parallel()
	sender := testutil.NewMockSenderBuilder().WithError(errors.New("bus closed")).Build()
	f := newFixture(t, config.DefaultConfiguration(), sender)

	res, err := f.server.HandleNotify(context.Background(), callRequest(map[string]any{
		"title":            "Deploy",
		"message":          "Waiting",
		"approvalRequired": true,
	}))

	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "internal_error: Failed to send notification: bus closed", resultText(t, res))

	// The primary attempt fails, then the error notification is raised.
	assert.Equal(t, []string{"[Agent] Deploy", "[Agent] [ERROR] Notification Error"}, f.sender.Titles())
	f.sender.AssertSent(t, "[Agent] [ERROR] Notification Error", "bus closed")
}

func TestHandleNotify_PlatformUnsupported(t *testing.T) {
	t.Parallel()
	f := newFixture(t, config.DefaultConfiguration(), testutil.NewMockSenderBuilder().Unavailable().Build())

	res, err := f.server.HandleNotify(context.Background(), callRequest(map[string]any{
		"title":     "T",
		"message":   "M",
		"completed": true,
	}))

	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "internal_error: Failed to send notification: desktop notifications are not supported")
	f.sender.AssertNotCalled(t)
	assert.Contains(t, testutil.LogLevels(t, f.dir), history.LevelCritical)
}

func TestOnProtocolError(t *testing.T) {
	t.Parallel()
	f := newFixture(t, config.DefaultConfiguration(), testutil.NewMockSender())

	f.server.onProtocolError(context.Background(), 7, mcp.MethodToolsCall, nil, errors.New("malformed request"))

	f.sender.AssertSent(t, "[Agent] [ERROR] MCP Server Error", "malformed request")
	assert.Contains(t, f.diag.String(), "MCP server error")
}

func TestNotifyTool_Schema(t *testing.T) {
	t.Parallel()
	tool := NotifyTool()

	assert.Equal(t, ToolName, tool.Name)
	assert.ElementsMatch(t, []string{"title", "message"}, tool.InputSchema.Required)
	for _, prop := range []string{"title", "message", "approvalRequired", "completed"} {
		assert.Contains(t, tool.InputSchema.Properties, prop)
	}
}

func handleMessage(t *testing.T, s *Server, msg string) string {
	t.Helper()
	resp := s.MCP().HandleMessage(context.Background(), json.RawMessage(msg))
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(data)
}

func TestMCP_ToolRegistration(t *testing.T) {
	t.Parallel()
	const list = `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`

	tests := map[string]struct {
		mutate   func(*config.Configuration)
		wantTool bool
	}{
		"active":   {wantTool: true},
		"disabled": {mutate: func(c *config.Configuration) { c.Enabled = false }},
		"tool off": {mutate: func(c *config.Configuration) { c.Tools.Notify = false }},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := config.DefaultConfiguration()
			if tc.mutate != nil {
				tc.mutate(&cfg)
			}
			f := newFixture(t, cfg, testutil.NewMockSender())

			out := handleMessage(t, f.server, list)
			if tc.wantTool {
				assert.Contains(t, out, `"name":"notify"`)
			} else {
				assert.NotContains(t, out, `"name":"notify"`)
			}
		})
	}
}

func TestMCP_ToolCall(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate    func(*config.Configuration)
		tool      string
		want      []string
		wantCalls int
	}{
		"active": {
			tool:      ToolName,
			want:      []string{`Notification sent: \"Build\" - \"Done\"`},
			wantCalls: 2,
		},
		"disabled": {
			mutate: func(c *config.Configuration) { c.Enabled = false },
			tool:   ToolName,
			want:   []string{`"isError":true`, "method_not_found: Notifications are disabled in configuration"},
		},
		"tool toggled off": {
			mutate: func(c *config.Configuration) { c.Tools.Notify = false },
			tool:   ToolName,
			want:   []string{`"isError":true`, "method_not_found: Notifications are disabled in configuration"},
		},
		"unknown tool": {
			tool: "beep",
			want: []string{`"error"`, "beep"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := config.DefaultConfiguration()
			if tc.mutate != nil {
				tc.mutate(&cfg)
			}
			f := newFixture(t, cfg, testutil.NewMockSender())

			out := handleMessage(t, f.server,
				`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"`+tc.tool+
					`","arguments":{"title":"Build","message":"Done","completed":true}}}`)

			for _, want := range tc.want {
				assert.Contains(t, out, want)
			}
			f.sender.AssertCallCount(t, tc.wantCalls)
		})
	}
}
