// Package server exposes the notification dispatcher over MCP (stdio and
// streamable HTTP) and a plain REST endpoint.
//
// This is the composition root for the transports: it owns no notification
// logic and only translates between the wire and notify.Dispatcher.
package server

import (
	"context"
	"fmt"
	"io"
	stdlog "log"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/notify-agent/notify-agent-mcp/internal/build"
	notifyerrors "github.com/notify-agent/notify-agent-mcp/internal/errors"
	"github.com/notify-agent/notify-agent-mcp/internal/notify"
)

// ToolName is the name of the single MCP tool.
const ToolName = "notify"

// DefaultRateLimit is the number of HTTP requests allowed per client IP per minute.
const DefaultRateLimit = 60

// Server wires a Dispatcher to the MCP protocol.
type Server struct {
	dispatcher *notify.Dispatcher
	mcp        *mcpserver.MCPServer
	log        zerolog.Logger
	rateLimit  int
}

// Option configures a Server.
type Option func(*Server)

// WithRateLimit sets the per-IP request limit per minute for HTTP mode.
func WithRateLimit(perMinute int) Option {
	return func(s *Server) {
		if perMinute > 0 {
			s.rateLimit = perMinute
		}
	}
}

// New creates the MCP server. The notify tool is always registered so calls
// reach HandleNotify, but it is hidden from tools/list while the dispatcher's
// configuration is inactive.
func New(d *notify.Dispatcher, log zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		dispatcher: d,
		log:        log,
		rateLimit:  DefaultRateLimit,
	}
	for _, opt := range opts {
		opt(s)
	}

	hooks := &mcpserver.Hooks{}
	hooks.AddOnError(s.onProtocolError)

	s.mcp = mcpserver.NewMCPServer(
		build.Name,
		build.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
		mcpserver.WithHooks(hooks),
		mcpserver.WithToolFilter(s.visibleTools),
	)
	s.mcp.AddTool(NotifyTool(), s.HandleNotify)

	if !d.Config().Active() {
		log.Warn().Msg("notifications are disabled, notify tool hidden from tools/list")
	}

	return s
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// NotifyTool describes the notify tool and its input schema.
func NotifyTool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Send a desktop notification to the user"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("The title of the notification"),
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The message content of the notification"),
		),
		mcp.WithBoolean("approvalRequired",
			mcp.Description("Whether the agent is waiting for user approval"),
		),
		mcp.WithBoolean("completed",
			mcp.Description("Whether the agent has completed its response"),
		),
	)
}

// HandleNotify is the notify tool handler. Rejections are returned as
// error results whose text starts with the error class.
func (s *Server) HandleNotify(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.dispatcher.Config().Active() {
		return rejection(notifyerrors.NotificationsDisabled()), nil
	}

	var event notify.Event
	if err := req.BindArguments(&event); err != nil {
		return rejection(notifyerrors.InvalidArguments(err)), nil
	}

	if _, err := s.dispatcher.Dispatch(ctx, event); err != nil {
		if notifyerrors.CategoryOf(err).RPCClass() != notifyerrors.ClassInternalError {
			return rejection(err), nil
		}
		cause := s.reportFailure(ctx, err)
		return mcp.NewToolResultError(fmt.Sprintf("%s: Failed to send notification: %s",
			notifyerrors.ClassInternalError, cause)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Notification sent: \"%s\" - \"%s\"", event.Title, event.Message)), nil
}

// ServeStdio runs the MCP server over newline-delimited JSON-RPC until ctx
// is cancelled or in is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := mcpserver.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(stdlog.New(s.log, "", 0))
	s.log.Info().Str("transport", "stdio").Msg("MCP notification server running")
	return stdio.Listen(ctx, in, out)
}

// reportFailure raises the best-effort error notification for a failed
// dispatch and returns the underlying cause.
func (s *Server) reportFailure(ctx context.Context, err error) string {
	cause := err.Error()
	if ne := notifyerrors.AsNotifyError(err); ne != nil && ne.Category == notifyerrors.Backend && ne.Err != nil {
		cause = ne.Err.Error()
	}
	s.log.Error().Err(err).Msg("notification dispatch failed")
	s.dispatcher.NotifyError(ctx, "Notification Error", cause)
	return cause
}

// visibleTools drops the notify tool from listings while notifications are off.
func (s *Server) visibleTools(_ context.Context, tools []mcp.Tool) []mcp.Tool {
	if s.dispatcher.Config().Active() {
		return tools
	}
	visible := make([]mcp.Tool, 0, len(tools))
	for _, tool := range tools {
		if tool.Name != ToolName {
			visible = append(visible, tool)
		}
	}
	return visible
}

func (s *Server) onProtocolError(ctx context.Context, id any, method mcp.MCPMethod, _ any, err error) {
	s.log.Error().Err(err).Interface("id", id).Str("method", string(method)).Msg("MCP server error")
	s.dispatcher.NotifyError(ctx, "MCP Server Error", err.Error())
}

func rejection(err error) *mcp.CallToolResult {
	class := notifyerrors.CategoryOf(err).RPCClass()
	return mcp.NewToolResultError(fmt.Sprintf("%s: %s", class, err.Error()))
}
