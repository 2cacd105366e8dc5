package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	notifyerrors "github.com/notify-agent/notify-agent-mcp/internal/errors"
	"github.com/notify-agent/notify-agent-mcp/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		httpAddr  string
		rateLimit int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP notification server",
		Long: `Run the MCP notification server.

By default the server speaks JSON-RPC over stdin/stdout, which is how MCP
clients launch it. With --http it listens on the given address instead and
serves:

  /mcp          streamable HTTP MCP endpoint
  POST /notify  REST endpoint taking {title, message, approvalRequired, completed}
  GET /healthz  health check`,
		Example: `  # stdio (launched by an MCP client)
  notify-agent-mcp serve

  # HTTP
  notify-agent-mcp serve --http 127.0.0.1:8765`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd, httpAddr, rateLimit)
		},
	}
	cmd.GroupID = GroupServer
	cmd.Flags().StringVar(&httpAddr, "http", "", "Serve over HTTP on this address instead of stdio")
	cmd.Flags().IntVar(&rateLimit, "rate-limit", server.DefaultRateLimit, "HTTP requests allowed per client IP per minute")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, httpAddr string, rateLimit int) (err error) {
	e, err := a.resolve(cmd)
	if err != nil {
		return err
	}
	cfg := e.loadConfig()
	e.log.Info().
		Bool("enabled", cfg.Enabled).
		Bool("notifyTool", cfg.Tools.Notify).
		Str("policy", cfg.Policy).
		Str("backend", cfg.Backend).
		Str("dir", e.dir).
		Msg("MCP notification server initialized")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := a.dispatcher(e, cfg)
	srv := server.New(d, e.log, server.WithRateLimit(rateLimit))

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprint(r)
			e.log.Error().Str("panic", msg).Msg("uncaught exception")
			d.NotifyError(context.Background(), "Uncaught Exception", msg)
			err = notifyerrors.New(notifyerrors.Runtime, "uncaught exception: "+msg)
		}
	}()

	if httpAddr != "" {
		return srv.ListenAndServe(ctx, httpAddr)
	}

	in := a.stdin
	if in == nil {
		in = cmd.InOrStdin()
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		e.log.Warn().Msg("stdin is a terminal; serve expects an MCP client speaking JSON-RPC on stdio")
	}

	if err := srv.ServeStdio(ctx, in, cmd.OutOrStdout()); err != nil && ctx.Err() == nil {
		return notifyerrors.WrapWithMessage(err, notifyerrors.Runtime, "stdio server stopped")
	}
	return nil
}
