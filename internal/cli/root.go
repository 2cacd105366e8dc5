// Package cli provides the Cobra-based command line for notify-agent-mcp.
// It defines the MCP server entry point (serve), a one-shot dispatch for
// host hooks (send), and configuration utilities (init, config, status).
package cli

import (
	"io"

	"github.com/spf13/cobra"

	notifyerrors "github.com/notify-agent/notify-agent-mcp/internal/errors"
	"github.com/notify-agent/notify-agent-mcp/internal/notify"
)

// Command group IDs for organizing help output
const (
	GroupServer        = "server"
	GroupConfiguration = "configuration"
)

// app holds the global flag values and injectable dependencies shared by
// every subcommand of one root command.
type app struct {
	dir   string
	sets  []string
	debug bool

	newSender func(kind, appName string) notify.Sender
	stdin     io.Reader
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{newSender: notify.NewSender})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "notify-agent-mcp",
		Short: "Desktop notifications for AI coding agents over MCP",
		Long: `notify-agent-mcp - desktop notifications for AI coding agents

Runs an MCP server exposing a single "notify" tool. Agents call it when they
finish a response or need approval, and the server raises a native desktop
notification and records it in notification.log.

Configuration precedence (highest to lowest):
  1. --set key=value flags
  2. Environment variables (NOTIFY_AGENT_MCP_*, also read from .env)
  3. config.json in the working directory
  4. Built-in defaults`,
		Example: `  # Serve MCP over stdio (configure this in your agent)
  notify-agent-mcp serve

  # Serve MCP and the REST endpoint over HTTP
  notify-agent-mcp serve --http 127.0.0.1:8765

  # Send a notification from a shell hook
  notify-agent-mcp send --title Build --message Done --completed

  # Create config.json with defaults
  notify-agent-mcp init`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: GroupServer, Title: "Server:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})
	rootCmd.SetHelpCommandGroupID(GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.dir, "dir", "", "Working directory holding config.json and notification.log (default: current directory)")
	rootCmd.PersistentFlags().StringArrayVar(&a.sets, "set", nil, "Override a config key (key=value, repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable debug logging")

	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return notifyerrors.NewArgumentErrorWithUsage(err.Error(), c.UseLine())
	})

	rootCmd.AddCommand(
		newServeCmd(a),
		newSendCmd(a),
		newInitCmd(a),
		newConfigCmd(a),
		newStatusCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := NewRootCmd().Execute()
	if err != nil {
		notifyerrors.PrintError(err)
	}
	return ExitCode(err)
}

// noArgs rejects positional arguments with an argument error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return notifyerrors.NewArgumentErrorWithUsage(
			"unexpected argument: "+args[0], cmd.UseLine())
	}
	return nil
}
