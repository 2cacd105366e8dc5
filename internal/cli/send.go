package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	notifyerrors "github.com/notify-agent/notify-agent-mcp/internal/errors"
	"github.com/notify-agent/notify-agent-mcp/internal/notify"
)

func newSendCmd(a *app) *cobra.Command {
	var event notify.Event

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a single notification and exit",
		Long: `Send a single notification through the same gating and logging as the
MCP tool. Useful from agent hooks that can run shell commands.

Under the default gated policy an event without --approval or --completed
is accepted but produces no notification.`,
		Example: `  notify-agent-mcp send --title Build --message Done --completed
  notify-agent-mcp send --title Deploy --message "Run migrations?" --approval`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSend(cmd, event)
		},
	}
	cmd.GroupID = GroupServer
	cmd.Flags().StringVarP(&event.Title, "title", "t", "", "Notification title (required)")
	cmd.Flags().StringVarP(&event.Message, "message", "m", "", "Notification message (required)")
	cmd.Flags().BoolVar(&event.ApprovalRequired, "approval", false, "The agent is waiting for user approval")
	cmd.Flags().BoolVar(&event.Completed, "completed", false, "The agent completed its response")
	return cmd
}

func (a *app) runSend(cmd *cobra.Command, event notify.Event) error {
	e, err := a.resolve(cmd)
	if err != nil {
		return err
	}
	d := a.dispatcher(e, e.loadConfig())

	res, err := d.Dispatch(cmd.Context(), event)
	if err != nil {
		if notifyerrors.CategoryOf(err).RPCClass() == notifyerrors.ClassInternalError {
			d.NotifyError(cmd.Context(), "Notification Error", err.Error())
		}
		return err
	}

	out := cmd.OutOrStdout()
	if !res.Sent() {
		fmt.Fprintf(out, "%s event %q matched no enabled category (policy: %s)\n",
			color.YellowString("Skipped:"), event.Title, d.Policy().Name())
		return nil
	}

	fmt.Fprintf(out, "Notification sent: \"%s\" - \"%s\"\n", event.Title, event.Message)
	if res.ApprovalRequired {
		fmt.Fprintln(out, "  + approval required notification")
	}
	if res.ResponseComplete {
		fmt.Fprintln(out, "  + response complete notification")
	}
	return nil
}
