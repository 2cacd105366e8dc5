package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/notify-agent/notify-agent-mcp/internal/config"
	notifyerrors "github.com/notify-agent/notify-agent-mcp/internal/errors"
)

// Color helper functions for command output
var (
	cGreen  = color.New(color.FgGreen).SprintFunc()
	cYellow = color.New(color.FgYellow).SprintFunc()
	cRed    = color.New(color.FgRed).SprintFunc()
	cDim    = color.New(color.Faint).SprintFunc()
	cBold   = color.New(color.Bold).SprintFunc()
)

func newInitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create config.json with default values",
		Long: `Create config.json with default values in the working directory.

An existing config.json is never overwritten.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.resolve(cmd)
			if err != nil {
				return err
			}
			path := config.Path(e.dir)
			created, err := config.CreateDefault(e.dir)
			if err != nil {
				return notifyerrors.NewIOError(fmt.Sprintf("failed to create %s", path), err)
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cGreen("Created"), path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", cYellow("Exists"), path, cDim("(left unchanged)"))
			}
			return nil
		},
	}
	cmd.GroupID = GroupConfiguration
	return cmd
}
