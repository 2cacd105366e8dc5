package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/notify-agent/notify-agent-mcp/internal/config"
	"github.com/notify-agent/notify-agent-mcp/internal/history"
	"github.com/notify-agent/notify-agent-mcp/internal/notify"
)

func newStatusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"st"},
		Short:   "Show configuration, log and backend status (st)",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.resolve(cmd)
			if err != nil {
				return err
			}
			cfg, loadErr := config.Load(e.dir, e.overrides)
			if loadErr != nil {
				defaults := config.DefaultConfiguration()
				cfg = &defaults
			}
			sender := a.newSender(cfg.Backend, cfg.AppName)
			printStatus(cmd.OutOrStdout(), e, *cfg, loadErr, sender)
			return nil
		},
	}
	cmd.GroupID = GroupConfiguration
	return cmd
}

func printStatus(w io.Writer, e *env, cfg config.Configuration, loadErr error, sender notify.Sender) {
	configPath := config.Path(e.dir)
	switch {
	case loadErr != nil:
		fmt.Fprintf(w, "%s %s %s\n", cBold("Config: "), configPath, cRed("(invalid, defaults in effect)"))
		fmt.Fprintf(w, "         %s\n", cDim(loadErr.Error()))
	case fileExists(configPath):
		fmt.Fprintf(w, "%s %s\n", cBold("Config: "), configPath)
	default:
		fmt.Fprintf(w, "%s %s %s\n", cBold("Config: "), configPath, cDim("(not created, defaults in effect)"))
	}

	active := cGreen("active")
	if !cfg.Active() {
		active = cYellow("disabled")
	}
	fmt.Fprintf(w, "%s %s (policy: %s, prefix: %q)\n", cBold("Notify: "), active, cfg.Policy, cfg.TitlePrefix)

	available := cGreen("available")
	if !sender.Available() {
		available = cRed("unavailable")
	}
	fmt.Fprintf(w, "%s %s on %s (%s)\n", cBold("Backend:"), cfg.Backend, notify.Platform(), available)

	logPath := e.logPath()
	if info, err := os.Stat(logPath); err == nil {
		fmt.Fprintf(w, "%s %s (%s of %s)\n", cBold("Log:    "), logPath,
			humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(history.MaxLogSize)))
	} else {
		fmt.Fprintf(w, "%s %s %s\n", cBold("Log:    "), logPath, cDim("(empty)"))
	}
	if info, err := os.Stat(history.BackupPath(logPath)); err == nil {
		fmt.Fprintf(w, "%s %s (%s)\n", cBold("Backup: "), history.BackupPath(logPath), humanize.IBytes(uint64(info.Size())))
	}

	entries, err := history.ReadEntries(logPath)
	if err != nil || len(entries) == 0 {
		return
	}
	last := entries[len(entries)-1]
	fmt.Fprintf(w, "%s %s %s: %s - %s\n", cBold("Last:   "),
		humanize.Time(last.Timestamp), last.Level, last.Title, last.Message)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
