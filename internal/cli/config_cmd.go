package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/notify-agent/notify-agent-mcp/internal/config"
	notifyerrors "github.com/notify-agent/notify-agent-mcp/internal/errors"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	configCmd.GroupID = GroupConfiguration

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying defaults, config.json, the
environment and --set overrides. Unlike serve, a broken config.json is
reported as an error instead of falling back to defaults.`,
		Example: `  notify-agent-mcp config show
  notify-agent-mcp config show --format yaml
  notify-agent-mcp --set policy=always config show`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.resolve(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.Load(e.dir, e.overrides)
			if err != nil {
				return err
			}
			out, err := renderConfig(*cfg, format)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	showCmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")

	configCmd.AddCommand(showCmd)
	return configCmd
}

func renderConfig(cfg config.Configuration, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding config: %w", err)
		}
		return string(data) + "\n", nil
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return "", fmt.Errorf("encoding config: %w", err)
		}
		return string(data), nil
	default:
		return "", notifyerrors.NewArgumentError(
			fmt.Sprintf("unknown format %q", format),
			"Use --format json or --format yaml",
		)
	}
}
