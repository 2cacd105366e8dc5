package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/notify-agent/notify-agent-mcp/internal/build"
)

// GetDefaults returns the default configuration values keyed by dotted path.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"enabled":                  true,
		"titlePrefix":              "[Agent] ",
		"notifyOnResponseComplete": true,
		"notifyOnApprovalRequired": true,
		"tools.Notify":             true,
		"policy":                   PolicyGated,
		"backend":                  BackendNative,
		"appName":                  build.Name,
		"activateApp":              "",
	}
}

// Keys returns the known config keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(GetDefaults()))
	for k := range GetDefaults() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultConfiguration returns the documented default snapshot.
func DefaultConfiguration() Configuration {
	return Configuration{
		Enabled:                  true,
		TitlePrefix:              "[Agent] ",
		NotifyOnResponseComplete: true,
		NotifyOnApprovalRequired: true,
		Tools:                    ToolsConfig{Notify: true},
		Policy:                   PolicyGated,
		Backend:                  BackendNative,
		AppName:                  build.Name,
		ActivateApp:              "",
	}
}

// CreateDefault writes the default configuration to <dir>/config.json.
// An existing file is never overwritten; created reports whether a file was written.
func CreateDefault(dir string) (created bool, err error) {
	configPath := Path(dir)

	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	data, err := json.MarshalIndent(DefaultConfiguration(), "", "  ")
	if err != nil {
		return false, fmt.Errorf("encoding default config: %w", err)
	}
	if err := os.WriteFile(configPath, append(data, '\n'), 0o644); err != nil {
		return false, fmt.Errorf("writing default config: %w", err)
	}
	return true, nil
}
