// Package config loads the notification configuration snapshot.
//
// Configuration is layered, lowest to highest priority:
//  1. Built-in defaults
//  2. <dir>/config.json
//  3. Environment variables (NOTIFY_AGENT_MCP_*)
//  4. Command line overrides (--set key=value)
//
// A loaded Configuration is never mutated; reloading produces a new value.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	notifyerrors "github.com/notify-agent/notify-agent-mcp/internal/errors"
)

// ConfigFileName is the config file name inside the working directory.
const ConfigFileName = "config.json"

// EnvPrefix is the prefix of environment variable overrides.
// Nested keys use a double underscore: NOTIFY_AGENT_MCP_TOOLS__NOTIFY=false.
const EnvPrefix = "NOTIFY_AGENT_MCP_"

// Notification policies.
const (
	PolicyGated  = "gated"
	PolicyAlways = "always"
)

// Notification backends.
const (
	BackendNative = "native"
	BackendBeeep  = "beeep"
)

// Configuration is the immutable notification configuration snapshot.
type Configuration struct {
	Enabled                  bool        `koanf:"enabled" json:"enabled" yaml:"enabled"`
	TitlePrefix              string      `koanf:"titlePrefix" json:"titlePrefix" yaml:"titlePrefix"`
	NotifyOnResponseComplete bool        `koanf:"notifyOnResponseComplete" json:"notifyOnResponseComplete" yaml:"notifyOnResponseComplete"`
	NotifyOnApprovalRequired bool        `koanf:"notifyOnApprovalRequired" json:"notifyOnApprovalRequired" yaml:"notifyOnApprovalRequired"`
	Tools                    ToolsConfig `koanf:"tools" json:"tools" yaml:"tools"`

	// Policy selects the dispatcher variant: "gated" or "always".
	Policy string `koanf:"policy" json:"policy" yaml:"policy" validate:"required,oneof=gated always"`
	// Backend selects the notification sender: "native" or "beeep".
	Backend string `koanf:"backend" json:"backend" yaml:"backend" validate:"required,oneof=native beeep"`
	// AppName is reported to the OS notification center.
	AppName string `koanf:"appName" json:"appName" yaml:"appName" validate:"required"`
	// ActivateApp is brought to the foreground after a notification (macOS only).
	ActivateApp string `koanf:"activateApp" json:"activateApp" yaml:"activateApp"`
}

// ToolsConfig toggles individual MCP tools.
type ToolsConfig struct {
	Notify bool `koanf:"Notify" json:"Notify" yaml:"Notify"`
}

// ToolEnabled reports whether the notify capability is exposed.
func (c Configuration) ToolEnabled() bool {
	return c.Tools.Notify
}

// Active reports whether notifications may be dispatched at all.
func (c Configuration) Active() bool {
	return c.Enabled && c.Tools.Notify
}

// Path returns the config file path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}

// Load builds a configuration from defaults, <dir>/config.json, the
// environment and overrides. A missing config file is not an error.
// Any parse, type or validation failure is returned as a configuration error.
func Load(dir string, overrides map[string]string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("applying default %s: %w", key, err)
		}
	}

	configPath := Path(dir)
	if _, err := os.Stat(configPath); err == nil {
		fk := koanf.New(".")
		if err := fk.Load(file.Provider(configPath), json.Parser()); err != nil {
			return nil, notifyerrors.NewConfigError(
				fmt.Sprintf("failed to load config %s", configPath), err,
				"Check config.json for JSON syntax errors",
			)
		}
		if err := ValidateFileTypes(fk.Raw(), configPath); err != nil {
			return nil, notifyerrors.NewConfigError(err.Error(), err)
		}
		if err := k.Merge(fk); err != nil {
			return nil, fmt.Errorf("merging config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, notifyerrors.NewConfigError(fmt.Sprintf("cannot access config %s", configPath), err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, notifyerrors.NewConfigError("failed to load environment overrides", err)
	}

	for key, value := range overrides {
		canonical, ok := CanonicalKey(key)
		if !ok {
			return nil, notifyerrors.NewConfigError(fmt.Sprintf("unknown config key %q", key), nil)
		}
		if err := k.Set(canonical, value); err != nil {
			return nil, fmt.Errorf("applying override %s: %w", canonical, err)
		}
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, notifyerrors.NewConfigError("failed to unmarshal config", err)
	}
	// An empty prefix from any layer means "use the default prefix".
	if cfg.TitlePrefix == "" {
		cfg.TitlePrefix = DefaultConfiguration().TitlePrefix
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, notifyerrors.NewConfigError(fmt.Sprintf("config validation failed: %v", err), err)
	}

	return &cfg, nil
}

// LoadOrDefault is the fail-closed loader used at startup. A missing config
// file is synthesized from defaults (persistence failures are only logged),
// and any load failure falls back to DefaultConfiguration.
func LoadOrDefault(dir string, overrides map[string]string, log zerolog.Logger) Configuration {
	configPath := Path(dir)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Warn().Str("path", configPath).Msg("config file not found, using default configuration")
		if created, err := CreateDefault(dir); err != nil {
			log.Warn().Err(err).Str("path", configPath).Msg("failed to create default config file")
		} else if created {
			log.Info().Str("path", configPath).Msg("created default config file")
		}
	}

	cfg, err := Load(dir, overrides)
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration, using default configuration as fallback")
		return DefaultConfiguration()
	}
	return *cfg
}

// envTransform converts environment variable names to config keys.
// Example: NOTIFY_AGENT_MCP_TITLEPREFIX -> titlePrefix,
// NOTIFY_AGENT_MCP_TOOLS__NOTIFY -> tools.Notify.
// Unknown variables map to "" and are ignored.
func envTransform(s string) string {
	key := strings.ReplaceAll(strings.TrimPrefix(s, EnvPrefix), "__", ".")
	canonical, ok := CanonicalKey(key)
	if !ok {
		return ""
	}
	return canonical
}

// CanonicalKey resolves a case-insensitive dotted key to its canonical
// spelling. Underscores are ignored so title_prefix matches titlePrefix.
func CanonicalKey(key string) (string, bool) {
	normalize := func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "_", ""))
	}
	want := normalize(key)
	for known := range GetDefaults() {
		if normalize(known) == want {
			return known, true
		}
	}
	return "", false
}
