package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/notify-agent/notify-agent-mcp/internal/config"
	notifyerrors "github.com/notify-agent/notify-agent-mcp/internal/errors"
	"github.com/notify-agent/notify-agent-mcp/internal/history"
	"github.com/notify-agent/notify-agent-mcp/internal/logging"
	"github.com/notify-agent/notify-agent-mcp/internal/notify"
)

// env is the resolved runtime environment of a command.
type env struct {
	dir       string
	overrides map[string]string
	log       zerolog.Logger
}

// resolve reads the global flags, loads <dir>/.env and builds the
// diagnostic logger. It does not touch config.json.
func (a *app) resolve(cmd *cobra.Command) (*env, error) {
	dir := a.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, notifyerrors.NewIOError("cannot determine working directory", err)
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, notifyerrors.NewArgumentError("invalid --dir: " + err.Error())
	}

	overrides, err := config.ParseOverrides(a.sets)
	if err != nil {
		return nil, notifyerrors.NewArgumentError(err.Error(),
			"Use --set key=value with one of the keys shown by 'notify-agent-mcp config show'")
	}

	level := "info"
	if a.debug {
		level = "debug"
	}
	log := logging.New(level, cmd.ErrOrStderr())

	// godotenv never overrides variables already set in the environment.
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	return &env{dir: dir, overrides: overrides, log: log}, nil
}

// loadConfig is the fail-closed startup load: a missing config.json is
// created and any error falls back to defaults.
func (e *env) loadConfig() config.Configuration {
	return config.LoadOrDefault(e.dir, e.overrides, e.log)
}

func (e *env) logPath() string {
	return history.DefaultLogPath(e.dir)
}

func (a *app) dispatcher(e *env, cfg config.Configuration) *notify.Dispatcher {
	sink := history.NewWriter(e.logPath(), e.log)
	return notify.NewDispatcherWithSender(cfg, a.newSender(cfg.Backend, cfg.AppName), sink, e.log)
}
