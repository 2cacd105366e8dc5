package cli

import (
	notifyerrors "github.com/notify-agent/notify-agent-mcp/internal/errors"
)

// Exit codes for the notify-agent-mcp CLI
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (backend, I/O, configuration)
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3
)

// ExitCode returns the exit code for an error returned by a command.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch notifyerrors.CategoryOf(err) {
	case notifyerrors.Argument, notifyerrors.InvalidParams:
		return ExitInvalidArguments
	default:
		return ExitFailure
	}
}

