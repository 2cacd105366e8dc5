// notify-agent-mcp - Desktop notifications for AI coding agents over MCP

package main

import (
	"os"

	"github.com/notify-agent/notify-agent-mcp/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
