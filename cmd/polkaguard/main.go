// cmd/polkaguard/main.go
//
// Entry point for the PolkaGuard CLI. Running `polkaguard` with no
// subcommand opens the submission TUI in the current directory.

package main

import (
	"os"

	"github.com/kingrea/polkaguard/cmd/polkaguard/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
