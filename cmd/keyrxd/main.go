// Command keyrxd is the keyboard remapping daemon's entrypoint: it
// wires the cobra command tree in cmd/keyrxd/commands and hands off
// to it.
package main

import (
	"fmt"
	"os"

	"github.com/keyrxd/keyrx/cmd/keyrxd/commands"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.Commit = commit
	commands.Date = date

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
