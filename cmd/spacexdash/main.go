// cmd/spacexdash/main.go
package main

import (
	cmd "github.com/mwiater/spacexdash/internal/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = cmd.SetVersionInfo
	executeCmd     = cmd.Execute
)

// main starts the spacexdash CLI by delegating to the cobra root command.
// With no arguments it serves the dashboard on the default address.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
