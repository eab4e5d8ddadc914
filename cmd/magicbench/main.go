// cmd/magicbench/main.go
package main

import (
	cmd "github.com/mwiater/magicbench/internal/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main starts the magicbench CLI by delegating to the cobra root command.
// Any command error exits with status 1.
func main() {
	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
