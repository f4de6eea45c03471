/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"os"

	"github.com/cristianoliveira/student-roster/cmd"
	"github.com/cristianoliveira/student-roster/internal/colors"
	"github.com/cristianoliveira/student-roster/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], cmd.Execute))
}

// run executes the CLI and returns the process exit code. Startup logs are
// skipped for the tui so they do not draw over the screen.
func run(args []string, execute func() error) int {
	interactive := len(args) > 0 && args[0] == "tui"
	if interactive {
		colors.DisableStructuredLogging()
	} else {
		colors.StructuredInfo("startup", "main", "started", nil, "", nil)
	}
	defer func() { _ = logging.ShutdownGlobal() }()

	if err := execute(); err != nil {
		if !interactive {
			colors.StructuredError("startup", "main", "failed", err, "", nil)
		}
		return 1
	}
	if !interactive {
		colors.StructuredInfo("startup", "main", "completed", nil, "", nil)
	}
	return 0
}
