/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/student-roster/internal/colors"
	"github.com/cristianoliveira/student-roster/internal/config"
	"github.com/cristianoliveira/student-roster/internal/errors"
	"github.com/cristianoliveira/student-roster/internal/logging"
	"github.com/cristianoliveira/student-roster/internal/version"
	"github.com/spf13/cobra"
)

var backendFlag string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:           version.Name,
	Short:         "Browse and maintain the student roster.",
	Long:          `Browse and maintain the student roster from a remote API or a local database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	err := RootCmd.Execute()
	if err != nil {
		errors.Report(errors.NewDefaultCLIHandler(), err)
	}
	return err
}

func init() {
	RootCmd.Version = version.String()

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		printHelpText(cmd)
	})

	RootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "student source: http, sqlite or memory (overrides gateway_backend)")
}

// setup loads configuration and starts logging before any subcommand runs.
func setup(cmd *cobra.Command) error {
	config.Load()
	if cmd.Flags().Changed("backend") {
		config.Set("gateway_backend", backendFlag)
	}
	colors.SetDebug(config.GetBool("debug", false))
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("logging disabled: %v", err))
	}
	colors.Debug("using backend", config.Get("gateway_backend", ""))
	return nil
}

func printHelpText(cmd *cobra.Command) {
	// Sub command help keeps cobra's default layout.
	if cmd != RootCmd {
		fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
		return
	}

	commandOrder := []string{
		"tui",
		"list",
		"add",
		"delete",
		"check-id",
		"seed",
		"version",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Name(), found.Short))
	}

	helpText := fmt.Sprintf(`%s v%s

Browse and maintain the student roster.

USAGE:
    %s [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    --backend NAME  Student source: http, sqlite or memory
    -h, --help      Show help message
`, version.Name, version.String(), version.Name, strings.Join(cmdLines, "\n"))
	fmt.Fprint(cmd.OutOrStdout(), helpText)
}
