/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/student-roster/cmd"
	"github.com/cristianoliveira/student-roster/internal/colors"
	"github.com/cristianoliveira/student-roster/internal/logging"
	"github.com/cristianoliveira/student-roster/internal/settings"
	"github.com/cristianoliveira/student-roster/internal/tui/state"
	"github.com/spf13/cobra"
)

type programRunner func(m tea.Model) error

func runProgram(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewTUICmd creates the interactive list command.
func NewTUICmd(open cmd.GatewayOpener, run programRunner) *cobra.Command {
	if open == nil {
		panic("NewTUICmd: open dependency cannot be nil")
	}
	if run == nil {
		panic("NewTUICmd: run dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "tui",
		Short: "Browse students interactively",
		Long: `Browse students interactively.

The sort, page sizes and filters in use when quitting are restored next time.

KEY BINDINGS:
    j/k         Move cursor down/up
    h/l         Previous/next page
    +/-         Grow/shrink the page
    1-4         Sort by column
    f           Filter a column
    space       Select row
    A           Select all students
    a           Add a student
    e           Edit row
    enter       Show or hide details
    t, [ ]      Sort and page details
    d/D         Delete row/selected rows
    q           Quit`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			colors.DisableStructuredLogging()

			gw, release, err := open()
			if err != nil {
				return err
			}
			defer release()

			prefs, err := settings.Load()
			if err != nil {
				colors.Warning(fmt.Sprintf("Ignoring saved view settings: %v", err))
				prefs = settings.DefaultSettings()
			}
			model := state.NewModel(gw, state.Options{
				Context: c.Context(),
				List:    prefs.Apply(cmd.ListOptions()),
				Logger:  logging.GetGlobal(),
			})
			defer model.Close()

			if err := run(model); err != nil {
				return err
			}
			if err := settings.Save(settings.FromList(model.List())); err != nil {
				colors.Warning(fmt.Sprintf("Could not save view settings: %v", err))
			}
			return nil
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewTUICmd(cmd.OpenGateway, runProgram))
}
