/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cristianoliveira/student-roster/cmd"
	"github.com/cristianoliveira/student-roster/internal/colors"
	"github.com/cristianoliveira/student-roster/internal/errors"
	"github.com/cristianoliveira/student-roster/internal/gateway"
	"github.com/cristianoliveira/student-roster/internal/listview"
	"github.com/spf13/cobra"
)

// confirmFunc asks question on out and reads the answer from in.
type confirmFunc func(in io.Reader, out io.Writer, question string) bool

func askConfirmation(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// NewDeleteCmd creates the delete command.
func NewDeleteCmd(open cmd.GatewayOpener, confirm confirmFunc) *cobra.Command {
	if open == nil {
		panic("NewDeleteCmd: open dependency cannot be nil")
	}
	if confirm == nil {
		panic("NewDeleteCmd: confirm dependency cannot be nil")
	}

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete students by id",
		Long: `Delete one or more students by their numeric id.

Several ids are deleted together: either all of them are removed or none.

Examples:
    student-roster delete 4
    student-roster delete 4 5 9 --yes`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			gw, release, err := open()
			if err != nil {
				return err
			}
			defer release()

			ctrl := listview.New(gw, cmd.ListOptions())
			op := gateway.OpDelete
			if len(ids) == 1 {
				ctrl.RequestDelete(ids[0])
			} else {
				op = gateway.OpDeleteMany
				for _, id := range ids {
					ctrl.Toggle(id)
				}
				ctrl.RequestDeleteSelected()
			}

			if !yes && !confirm(c.InOrStdin(), c.OutOrStdout(), ctrl.Prompt().Message) {
				ctrl.ResolvePrompt(false)
				colors.Info("Nothing deleted")
				return nil
			}
			if err := ctrl.Run(c.Context(), ctrl.ResolvePrompt(true)); err != nil {
				return err
			}
			if p := ctrl.Prompt(); p != nil {
				return &errors.Rejected{Op: op, Reason: p.Message}
			}
			colors.Success(fmt.Sprintf("Deleted %d student(s)", len(ids)))
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return deleteCmd
}

// parseIDs parses positive student ids, dropping repeats.
func parseIDs(args []string) ([]int, error) {
	seen := make(map[int]bool, len(args))
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid student id: %s", arg)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func init() {
	cmd.RootCmd.AddCommand(NewDeleteCmd(cmd.OpenGateway, askConfirmation))
}
