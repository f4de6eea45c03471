/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"fmt"

	"github.com/cristianoliveira/student-roster/cmd"
	"github.com/cristianoliveira/student-roster/internal/colors"
	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/cristianoliveira/student-roster/internal/errors"
	"github.com/cristianoliveira/student-roster/internal/gateway"
	"github.com/spf13/cobra"
)

// NewCheckIDCmd creates the check-id command.
func NewCheckIDCmd(open cmd.GatewayOpener) *cobra.Command {
	if open == nil {
		panic("NewCheckIDCmd: open dependency cannot be nil")
	}

	var exclude int
	checkCmd := &cobra.Command{
		Use:   "check-id SCHOOL_ID",
		Short: "Check whether a school ID is free",
		Long: `Check whether a school ID is unused. Pass --exclude with a student id to
ignore that student, as when editing it. Exits 1 when the ID is taken.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			gw, release, err := open()
			if err != nil {
				return err
			}
			defer release()

			res, err := gw.CheckUniqueSchoolID(c.Context(), exclude, args[0])
			if err != nil {
				return gateway.Transport(gateway.OpCheckSchoolID, err)
			}
			if err := errors.FromResult(gateway.OpCheckSchoolID, res); err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("School ID %s is available", args[0]))
			return nil
		},
	}
	checkCmd.Flags().IntVar(&exclude, "exclude", domain.NewStudentID, "student id to ignore")

	return checkCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewCheckIDCmd(cmd.OpenGateway))
}
