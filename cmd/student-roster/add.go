/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/student-roster/cmd"
	"github.com/cristianoliveira/student-roster/internal/colors"
	"github.com/cristianoliveira/student-roster/internal/errors"
	"github.com/cristianoliveira/student-roster/internal/gateway"
	"github.com/cristianoliveira/student-roster/internal/listview"
	"github.com/spf13/cobra"
)

// NewAddCmd creates the add command. The student goes through the same form
// rules as the interactive list: local validation, the school id check, then
// the create call.
func NewAddCmd(open cmd.GatewayOpener) *cobra.Command {
	if open == nil {
		panic("NewAddCmd: open dependency cannot be nil")
	}

	values := map[listview.Field]*string{}
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a student",
		Long: `Add a student to the roster.

Every field is required and the school ID must not belong to another student.

Examples:
    student-roster add --school-id S200 --first Ada --last Lovelace --email ada@example.edu`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			gw, release, err := open()
			if err != nil {
				return err
			}
			defer release()

			ctrl := listview.New(gw, cmd.ListOptions())
			ctrl.BeginAdd()
			for _, f := range listview.Fields {
				ctrl.SetField(f, *values[f])
			}
			if err := ctrl.Run(c.Context(), ctrl.BlurSchoolID()); err != nil {
				return err
			}

			submit := ctrl.SubmitAdd()
			if submit == nil {
				return formError(ctrl.Form())
			}
			if err := ctrl.Run(c.Context(), submit); err != nil {
				return err
			}
			if p := ctrl.Prompt(); p != nil {
				return &errors.Rejected{Op: gateway.OpCreate, Reason: p.Message}
			}
			colors.Success(fmt.Sprintf("Student %s added", strings.TrimSpace(*values[listview.FieldSchoolID])))
			return nil
		},
	}

	flags := []struct {
		field listview.Field
		name  string
	}{
		{listview.FieldSchoolID, "school-id"},
		{listview.FieldFirstName, "first"},
		{listview.FieldLastName, "last"},
		{listview.FieldEmail, "email"},
	}
	for _, fl := range flags {
		v := new(string)
		values[fl.field] = v
		addCmd.Flags().StringVar(v, fl.name, "", fl.field.Label())
	}

	return addCmd
}

// formError returns the first field error shown by the form.
func formError(fm *listview.Form) error {
	for _, f := range listview.Fields {
		if msg := fm.Error(f); msg != "" {
			return errors.Validation(f.Label(), msg)
		}
	}
	return errors.Validation(listview.FieldSchoolID.Label(), "not confirmed unique")
}

func init() {
	cmd.RootCmd.AddCommand(NewAddCmd(cmd.OpenGateway))
}
