/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"encoding/json"
	"fmt"

	"github.com/cristianoliveira/student-roster/cmd"
	"github.com/cristianoliveira/student-roster/internal/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command. current supplies the build info.
func NewVersionCmd(current func() version.Info) *cobra.Command {
	if current == nil {
		panic("NewVersionCmd: current dependency cannot be nil")
	}

	var asJSON bool
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of student-roster.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := current()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			v := info.Version
			if info.Commit != "unknown" {
				v += "+" + info.Commit
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", info.Name, v)
			return nil
		},
	}
	versionCmd.Flags().BoolVar(&asJSON, "json", false, "print build information as JSON")

	return versionCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewVersionCmd(version.Current))
}
