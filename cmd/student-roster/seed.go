/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/student-roster/cmd"
	"github.com/cristianoliveira/student-roster/internal/colors"
	"github.com/cristianoliveira/student-roster/internal/config"
	"github.com/cristianoliveira/student-roster/internal/gateway/sqlite"
	"github.com/cristianoliveira/student-roster/internal/logging"
	"github.com/spf13/cobra"
)

type seeder interface {
	Seed(ctx context.Context, reset bool) (int, error)
	Close() error
}

func openSQLite(path string) (seeder, error) {
	gw, err := sqlite.Open(path, sqlite.WithLogger(logging.With("component", "seed")))
	if err != nil {
		return nil, err
	}
	return gw, nil
}

// NewSeedCmd creates the seed command.
func NewSeedCmd(open func(path string) (seeder, error)) *cobra.Command {
	if open == nil {
		panic("NewSeedCmd: open dependency cannot be nil")
	}

	var (
		reset bool
		path  string
	)
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample students into the local database",
		Long: `Load the sample roster into the local SQLite database.

An existing roster is left alone unless --reset is given.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if path == "" {
				path = config.Get("db_path", "")
			}
			if path == "" {
				return fmt.Errorf("no database path: set db_path or pass --db")
			}

			db, err := open(path)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			n, err := db.Seed(c.Context(), reset)
			if err != nil {
				return err
			}
			if n == 0 {
				colors.Info("Database already has students; use --reset to replace them")
				return nil
			}
			colors.Success(fmt.Sprintf("Seeded %d students into %s", n, path))
			return nil
		},
	}
	seedCmd.Flags().BoolVar(&reset, "reset", false, "remove existing students first")
	seedCmd.Flags().StringVar(&path, "db", "", "database file (default from db_path)")

	return seedCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewSeedCmd(openSQLite))
}
