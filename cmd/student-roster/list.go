/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"fmt"

	"github.com/cristianoliveira/student-roster/cmd"
	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/cristianoliveira/student-roster/internal/format"
	"github.com/cristianoliveira/student-roster/internal/gateway"
	"github.com/spf13/cobra"
)

// ListOptions holds the flags of the list command.
type ListOptions struct {
	Sort     string
	Desc     bool
	Page     int
	PageSize int
	Filters  []string
	Format   string
	Details  int
}

// query turns the flags into a gateway query. Unset flags fall back to
// configuration.
func (o ListOptions) query(c *cobra.Command) (domain.Query, error) {
	sort := cmd.ConfiguredSort()
	if o.Sort != "" {
		if !domain.IsStudentColumn(o.Sort) {
			return domain.Query{}, fmt.Errorf("invalid sort column: %s", o.Sort)
		}
		sort = domain.SortSpec{Column: o.Sort, Direction: domain.SortAsc}
	}
	if c.Flags().Changed("desc") {
		if o.Desc {
			sort.Direction = domain.SortDesc
		} else {
			sort.Direction = domain.SortAsc
		}
	}

	if o.Page < 1 {
		return domain.Query{}, fmt.Errorf("invalid page %d: pages start at 1", o.Page)
	}
	size := o.PageSize
	if size == 0 {
		size = cmd.ListOptions().PageSize
	}
	if size < 1 {
		return domain.Query{}, fmt.Errorf("invalid page size %d", size)
	}

	filters := domain.FilterSpec{}
	for _, raw := range o.Filters {
		f, err := domain.ParseFilter(raw)
		if err != nil {
			return domain.Query{}, err
		}
		filters.Set(f)
	}

	return domain.Query{
		Sort:    sort,
		Filters: filters,
		Window:  domain.PageWindow{Index: o.Page - 1, Size: size},
	}, nil
}

// NewListCmd creates the list command.
func NewListCmd(open cmd.GatewayOpener) *cobra.Command {
	if open == nil {
		panic("NewListCmd: open dependency cannot be nil")
	}

	opts := ListOptions{Page: 1}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of students",
		Long: `Print one page of students.

Filters use the form column:operator:value. Operators: eq, ne, sw,
contains, nc, ew or a full label such as "Starts with". Columns:
studentSchoolId, firstName, lastName, studentEmail.

Examples:
    student-roster list --sort firstName --desc
    student-roster list --filter lastName:sw:Ca --format json
    student-roster list --details 3`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			ft, err := format.ParseFormatterType(opts.Format)
			if err != nil {
				return err
			}
			q, err := opts.query(c)
			if err != nil {
				return err
			}

			gw, release, err := open()
			if err != nil {
				return err
			}
			defer release()

			f := format.NewFormatter(ft)
			if c.Flags().Changed("details") {
				return printDetails(c, gw, f, opts.Details, q.Window)
			}
			page, err := gw.FetchPage(c.Context(), q)
			if err != nil {
				return err
			}
			if len(page.Rows) > q.Window.Size {
				page.Rows = page.Rows[:q.Window.Size]
			}
			return f.FormatListing(format.NewListing(page, q.Window), c.OutOrStdout())
		},
	}

	listCmd.Flags().StringVar(&opts.Sort, "sort", "", "column to sort by (default from sort_column)")
	listCmd.Flags().BoolVar(&opts.Desc, "desc", false, "sort descending")
	listCmd.Flags().IntVar(&opts.Page, "page", 1, "page number, starting at 1")
	listCmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "students per page (default from page_size)")
	listCmd.Flags().StringArrayVar(&opts.Filters, "filter", nil, "filter as column:operator:value (repeatable)")
	listCmd.Flags().StringVar(&opts.Format, "format", string(format.FormatterTypeTable), "output format: table, compact or json")
	listCmd.Flags().IntVar(&opts.Details, "details", 0, "print the term records of the student with this id")

	return listCmd
}

func printDetails(c *cobra.Command, gw gateway.Gateway, f format.Formatter, id int, window domain.PageWindow) error {
	page, err := gw.FetchDetails(c.Context(), id, domain.DefaultDetailSort(), window)
	if err != nil {
		return err
	}
	return f.FormatDetails(page.Rows, c.OutOrStdout())
}

func init() {
	cmd.RootCmd.AddCommand(NewListCmd(cmd.OpenGateway))
}
