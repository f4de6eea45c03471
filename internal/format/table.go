package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cristianoliveira/student-roster/internal/colors"
	"github.com/cristianoliveira/student-roster/internal/domain"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// ShowFooter prints the "page x of y" line under the rows.
	ShowFooter bool

	// HeaderColor is the color to use for headers.
	HeaderColor string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		ShowFooter:  true,
		HeaderColor: colors.Blue,
	}
}

// TableColumn represents a column in a table.
type TableColumn[T any] struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in characters.
	Width int

	// Alignment is the text alignment (left, right, center).
	Alignment string

	// Extractor extracts the value from a row.
	Extractor func(T) string
}

// TableFormatter writes aligned columns.
type TableFormatter struct {
	config         *TableConfig
	studentColumns []TableColumn[domain.Student]
	detailColumns  []TableColumn[domain.StudentDetail]
}

// NewTableFormatter creates a TableFormatter with the default columns.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		config: DefaultTableConfig(),
		studentColumns: []TableColumn[domain.Student]{
			{Name: "ID", Width: 4, Alignment: "right", Extractor: func(s domain.Student) string { return strconv.Itoa(s.ID) }},
			{Name: "School ID", Width: 10, Extractor: func(s domain.Student) string { return s.SchoolID }},
			{Name: "First name", Width: 14, Extractor: func(s domain.Student) string { return s.FirstName }},
			{Name: "Last name", Width: 14, Extractor: func(s domain.Student) string { return s.LastName }},
			{Name: "Email", Width: 32, Extractor: func(s domain.Student) string { return s.Email }},
		},
		detailColumns: []TableColumn[domain.StudentDetail]{
			{Name: "Created", Width: 10, Extractor: func(d domain.StudentDetail) string { return d.TermCreatedDate.Format("2006-01-02") }},
			{Name: "Term", Width: 12, Extractor: func(d domain.StudentDetail) string { return d.Term }},
			{Name: "Course", Width: 24, Extractor: func(d domain.StudentDetail) string { return d.Course }},
			{Name: "Grade", Width: 5, Alignment: "center", Extractor: func(d domain.StudentDetail) string { return d.Grade }},
		},
	}
}

// WithConfig replaces the table configuration.
func (f *TableFormatter) WithConfig(cfg *TableConfig) *TableFormatter {
	f.config = cfg
	return f
}

// FormatListing writes the students of l, then a paging footer.
func (f *TableFormatter) FormatListing(l Listing, writer io.Writer) error {
	if len(l.Students) == 0 {
		_, err := fmt.Fprintln(writer, "No students found.")
		return err
	}
	if err := writeTable(f.config, f.studentColumns, l.Students, writer); err != nil {
		return err
	}
	if !f.config.ShowFooter {
		return nil
	}
	_, err := fmt.Fprintf(writer, "\nPage %d of %d (%d students)\n", l.Page+1, l.PageCount, l.Total)
	return err
}

// FormatDetails writes the term records of one student.
func (f *TableFormatter) FormatDetails(details []domain.StudentDetail, writer io.Writer) error {
	if len(details) == 0 {
		_, err := fmt.Fprintln(writer, "No records.")
		return err
	}
	return writeTable(f.config, f.detailColumns, details, writer)
}

func writeTable[T any](cfg *TableConfig, columns []TableColumn[T], rows []T, writer io.Writer) error {
	if cfg.ShowHeaders {
		headers := make([]string, len(columns))
		separators := make([]string, len(columns))
		for i, col := range columns {
			headers[i] = formatString(col.Name, col.Width, "left")
			separators[i] = makeSeparator(col.Width)
		}
		if _, err := fmt.Fprintf(writer, "%s%s%s\n", cfg.HeaderColor, strings.Join(headers, "  "), colors.Reset); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(writer, "%s%s%s\n", cfg.HeaderColor, strings.Join(separators, "  "), colors.Reset); err != nil {
			return err
		}
	}
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = fitString(col.Extractor(row), col.Width, col.Alignment)
		}
		if _, err := fmt.Fprintln(writer, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

// Helper functions

// formatString pads or cuts s to width runes using the given alignment.
func formatString(s string, width int, alignment string) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}

	pad := width - len(r)
	switch alignment {
	case "right":
		return strings.Repeat(" ", pad) + s
	case "center":
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default: // left
		return s + strings.Repeat(" ", pad)
	}
}

// fitString is formatString with "..." marking truncated values.
func fitString(s string, width int, alignment string) string {
	r := []rune(s)
	if len(r) <= width || width < 3 {
		return formatString(s, width, alignment)
	}
	return string(r[:width-3]) + "..."
}

// makeSeparator creates a separator line of the specified width.
func makeSeparator(width int) string {
	return strings.Repeat("-", width)
}
