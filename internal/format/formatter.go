// Package format renders student pages for CLI commands.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/student-roster/internal/domain"
)

// Listing is one page of students plus the paging facts shown with it.
type Listing struct {
	Students  []domain.Student `json:"students"`
	Total     int              `json:"totalStudents"`
	Page      int              `json:"page"`
	PageSize  int              `json:"pageSize"`
	PageCount int              `json:"pageCount"`
}

// NewListing builds a Listing from a fetched page.
func NewListing(page domain.Page[domain.Student], window domain.PageWindow) Listing {
	rows := page.Rows
	if rows == nil {
		rows = []domain.Student{}
	}
	return Listing{
		Students:  rows,
		Total:     page.Total,
		Page:      window.Index,
		PageSize:  window.Size,
		PageCount: window.PageCount(page.Total),
	}
}

// Formatter defines the interface for output formatters.
type Formatter interface {
	// FormatListing writes one page of students.
	FormatListing(l Listing, writer io.Writer) error

	// FormatDetails writes the term records of one student.
	FormatDetails(details []domain.StudentDetail, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeTable displays students in a table with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeCompact displays one student per line.
	FormatterTypeCompact FormatterType = "compact"

	// FormatterTypeJSON displays the listing as JSON.
	FormatterTypeJSON FormatterType = "json"
)

// ParseFormatterType validates a --format value.
func ParseFormatterType(s string) (FormatterType, error) {
	switch t := FormatterType(strings.ToLower(strings.TrimSpace(s))); t {
	case FormatterTypeTable, FormatterTypeCompact, FormatterTypeJSON:
		return t, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of table, compact, json", s)
	}
}

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeCompact:
		return &CompactFormatter{}
	case FormatterTypeJSON:
		return &JSONFormatter{}
	default:
		return NewTableFormatter()
	}
}

// JSONFormatter writes indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) FormatListing(l Listing, writer io.Writer) error {
	return writeJSON(writer, l)
}

func (f *JSONFormatter) FormatDetails(details []domain.StudentDetail, writer io.Writer) error {
	if details == nil {
		details = []domain.StudentDetail{}
	}
	return writeJSON(writer, details)
}

func writeJSON(writer io.Writer, v any) error {
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// CompactFormatter writes one tab separated line per row.
type CompactFormatter struct{}

func (f *CompactFormatter) FormatListing(l Listing, writer io.Writer) error {
	for _, s := range l.Students {
		if _, err := fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n", s.ID, s.SchoolID, s.FullName(), s.Email); err != nil {
			return err
		}
	}
	return nil
}

func (f *CompactFormatter) FormatDetails(details []domain.StudentDetail, writer io.Writer) error {
	for _, d := range details {
		if _, err := fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", d.TermCreatedDate.Format("2006-01-02"), d.Term, d.Course, d.Grade); err != nil {
			return err
		}
	}
	return nil
}
