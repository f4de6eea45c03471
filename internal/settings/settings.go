// Package settings persists the TUI view preferences between sessions.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/cristianoliveira/student-roster/internal/listview"
	"github.com/pelletier/go-toml/v2"
)

// File permission constants
const (
	FileModeDir  os.FileMode = 0755
	FileModeFile os.FileMode = 0644
)

// Filter is one saved column filter.
type Filter struct {
	Column   string `toml:"column"`
	Operator string `toml:"operator"`
	Value    string `toml:"value"`
}

// Settings holds TUI user preferences persisted to disk.
//
// Zero values mean "use the configuration default":
//
//	sortColumn = "lastName"
//	sortDirection = "asc"
//	pageSize = 10
//	detailPageSize = 5
//
//	[[filters]]
//	column = "firstName"
//	operator = "Contains"
//	value = "an"
//
// Settings are stored at ~/.config/student-roster/tui.toml
type Settings struct {
	SortColumn     string   `toml:"sortColumn"`
	SortDirection  string   `toml:"sortDirection"`
	PageSize       int      `toml:"pageSize"`
	DetailPageSize int      `toml:"detailPageSize"`
	Filters        []Filter `toml:"filters"`
}

// DefaultSettings returns settings that keep every configured default.
func DefaultSettings() *Settings {
	return &Settings{}
}

// Load reads settings from the config directory.
// If the settings file does not exist, returns default settings.
func Load() (*Settings, error) {
	path := getSettingsPath()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	s := DefaultSettings()
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	if err := Validate(s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// Save writes settings to the config directory, creating it if needed.
func Save(s *Settings) error {
	if err := Validate(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	path := getSettingsPath()
	if err := os.MkdirAll(filepath.Dir(path), FileModeDir); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, FileModeFile); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// Validate checks that settings values are valid.
func Validate(s *Settings) error {
	if s == nil {
		return fmt.Errorf("settings cannot be nil")
	}
	if s.SortColumn != "" && !domain.IsStudentColumn(s.SortColumn) {
		return fmt.Errorf("invalid sortColumn value: %s", s.SortColumn)
	}
	if _, err := domain.ParseSortDirection(s.SortDirection); err != nil {
		return err
	}
	if s.PageSize < 0 {
		return fmt.Errorf("invalid pageSize value: %d", s.PageSize)
	}
	if s.DetailPageSize < 0 {
		return fmt.Errorf("invalid detailPageSize value: %d", s.DetailPageSize)
	}
	for _, f := range s.Filters {
		if !domain.IsStudentColumn(f.Column) {
			return fmt.Errorf("invalid filter column: %s", f.Column)
		}
		if _, err := domain.ParseFilterOperator(f.Operator); err != nil {
			return err
		}
	}
	return nil
}

// Apply overlays the saved preferences on opts.
func (s *Settings) Apply(opts listview.Options) listview.Options {
	if s == nil {
		return opts
	}
	if s.SortColumn != "" {
		dir, err := domain.ParseSortDirection(s.SortDirection)
		if err != nil {
			dir = domain.SortAsc
		}
		opts.Sort = domain.SortSpec{Column: s.SortColumn, Direction: dir}
	}
	if s.PageSize > 0 {
		opts.PageSize = s.PageSize
	}
	if s.DetailPageSize > 0 {
		opts.DetailPageSize = s.DetailPageSize
	}
	if len(s.Filters) > 0 {
		opts.Filters = domain.FilterSpec{}
		for _, f := range s.Filters {
			op, err := domain.ParseFilterOperator(f.Operator)
			if err != nil {
				continue
			}
			opts.Filters.Set(domain.Filter{Field: f.Column, Operator: op, Value: f.Value})
		}
	}
	return opts
}

// FromList captures the view state of c.
func FromList(c *listview.Controller) *Settings {
	sort := c.Sort()
	s := &Settings{
		SortColumn:     sort.Column,
		SortDirection:  sort.Direction.String(),
		PageSize:       c.Window().Size,
		DetailPageSize: c.DetailPageSize(),
	}
	for _, f := range c.Filters().Sorted() {
		s.Filters = append(s.Filters, Filter{Column: f.Field, Operator: f.Operator.String(), Value: f.Value})
	}
	return s
}
