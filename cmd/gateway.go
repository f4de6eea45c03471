/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/cristianoliveira/student-roster/internal/colors"
	"github.com/cristianoliveira/student-roster/internal/config"
	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/cristianoliveira/student-roster/internal/gateway"
	"github.com/cristianoliveira/student-roster/internal/gateway/factory"
	"github.com/cristianoliveira/student-roster/internal/listview"
	"github.com/cristianoliveira/student-roster/internal/logging"
)

// GatewayOpener returns the student source for a command and a func that
// releases it.
type GatewayOpener func() (gateway.Gateway, func(), error)

// OpenGateway opens the configured backend.
func OpenGateway() (gateway.Gateway, func(), error) {
	gw, err := factory.NewFromConfig()
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if c, ok := gw.(gateway.Closer); ok {
			if err := c.Close(); err != nil {
				colors.Debug("closing gateway:", err.Error())
			}
		}
	}
	return gw, release, nil
}

// ConfiguredSort returns the sort named by sort_column and sort_direction,
// falling back to last name ascending when either is invalid.
func ConfiguredSort() domain.SortSpec {
	column := config.Get("sort_column", domain.ColumnLastName)
	direction, err := domain.ParseSortDirection(config.Get("sort_direction", "asc"))
	if err != nil || !domain.IsStudentColumn(column) {
		return domain.DefaultStudentSort()
	}
	return domain.SortSpec{Column: column, Direction: direction}
}

// ListOptions returns controller options read from configuration.
func ListOptions() listview.Options {
	return listview.Options{
		PageSize:       config.GetInt("page_size", listview.DefaultPageSize),
		DetailPageSize: config.GetInt("detail_page_size", listview.DefaultDetailPageSize),
		Sort:           ConfiguredSort(),
		Logger:         logging.GetGlobal(),
	}
}
