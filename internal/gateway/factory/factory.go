// Package factory selects a gateway implementation from configuration.
package factory

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/student-roster/internal/colors"
	"github.com/cristianoliveira/student-roster/internal/config"
	"github.com/cristianoliveira/student-roster/internal/gateway"
	"github.com/cristianoliveira/student-roster/internal/gateway/httpgw"
	"github.com/cristianoliveira/student-roster/internal/gateway/memory"
	"github.com/cristianoliveira/student-roster/internal/gateway/sqlite"
	"github.com/cristianoliveira/student-roster/internal/logging"
)

const (
	// BackendHTTP selects the REST API client.
	BackendHTTP = "http"
	// BackendSQLite selects the local SQLite database.
	BackendSQLite = "sqlite"
	// BackendMemory selects the in-process source seeded with sample data.
	BackendMemory = "memory"
)

var (
	_ gateway.Gateway = (*httpgw.Client)(nil)
	_ gateway.Gateway = (*sqlite.Gateway)(nil)
	_ gateway.Gateway = (*memory.Gateway)(nil)
)

// NewFromConfig creates a gateway for the configured backend.
func NewFromConfig() (gateway.Gateway, error) {
	return NewForBackend(config.Get("gateway_backend", BackendSQLite))
}

// NewForBackend creates a gateway for the provided backend name.
func NewForBackend(backend string) (gateway.Gateway, error) {
	logger := logging.With("component", "gateway", "backend", backend)
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		path := config.Get("db_path", "")
		colors.Debug("opening sqlite gateway at", path)
		gw, err := sqlite.Open(path, sqlite.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return gw, nil
	case BackendHTTP:
		client, err := httpgw.New(httpgw.Options{
			BaseURL:  config.Get("api_base_url", ""),
			Timeout:  config.GetDuration("request_timeout", httpgw.DefaultTimeout),
			RetryMax: config.GetInt("retry_max", httpgw.DefaultRetryMax),
			Logger:   logger,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case BackendMemory:
		return memory.NewSeeded(memory.WithLogger(logger)), nil
	default:
		return nil, fmt.Errorf("unknown gateway backend %q: must be one of %s, %s, %s",
			backend, BackendHTTP, BackendSQLite, BackendMemory)
	}
}
