package main

import (
	"errors"
	"testing"

	"github.com/cristianoliveira/student-roster/internal/colors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enableStructured(t *testing.T) {
	t.Helper()
	colors.EnableStructuredLogging()
	colors.SetDebug(true)
	t.Cleanup(func() {
		colors.EnableStructuredLogging()
		colors.SetDebug(false)
	})
}

func TestRunNonTUILogsStartupAndCompletion(t *testing.T) {
	enableStructured(t)
	_, errOut := captureColors(t)

	exitCode := run([]string{"list"}, func() error { return nil })

	require.Equal(t, 0, exitCode)
	output := errOut.String()
	assert.Contains(t, output, `"component":"startup"`)
	assert.Contains(t, output, `"status":"started"`)
	assert.Contains(t, output, `"status":"completed"`)
}

func TestRunNonTUILogsFailure(t *testing.T) {
	enableStructured(t)
	_, errOut := captureColors(t)

	exitCode := run([]string{"list"}, func() error { return errors.New("boom") })

	require.Equal(t, 1, exitCode)
	output := errOut.String()
	assert.Contains(t, output, `"status":"failed"`)
	assert.Contains(t, output, `"error":"boom"`)
	assert.NotContains(t, output, `"status":"completed"`)
}

func TestRunTUISkipsStructuredLogs(t *testing.T) {
	enableStructured(t)
	_, errOut := captureColors(t)

	exitCode := run([]string{"tui"}, func() error { return nil })

	require.Equal(t, 0, exitCode)
	assert.Empty(t, errOut.String())
}
