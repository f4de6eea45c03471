package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/cristianoliveira/student-roster/cmd"
	"github.com/cristianoliveira/student-roster/internal/colors"
	"github.com/cristianoliveira/student-roster/internal/gateway"
	"github.com/spf13/cobra"
)

// opener serves gw to a command and counts releases.
func opener(gw gateway.Gateway, released *int) cmd.GatewayOpener {
	return func() (gateway.Gateway, func(), error) {
		return gw, func() {
			if released != nil {
				*released++
			}
		}, nil
	}
}

// captureColors redirects console messages for the rest of the test.
func captureColors(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	colors.SetOutput(&out, &errOut)
	t.Cleanup(func() { colors.SetOutput(nil, nil) })
	return &out, &errOut
}

// execute runs c with args and returns what it wrote to its own output.
func execute(t *testing.T, c *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetIn(bytes.NewBufferString(stdin))
	c.SetArgs(args)
	c.SilenceUsage = true
	c.SilenceErrors = true
	err := c.ExecuteContext(context.Background())
	return out.String(), err
}
