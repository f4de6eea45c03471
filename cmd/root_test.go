package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/cristianoliveira/student-roster/internal/config"
	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/cristianoliveira/student-roster/internal/listview"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_STATE_HOME", dir)
	t.Setenv("STUDENT_ROSTER_LOGGING_ENABLED", "false")
	config.Load()
}

func TestSetupAppliesBackendFlag(t *testing.T) {
	isolateConfig(t)
	flag := RootCmd.PersistentFlags().Lookup("backend")
	t.Cleanup(func() {
		_ = flag.Value.Set("")
		flag.Changed = false
	})
	require.NoError(t, RootCmd.PersistentFlags().Set("backend", "memory"))

	require.NoError(t, setup(RootCmd))

	assert.Equal(t, "memory", config.Get("gateway_backend", ""))
}

func TestSetupKeepsConfiguredBackend(t *testing.T) {
	isolateConfig(t)
	t.Setenv("STUDENT_ROSTER_GATEWAY_BACKEND", "http")

	require.NoError(t, setup(RootCmd))

	assert.Equal(t, "http", config.Get("gateway_backend", ""))
}

func TestConfiguredSort(t *testing.T) {
	isolateConfig(t)

	assert.Equal(t, domain.DefaultStudentSort(), ConfiguredSort())

	config.Set("sort_column", domain.ColumnFirstName)
	config.Set("sort_direction", "desc")
	assert.Equal(t, domain.SortSpec{Column: domain.ColumnFirstName, Direction: domain.SortDesc}, ConfiguredSort())

	config.Set("sort_column", "age")
	assert.Equal(t, domain.DefaultStudentSort(), ConfiguredSort())
}

func TestListOptionsFromConfig(t *testing.T) {
	isolateConfig(t)
	config.Set("page_size", "9")
	config.Set("detail_page_size", "3")

	opts := ListOptions()

	assert.Equal(t, 9, opts.PageSize)
	assert.Equal(t, 3, opts.DetailPageSize)
	assert.NotNil(t, opts.Logger)
}

func TestOpenGatewayMemory(t *testing.T) {
	isolateConfig(t)
	config.Set("gateway_backend", "memory")

	gw, release, err := OpenGateway()
	require.NoError(t, err)
	defer release()

	page, err := gw.FetchPage(context.Background(), domain.Query{
		Sort:    domain.DefaultStudentSort(),
		Filters: domain.FilterSpec{},
		Window:  domain.PageWindow{Index: 0, Size: listview.DefaultPageSize},
	})
	require.NoError(t, err)
	assert.Equal(t, 12, page.Total)
}

func TestOpenGatewayUnknownBackend(t *testing.T) {
	isolateConfig(t)
	config.Set("gateway_backend", "carrier-pigeon")

	gw, release, err := OpenGateway()

	assert.Error(t, err)
	assert.Nil(t, gw)
	assert.Nil(t, release)
}

func TestHelpListsCommandsInOrder(t *testing.T) {
	list := &cobra.Command{Use: "list", Short: "Print one page of students"}
	version := &cobra.Command{Use: "version", Short: "Show version information"}
	RootCmd.AddCommand(version, list)
	t.Cleanup(func() { RootCmd.RemoveCommand(version, list) })
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	t.Cleanup(func() { RootCmd.SetOut(nil) })

	printHelpText(RootCmd)

	help := out.String()
	assert.Contains(t, help, "Print one page of students")
	assert.Contains(t, help, "--backend")
	assert.Less(t, strings.Index(help, "    list "), strings.Index(help, "    version "))
}
