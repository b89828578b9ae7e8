package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcomment/internal/cli"
	"github.com/yaklabco/mdcomment/pkg/runner"
)

var testInfo = cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)
	assert.Equal(t, "mdcomment", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	for _, path := range [][]string{{"convert"}, {"config", "init"}, {"config", "show"}, {"version"}} {
		sub, _, err := cmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], sub.Name())
	}
}

func TestConvertCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	convert, _, err := cmd.Find([]string{"convert"})
	require.NoError(t, err)

	for _, name := range []string{
		"output-dir", "format", "jobs", "page", "watch", "stdin-name",
		"include", "ignore", "image-path", "mainpage", "follow-symlinks", "summary",
	} {
		assert.NotNil(t, convert.Flags().Lookup(name), "flag %q", name)
	}
	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "persistent flag %q", name)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	out := stdout.String()
	assert.Contains(t, out, "mdcomment")
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc123")
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"convert", "--help"})

	require.NoError(t, cmd.Execute())
	out := stdout.String()
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "mdcomment convert [paths...]")
	assert.Contains(t, out, "Flags:")
	assert.Contains(t, out, "-o, --output-dir string")
	assert.Contains(t, out, `(default "text")`)
	assert.Contains(t, out, "Global Flags:")
	assert.Contains(t, out, "--debug")

	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, strings.TrimRight(line, " "), line, "trailing whitespace in %q", line)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, cli.ExitSuccess},
		{"conversion", cli.ErrConversionFailed, cli.ExitConversionError},
		{"wrapped conversion", fmt.Errorf("run: %w", cli.ErrConversionFailed), cli.ExitConversionError},
		{"usage", errors.New("unknown flag"), cli.ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(&runner.Result{}))
	assert.Equal(t, cli.ExitConversionError,
		cli.ExitCodeFromResult(&runner.Result{Stats: runner.Stats{FilesErrored: 1}}))
}
