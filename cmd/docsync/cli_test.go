package main_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsync"
	main "github.com/fwojciec/docsync/cmd/docsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"url": "u", "subpath": "s", "cooldown": "72h", "timeout": "60s"},
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"sync", "status", "history", "docs"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "docsync")
	assert.Contains(t, stdout.String(), "history")
}

func TestMain_Run_RejectsMissingWorkingDir(t *testing.T) {
	t.Parallel()

	err := main.NewMain().Run(context.Background(),
		[]string{"status", "-w", "/nonexistent/docsync/workdir"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Equal(t, docsync.EINVALID, docsync.ErrorCode(err))
}

func TestMain_Run_RejectsInvalidSyncConfig(t *testing.T) {
	t.Parallel()

	stderr := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(),
		[]string{"sync", "-w", t.TempDir(), "--url", "ftp://example.com/a.tar.gz"}, &bytes.Buffer{}, stderr)

	require.Error(t, err)
	assert.Equal(t, docsync.EINVALID, docsync.ErrorCode(err))
	assert.Contains(t, docsync.ErrorMessage(err), "must be an http(s) URL")
	assert.Empty(t, stderr.String())
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: 0},
		{name: "failure", err: docsync.Errorf(docsync.EDOWNLOAD, "HTTP 404 error downloading archive"), want: 1},
		{name: "interrupted", err: context.Canceled, want: 130},
		{name: "interrupted during a stage", err: docsync.WrapError(docsync.EDOWNLOAD, context.Canceled, "network error"), want: 130},
		{name: "wrapped plain error", err: fmt.Errorf("open: %w", errors.New("denied")), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, main.ExitCode(tt.err))
		})
	}
}
