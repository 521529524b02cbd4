package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x5844/sbpwave/internal/config"
)

func TestParseSizesAndProcs(t *testing.T) {
	sizes, err := parseSizes("21, 41,81")
	require.NoError(t, err)
	assert.Equal(t, []int{21, 41, 81}, sizes)
	_, err = parseSizes("21,x")
	require.Error(t, err)

	procs, err := parseProcs("3x2")
	require.NoError(t, err)
	assert.Equal(t, [2]int{3, 2}, procs)
	for _, bad := range []string{"3", "ax2", "3xb"} {
		_, err = parseProcs(bad)
		require.Error(t, err, bad)
	}
}

func TestResolveAppliesSetFlagsOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte("pde = \"advection\"\norder = 6\n"), 0o644))

	f, set, err := parseFlags([]string{"-config", path, "-order", "2", "-procs", "1x3"}, io.Discard)
	require.NoError(t, err)
	cfg, err := resolve(f, set)
	require.NoError(t, err)

	assert.Equal(t, "advection", cfg.PDE)
	assert.Equal(t, 2, cfg.Order)
	assert.Equal(t, [2]int{1, 3}, cfg.Grid.Procs)
	assert.Equal(t, config.Default().Study.Sizes, cfg.Study.Sizes)

	f, set, err = parseFlags([]string{"-order", "5"}, io.Discard)
	require.NoError(t, err)
	_, err = resolve(f, set)
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestRunPrintsConvergenceTable(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-pde", "acowave", "-order", "4", "-sizes", "31,61", "-procs", "2x1", "-json",
	}, &stdout, &stderr)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "N"))
	assert.True(t, strings.HasPrefix(lines[1], "31"))
	assert.True(t, strings.HasPrefix(lines[2], "61"))
	assert.Contains(t, stderr.String(), "operator self-check")
	assert.Contains(t, stderr.String(), "convergence study done")
}

func TestRunQuiet(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-pde", "advection", "-order", "2", "-sizes", "21,41", "-quiet",
	}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunVersion(t *testing.T) {
	var stderr bytes.Buffer
	err := run(context.Background(), []string{"-version"}, io.Discard, &stderr)
	require.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, stderr.String(), "sbpcheck version dev")
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := run(ctx, []string{"-sizes", "31", "-procs", "2x2", "-quiet"}, io.Discard, io.Discard)
	require.ErrorIs(t, err, context.Canceled)
}
