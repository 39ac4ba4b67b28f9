package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"welldash/internal/config"
)

func TestResolveConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "welldash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: from-file\naddr: 127.0.0.1:9000\n"), 0o644))

	opts := &options{}
	cmd := newRootCommand(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--addr", "127.0.0.1:9999", "--debug=false"}))

	cfg, err := resolveConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.DataDir)
	assert.Equal(t, "127.0.0.1:9999", cfg.Addr)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "*.LAS", cfg.Pattern)
}

func TestResolveConfigRejectsBadPattern(t *testing.T) {
	opts := &options{}
	cmd := newRootCommand(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--pattern", "["}))
	_, err := resolveConfig(cmd, opts)
	assert.Error(t, err)
}

func TestRunFailsOnMalformedWell(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BROKEN.LAS"), []byte("~C\nDEPT.M :\n~A\n1 x\n"), 0o644))

	cfg := config.Default()
	cfg.DataDir = dir
	err := run(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BROKEN.LAS")
}

func TestRootCommandRejectsArgs(t *testing.T) {
	cmd := newRootCommand(&options{})
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	assert.Error(t, cmd.Execute())
}
