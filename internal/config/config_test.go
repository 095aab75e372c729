package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8, cfg.Threads)
	assert.Equal(t, "staphb/parsnp:1.5.6", cfg.Image)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "treeprep.yaml")
	require.NoError(t, os.WriteFile(fn, []byte(`
source: /data/genomes
threads: 4
runner: local
no_rename: true
`), 0o644))

	cfg, err := Load(fn)
	require.NoError(t, err)
	assert.Equal(t, "/data/genomes", cfg.Source)
	assert.Equal(t, 4, cfg.Threads)
	assert.Equal(t, RunnerLocal, cfg.Runner)
	assert.True(t, cfg.NoRename)
	assert.False(t, cfg.Quiet)
	// untouched keys keep defaults
	assert.Equal(t, Default().Image, cfg.Image)
	assert.Equal(t, Default().Work, cfg.Work)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("threads: [1, 2"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "parsing YAML")
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"threads", func(c *Config) { c.Threads = 0 }, "threads must be >= 1"},
		{"runner", func(c *Config) { c.Runner = "podman" }, "invalid runner"},
		{"source", func(c *Config) { c.Source = " " }, "source directory is required"},
		{"docker image", func(c *Config) { c.Runner = RunnerDocker; c.Image = "" }, "needs an image"},
		{"reference path", func(c *Config) { c.Reference = "a/b.fasta" }, "must be a file name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.want)
		})
	}
}

func TestResolveExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := Default()
	require.NoError(t, cfg.Resolve())
	assert.Equal(t, filepath.Join(home, "Downloads", "E.coli project"), cfg.Source)
	assert.Equal(t, "/opt/homebrew/bin/parsnp", cfg.ParsnpBin)
}

func TestExpandHome(t *testing.T) {
	p, err := ExpandHome("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", p)

	p, err = ExpandHome("~user/x")
	require.NoError(t, err)
	assert.Equal(t, "~user/x", p)
}
