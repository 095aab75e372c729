package parsnp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var job = Job{
	Reference: "/work/clean/k12.fasta",
	DataDir:   "/work/clean",
	OutDir:    "/work/out",
	Threads:   8,
}

func TestDockerCommand(t *testing.T) {
	d := DockerRunner{Image: "staphb/parsnp:1.5.6", Platform: "linux/amd64"}
	assert.Equal(t, []string{
		"docker", "run", "--rm", "--platform=linux/amd64",
		"-v", "/work/clean:/data",
		"-v", "/work/out:/out",
		"staphb/parsnp:1.5.6",
		"parsnp", "-r", "/data/k12.fasta", "-d", "/data", "-o", "/out", "-p", "8",
	}, d.Command(job))
}

func TestLocalCommand(t *testing.T) {
	l := LocalRunner{Binary: "/opt/homebrew/bin/parsnp"}
	assert.Equal(t, []string{
		"/opt/homebrew/bin/parsnp", "-r", "/work/clean/k12.fasta",
		"-d", "/work/clean", "-o", "/work/out", "-p", "8",
	}, l.Command(job))
}

func TestFormatCommand(t *testing.T) {
	got := FormatCommand([]string{"docker", "-v", "/Users/me/E.coli project:/data"})
	assert.Equal(t, `docker -v "/Users/me/E.coli project:/data"`, got)
}

func fakeBinary(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake needs a POSIX shell")
	}
	fn := filepath.Join(t.TempDir(), "parsnp")
	require.NoError(t, os.WriteFile(fn, []byte("#!/bin/sh\n"+script), 0o755))
	return fn
}

func TestSelect(t *testing.T) {
	bin := fakeBinary(t, "exit 0\n")
	yes := func(context.Context) bool { return true }
	no := func(context.Context) bool { return false }
	ctx := context.Background()

	r, fell, err := Selector{Kind: "auto", Binary: bin, DockerAvailable: yes}.Select(ctx)
	require.NoError(t, err)
	assert.IsType(t, DockerRunner{}, r)
	assert.False(t, fell)

	r, fell, err = Selector{Kind: "auto", Binary: bin, DockerAvailable: no}.Select(ctx)
	require.NoError(t, err)
	assert.IsType(t, LocalRunner{}, r)
	assert.True(t, fell)

	_, _, err = Selector{Kind: "auto", Binary: filepath.Join(t.TempDir(), "none"), DockerAvailable: no}.Select(ctx)
	assert.ErrorIs(t, err, ErrNoRunner)

	r, _, err = Selector{Kind: "docker", DockerAvailable: no}.Select(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Docker", r.Name())

	_, _, err = Selector{Kind: "local"}.Select(ctx)
	assert.ErrorIs(t, err, ErrNoRunner)

	_, _, err = Selector{Kind: "podman"}.Select(ctx)
	assert.ErrorContains(t, err, "unknown runner")
}

func TestLocalRunnerRuns(t *testing.T) {
	bin := fakeBinary(t, `
while [ $# -gt 0 ]; do
  case "$1" in
    -o) out="$2"; shift ;;
  esac
  shift
done
echo "(a:0.1,b:0.2);" > "$out/parsnp.tree"
`)
	out := t.TempDir()
	j := Job{Reference: "ref.fasta", DataDir: t.TempDir(), OutDir: out, Threads: 1}
	require.NoError(t, LocalRunner{Binary: bin}.Run(context.Background(), j))
	assert.True(t, Exists(OutputsIn(out).Tree))
	assert.False(t, Exists(OutputsIn(out).VCF))
}

func TestLocalRunnerExitError(t *testing.T) {
	bin := fakeBinary(t, "echo boom >&2\nexit 3\n")
	err := LocalRunner{Binary: bin}.Run(context.Background(), job)

	var ee *ExitError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 3, ee.Code)
	assert.Contains(t, ee.Error(), "exit code 3")
}

func TestOutputsIn(t *testing.T) {
	o := OutputsIn("/out")
	assert.Equal(t, "/out/parsnp.tree", o.Tree)
	assert.Equal(t, "/out/parsnp.xmfa", o.XMFA)
	assert.Equal(t, "/out/parsnp_renamed.tree", o.Renamed)
	assert.False(t, Exists("/out"))
}
