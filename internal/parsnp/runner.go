// Package parsnp invokes the external Parsnp core-genome aligner, either in
// a Docker container or as a local binary, and locates its outputs.
package parsnp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNoRunner means neither Docker nor a local Parsnp binary is usable.
var ErrNoRunner = errors.New("no Parsnp runner available")

// Job is one Parsnp invocation.
type Job struct {
	Reference string // canonical reference file, inside DataDir
	DataDir   string // directory of canonical genomes
	OutDir    string // Parsnp output directory
	Threads   int
}

// Runner executes a Job.
type Runner interface {
	Name() string
	Command(job Job) []string
	Run(ctx context.Context, job Job) error
}

// ExitError reports a non-zero Parsnp exit.
type ExitError struct {
	Runner string
	Code   int
	Err    error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("parsnp (%s) failed with exit code %d", e.Runner, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// DockerRunner runs Parsnp from a container image, mounting DataDir at /data
// and OutDir at /out.
type DockerRunner struct {
	Image    string
	Platform string
	Stdout   io.Writer
	Stderr   io.Writer
}

func (d DockerRunner) Name() string { return "Docker" }

func (d DockerRunner) Command(job Job) []string {
	cmd := []string{"docker", "run", "--rm"}
	if d.Platform != "" {
		cmd = append(cmd, "--platform="+d.Platform)
	}
	return append(cmd,
		"-v", job.DataDir+":/data",
		"-v", job.OutDir+":/out",
		d.Image,
		"parsnp", "-r", "/data/"+filepath.Base(job.Reference),
		"-d", "/data", "-o", "/out", "-p", strconv.Itoa(job.Threads),
	)
}

func (d DockerRunner) Run(ctx context.Context, job Job) error {
	return run(ctx, d.Name(), d.Command(job), d.Stdout, d.Stderr)
}

// LocalRunner runs an installed Parsnp binary.
type LocalRunner struct {
	Binary string
	Stdout io.Writer
	Stderr io.Writer
}

func (l LocalRunner) Name() string { return "local binary" }

func (l LocalRunner) Command(job Job) []string {
	return []string{
		l.Binary, "-r", job.Reference, "-d", job.DataDir,
		"-o", job.OutDir, "-p", strconv.Itoa(job.Threads),
	}
}

func (l LocalRunner) Run(ctx context.Context, job Job) error {
	return run(ctx, l.Name(), l.Command(job), l.Stdout, l.Stderr)
}

func run(ctx context.Context, name string, argv []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = orDiscard(stdout)
	cmd.Stderr = orDiscard(stderr)
	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return &ExitError{Runner: name, Code: ee.ExitCode(), Err: err}
	}
	return fmt.Errorf("parsnp (%s): %w", name, err)
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// FormatCommand renders argv for logging, quoting arguments with spaces.
func FormatCommand(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		if strings.ContainsAny(a, " \t") {
			a = strconv.Quote(a)
		}
		parts[i] = a
	}
	return strings.Join(parts, " ")
}

// HaveDocker reports whether `docker --version` succeeds.
func HaveDocker(ctx context.Context) bool {
	return exec.CommandContext(ctx, "docker", "--version").Run() == nil
}

// Selector picks a Runner. DockerAvailable is injectable for tests.
type Selector struct {
	Kind            string // auto | docker | local
	Image           string
	Platform        string
	Binary          string
	Stdout, Stderr  io.Writer
	DockerAvailable func(context.Context) bool
}

// Select returns the runner for s.Kind. Auto prefers Docker and falls back
// to the local binary; fellBack reports that fallback.
func (s Selector) Select(ctx context.Context) (r Runner, fellBack bool, err error) {
	docker := DockerRunner{Image: s.Image, Platform: s.Platform, Stdout: s.Stdout, Stderr: s.Stderr}
	local := LocalRunner{Binary: s.Binary, Stdout: s.Stdout, Stderr: s.Stderr}
	have := s.DockerAvailable
	if have == nil {
		have = HaveDocker
	}

	switch s.Kind {
	case "docker":
		return docker, false, nil
	case "local":
		if err := checkBinary(s.Binary); err != nil {
			return nil, false, err
		}
		return local, false, nil
	case "", "auto":
		if have(ctx) {
			return docker, false, nil
		}
		if err := checkBinary(s.Binary); err != nil {
			return nil, true, fmt.Errorf("%w: docker not found and %v", ErrNoRunner, err)
		}
		return local, true, nil
	}
	return nil, false, fmt.Errorf("unknown runner %q", s.Kind)
}

func checkBinary(path string) error {
	if path == "" {
		return fmt.Errorf("%w: no parsnp binary configured", ErrNoRunner)
	}
	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: parsnp not found at %s", ErrNoRunner, path)
	}
	if st.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNoRunner, path)
	}
	return nil
}
