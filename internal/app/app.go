// internal/app/app.go
package app

import (
	"context"
	"errors"
	"io"

	"treeprep/internal/cmdutil"
	"treeprep/internal/prep"
	"treeprep/internal/writers"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitRuntime  = 3
	ExitCanceled = 130
)

// usageError marks bad flags, arguments or configuration.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

// RunContext parses argv, runs the selected command and maps the outcome to
// an exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	e := &env{stdout: stdout, stderr: stderr}
	root := newRootCmd(e)
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(parent)
	if err == nil {
		return ExitOK
	}
	code := exitCode(err)
	if code == ExitOK {
		return code
	}
	e.logger().Errorf("%v", err)
	if isUsage(err) && cmd != nil {
		_ = cmd.Usage()
	}
	return code
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func isUsage(err error) bool {
	var ue usageError
	return errors.As(err, &ue)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case writers.IsBrokenPipe(err):
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case isUsage(err),
		errors.Is(err, prep.ErrSourceMissing),
		errors.Is(err, prep.ErrInputAbsent),
		errors.Is(err, prep.ErrAllInputsEmptied),
		errors.Is(err, prep.ErrReferenceNotRetained):
		return ExitUsage
	}
	// Parsnp failures (*parsnp.ExitError, parsnp.ErrNoRunner) and I/O errors.
	return ExitRuntime
}

// env carries the process streams and the logger built from flags.
type env struct {
	stdout, stderr io.Writer
	log            *cmdutil.Logger
}

func (e *env) logger() *cmdutil.Logger {
	if e.log == nil {
		e.log = cmdutil.NewLogger(e.stdout, e.stderr, false)
	}
	return e.log
}
