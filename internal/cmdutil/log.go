// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	infoTag = color.New(color.FgCyan)
	warnTag = color.New(color.FgYellow)
	errTag  = color.New(color.FgRed, color.Bold)
	doneTag = color.New(color.FgGreen, color.Bold)
)

// Logger prints progress lines. Info and Done go to Out, Warn and Error to
// Err. Quiet silences everything except errors.
type Logger struct {
	Out     io.Writer
	Err     io.Writer
	Quiet   bool
	NoColor bool
}

// NewLogger returns a Logger writing to stdout/stderr.
func NewLogger(stdout, stderr io.Writer, quiet bool) *Logger {
	return &Logger{Out: stdout, Err: stderr, Quiet: quiet, NoColor: color.NoColor}
}

func (l *Logger) tag(c *color.Color, s string) string {
	if l.NoColor {
		return s
	}
	return c.Sprint(s)
}

func (l *Logger) Infof(format string, a ...any) {
	if l.Quiet {
		return
	}
	_, _ = fmt.Fprintf(l.Out, l.tag(infoTag, "[INFO]")+" "+format+"\n", a...)
}

func (l *Logger) Warnf(format string, a ...any) {
	if l.Quiet {
		return
	}
	_, _ = fmt.Fprintf(l.Err, l.tag(warnTag, "[WARN]")+" "+format+"\n", a...)
}

func (l *Logger) Errorf(format string, a ...any) {
	_, _ = fmt.Fprintf(l.Err, l.tag(errTag, "ERROR:")+" "+format+"\n", a...)
}

func (l *Logger) Donef(format string, a ...any) {
	if l.Quiet {
		return
	}
	_, _ = fmt.Fprintf(l.Out, l.tag(doneTag, "[DONE]")+" "+format+"\n", a...)
}

// Printf writes an untagged line to Out unless quiet.
func (l *Logger) Printf(format string, a ...any) {
	if l.Quiet {
		return
	}
	_, _ = fmt.Fprintf(l.Out, format, a...)
}
