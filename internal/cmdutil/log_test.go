package cmdutil

import (
	"bytes"
	"testing"
)

func TestLoggerRouting(t *testing.T) {
	var out, errB bytes.Buffer
	l := &Logger{Out: &out, Err: &errB, NoColor: true}
	l.Infof("cleaned %d files", 3)
	l.Warnf("skipping %s", "x.fa")
	l.Errorf("boom")
	l.Donef("ok")

	if got := out.String(); got != "[INFO] cleaned 3 files\n[DONE] ok\n" {
		t.Fatalf("stdout = %q", got)
	}
	if got := errB.String(); got != "[WARN] skipping x.fa\nERROR: boom\n" {
		t.Fatalf("stderr = %q", got)
	}
}

func TestLoggerQuiet(t *testing.T) {
	var out, errB bytes.Buffer
	l := &Logger{Out: &out, Err: &errB, Quiet: true, NoColor: true}
	l.Infof("hidden")
	l.Warnf("hidden")
	l.Printf("hidden")
	l.Errorf("shown")
	if out.Len() != 0 {
		t.Fatalf("quiet stdout = %q", out.String())
	}
	if errB.String() != "ERROR: shown\n" {
		t.Fatalf("quiet stderr = %q", errB.String())
	}
}
