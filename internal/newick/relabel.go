// internal/newick/relabel.go
package newick

import (
	"fmt"
	"os"

	"treeprep/internal/writers"
)

// Lookup resolves a bare label to its replacement.
type Lookup interface {
	Get(label string) (string, bool)
}

// MapLookup adapts a plain map to Lookup.
type MapLookup map[string]string

func (m MapLookup) Get(label string) (string, bool) {
	v, ok := m[label]
	return v, ok
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', ',', ';', ':':
		return true
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// NeedsQuoting reports whether label, written bare, would be read back as
// more than one token.
func NeedsQuoting(label string) bool {
	for i := 0; i < len(label); i++ {
		if c := label[i]; isDelim(c) || c == '\'' || c == '"' {
			return true
		}
	}
	return false
}

// unquote strips one surrounding pair of matching single or double quotes.
func unquote(tok []byte) []byte {
	if n := len(tok); n >= 2 {
		if q := tok[0]; (q == '\'' || q == '"') && tok[n-1] == q {
			return tok[1 : n-1]
		}
	}
	return tok
}

// Relabel rewrites every token found in lk and copies everything else
// verbatim. It never fails.
func Relabel(text []byte, lk Lookup) []byte {
	out := make([]byte, 0, len(text))
	tok := make([]byte, 0, 64)

	flush := func() {
		if len(tok) == 0 {
			return
		}
		if name, ok := lk.Get(string(unquote(tok))); ok {
			out = append(out, name...)
		} else {
			out = append(out, tok...)
		}
		tok = tok[:0]
	}

	for _, c := range text {
		if isDelim(c) {
			flush()
			out = append(out, c)
			continue
		}
		tok = append(tok, c)
	}
	flush()
	return out
}

// RelabelFile relabels the tree at in and writes the result to out.
func RelabelFile(in, out string, lk Lookup) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read tree: %w", err)
	}
	if err := writers.WriteFileAtomic(out, Relabel(data, lk), 0o644); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	return nil
}
