// internal/fasta/normalize.go
package fasta

import (
	"bytes"

	"treeprep/internal/sanitize"
)

// PlaceholderHeader replaces any header that sanitizes to nothing.
const PlaceholderHeader = ">unknown"

// headerByte reports whether b may appear in a canonical header body.
func headerByte(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case '_', '.', ':', '|', '-', ' ':
		return true
	}
	return false
}

// NormalizeHeader canonicalizes one header line (without its terminator).
// Disallowed bytes become '_', then every run of spaces becomes a single '_'.
func NormalizeHeader(line []byte) []byte {
	line = bytes.TrimRight(line, "\r\n")
	body := line
	if len(body) > 0 && body[0] == '>' {
		body = body[1:]
	}

	out := make([]byte, 1, len(body)+1)
	out[0] = '>'
	inSpace := false
	for _, b := range body {
		if !headerByte(b) {
			b = '_'
		}
		if b == ' ' {
			if !inSpace {
				out = append(out, '_')
			}
			inSpace = true
			continue
		}
		inSpace = false
		out = append(out, b)
	}
	if len(out) == 1 {
		return []byte(PlaceholderHeader)
	}
	return out
}

// NormalizeSequence keeps only A, C, G, T and N (either case) and uppercases them.
func NormalizeSequence(line []byte) []byte {
	out := make([]byte, 0, len(line))
	for _, b := range line {
		switch b {
		case 'A', 'C', 'G', 'T', 'N':
			out = append(out, b)
		case 'a', 'c', 'g', 't', 'n':
			out = append(out, b-('a'-'A'))
		}
	}
	return out
}

// nextLine splits off the first line of text. "\n", "\r\n" and a lone "\r"
// all end a line.
func nextLine(text []byte) (line, rest []byte, terminated bool) {
	i := bytes.IndexAny(text, "\r\n")
	if i < 0 {
		return text, nil, false
	}
	end := i + 1
	if text[i] == '\r' && end < len(text) && text[end] == '\n' {
		end++
	}
	return text[:i], text[end:], true
}

// Normalize rewrites ASCII-clean FASTA text line by line. Every terminator is
// written as '\n' and header lines always get one. Sequence lines are never
// merged or split.
func Normalize(text []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(text))
	for len(text) > 0 {
		var line []byte
		var terminated bool
		line, text, terminated = nextLine(text)

		if len(line) > 0 && line[0] == '>' {
			out.Write(NormalizeHeader(line))
			out.WriteByte('\n')
			continue
		}
		out.Write(NormalizeSequence(line))
		if terminated {
			out.WriteByte('\n')
		}
	}
	return out.Bytes()
}

// Canonicalize strips non-ASCII bytes and normalizes the result.
func Canonicalize(raw []byte) []byte {
	return Normalize(sanitize.ASCII(raw))
}
