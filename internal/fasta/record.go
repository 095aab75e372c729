// internal/fasta/record.go
package fasta

import "bytes"

// Record is one canonical genome file held in memory.
type Record struct {
	ID     string // source filename stem
	Header string // sanitized header line, including '>'
	Seq    []byte // concatenated A/C/G/T/N
}

// ParseCanonical builds a Record from canonical text. The first header wins;
// text without any header gets PlaceholderHeader.
func ParseCanonical(id string, canonical []byte) Record {
	rec := Record{ID: id, Header: PlaceholderHeader}
	seenHeader := false
	for _, line := range bytes.Split(canonical, []byte{'\n'}) {
		if len(line) > 0 && line[0] == '>' {
			if !seenHeader {
				rec.Header = string(line)
				seenHeader = true
			}
			continue
		}
		rec.Seq = append(rec.Seq, line...)
	}
	return rec
}

// FirstHeader returns the first header line of canonical text, or "" if none.
func FirstHeader(canonical []byte) string {
	for len(canonical) > 0 {
		line := canonical
		if i := bytes.IndexByte(canonical, '\n'); i >= 0 {
			line, canonical = canonical[:i], canonical[i+1:]
		} else {
			canonical = nil
		}
		if len(line) > 0 && line[0] == '>' {
			return string(bytes.TrimRight(line, "\r"))
		}
	}
	return ""
}
