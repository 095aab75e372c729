// internal/namemap/tsv.go
package namemap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// TSVHeader is the first line of a persisted mapping.
const TSVHeader = "id\tdisplay_name"

// WriteTSV writes the mapping as a two-column table sorted by id.
func WriteTSV(w io.Writer, m Mapping, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, id := range m.IDs() {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", id, m[id]); err != nil {
			return err
		}
	}
	return nil
}

// ReadTSV parses a two-column table. Blank lines, '#' comments and the
// header line are skipped.
func ReadTSV(r io.Reader) (Mapping, error) {
	m := Mapping{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if lineNo == 1 && line == TSVHeader {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: want 2 tab-separated columns, got %d", lineNo, len(fields))
		}
		id := strings.TrimSpace(fields[0])
		if id == "" {
			return nil, fmt.Errorf("line %d: empty id", lineNo)
		}
		if _, dup := m[id]; dup {
			return nil, fmt.Errorf("line %d: duplicate id %q", lineNo, id)
		}
		m[id] = strings.TrimSpace(fields[1])
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadTSV reads a mapping from a file.
func LoadTSV(path string) (Mapping, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	m, err := ReadTSV(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
