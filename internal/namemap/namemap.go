// Package namemap derives short display names for genome records and
// persists the identifier -> display name table.
package namemap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"treeprep/internal/fasta"
)

// boilerplate suffixes removed from the end of a header, case-insensitively.
var boilerplate = []string{
	"complete genome",
	"complete_genome",
	"chromosome",
	"scaffold",
	"contig",
	"assembly",
}

// Mapping maps a genome identifier (file stem) to its display name.
type Mapping map[string]string

// Get implements newick.Lookup.
func (m Mapping) Get(id string) (string, bool) {
	name, ok := m[id]
	return name, ok
}

// IDs returns the mapping keys in sorted order.
func (m Mapping) IDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DisplayName shortens a header into a tree tip label. The suffix match is
// anchored at the end of the header only, and any '_' or blanks it leaves
// at either end are trimmed. Falls back to id when nothing remains.
func DisplayName(header, id string) string {
	s := strings.TrimSpace(strings.TrimPrefix(header, ">"))
	lower := strings.ToLower(s)
	for _, suf := range boilerplate {
		if strings.HasSuffix(lower, suf) {
			s = s[:len(s)-len(suf)]
			break
		}
	}
	s = collapseUnderscores(s)
	s = strings.Trim(s, "_ \t")
	if s == "" {
		return id
	}
	return s
}

func collapseUnderscores(s string) string {
	if !strings.Contains(s, "__") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	prev := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' && prev == '_' {
			continue
		}
		b.WriteByte(c)
		prev = c
	}
	return b.String()
}

// Build returns one entry per record, keyed by record ID.
func Build(recs []fasta.Record) Mapping {
	m := make(Mapping, len(recs))
	for _, r := range recs {
		m[r.ID] = DisplayName(r.Header, r.ID)
	}
	return m
}

// BuildFromFiles reads the first header of each canonical file. The key is
// the file name with its extension stripped.
func BuildFromFiles(paths []string) (Mapping, error) {
	m := make(Mapping, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		id := Stem(p)
		header := fasta.FirstHeader(data)
		if header == "" {
			header = fasta.PlaceholderHeader
		}
		m[id] = DisplayName(header, id)
	}
	return m, nil
}

// Stem is the base name of path without its final extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
