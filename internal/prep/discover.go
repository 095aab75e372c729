// internal/prep/discover.go
package prep

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var (
	// ErrSourceMissing means the source directory does not exist.
	ErrSourceMissing = errors.New("genomes folder not found")
	// ErrInputAbsent means no genome files matched in the source directory.
	ErrInputAbsent = errors.New("no FASTA files found")
	// ErrAllInputsEmptied means every input canonicalized to zero bytes.
	ErrAllInputsEmptied = errors.New("all cleaned FASTAs are empty after sanitization")
	// ErrReferenceNotRetained means the requested reference was excluded or never existed.
	ErrReferenceNotRetained = errors.New("reference is not among the retained genomes")
)

// Extensions recognized as genome files (case-insensitive, optionally .gz).
var Extensions = []string{".fasta", ".fa", ".fna", ".fas"}

// IsGenomeFile reports whether name carries a recognized extension.
func IsGenomeFile(name string) bool {
	lower := strings.ToLower(name)
	lower = strings.TrimSuffix(lower, ".gz")
	for _, ext := range Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Discover lists genome files directly inside dir, sorted by path.
func Discover(dir string) ([]string, error) {
	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceMissing, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !IsGenomeFile(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrInputAbsent, dir)
	}
	sort.Strings(out)
	return out, nil
}

var (
	doubleDot = regexp.MustCompile(`(?i)\.\.(fasta|fna|fas|fa)$`)
	shortExt  = regexp.MustCompile(`(?i)\.(fa|fna|fas)$`)
	fastaExt  = regexp.MustCompile(`(?i)\.fasta$`)
)

// CanonicalName maps a source base name to its cleaned file name, which
// always ends in ".fasta".
//
//	1..fasta     -> 1.fasta
//	GCF_1.fna    -> GCF_1.fasta
//	x.fa.gz      -> x.fasta
//	.fasta       -> unnamed.fasta
func CanonicalName(base string) string {
	if strings.HasSuffix(strings.ToLower(base), ".gz") {
		base = base[:len(base)-3]
	}
	base = doubleDot.ReplaceAllString(base, ".fasta")
	if !fastaExt.MatchString(base) {
		base = shortExt.ReplaceAllString(base, ".fasta")
	}
	if !fastaExt.MatchString(base) {
		base += ".fasta"
	}
	if strings.EqualFold(base, ".fasta") {
		return "unnamed.fasta"
	}
	return base
}

// assignNames gives each source a unique canonical name, in source order.
// Later collisions get _2, _3 ... before the extension.
func assignNames(sources []string) []string {
	names := make([]string, len(sources))
	used := make(map[string]bool, len(sources))
	for i, src := range sources {
		name := CanonicalName(filepath.Base(src))
		if used[strings.ToLower(name)] {
			ext := filepath.Ext(name)
			stem := strings.TrimSuffix(name, ext)
			for n := 2; ; n++ {
				cand := fmt.Sprintf("%s_%d%s", stem, n, ext)
				if !used[strings.ToLower(cand)] {
					name = cand
					break
				}
			}
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}
