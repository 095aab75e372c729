// internal/prep/clean.go
package prep

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"treeprep/internal/fasta"
	"treeprep/internal/namemap"
	"treeprep/internal/writers"
)

// Options controls the cleaning stage.
type Options struct {
	WorkDir   string // canonical files are written here
	Threads   int    // max files canonicalized at once (>=1)
	Reference string // canonical file name to use as reference; "" = first
}

// Genome is one retained input after canonicalization. Record.Seq is not
// kept; the sequence lives only in the canonical file.
type Genome struct {
	Source string
	Path   string
	Record fasta.Record
	Bases  int // A/C/G/T/N count in the cleaned file
}

// Result is the outcome of Clean.
type Result struct {
	Retained  []Genome // sorted by Path
	Excluded  []string // sources that canonicalized to nothing
	Reference Genome
}

// Paths returns the canonical file paths of the retained genomes.
func (r Result) Paths() []string {
	out := make([]string, len(r.Retained))
	for i, g := range r.Retained {
		out[i] = g.Path
	}
	return out
}

// Records returns the retained genome records.
func (r Result) Records() []fasta.Record {
	out := make([]fasta.Record, len(r.Retained))
	for i, g := range r.Retained {
		out[i] = g.Record
	}
	return out
}

type outcome struct {
	genome Genome
	empty  bool
}

// Clean canonicalizes every source into opt.WorkDir. Files that end up empty
// are excluded (and any stale copy removed); if all are excluded it returns
// ErrAllInputsEmptied.
func Clean(ctx context.Context, opt Options, sources []string) (Result, error) {
	if len(sources) == 0 {
		return Result{}, ErrInputAbsent
	}
	if err := os.MkdirAll(opt.WorkDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create work dir: %w", err)
	}
	threads := opt.Threads
	if threads < 1 {
		threads = 1
	}

	names := assignNames(sources)
	outcomes := make([]outcome, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i := range sources {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dst := filepath.Join(opt.WorkDir, names[i])
			o, err := cleanOne(sources[i], dst)
			if err != nil {
				return err
			}
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var res Result
	for _, o := range outcomes {
		if o.empty {
			res.Excluded = append(res.Excluded, o.genome.Source)
			continue
		}
		res.Retained = append(res.Retained, o.genome)
	}
	if len(res.Retained) == 0 {
		return res, ErrAllInputsEmptied
	}
	sort.Slice(res.Retained, func(a, b int) bool { return res.Retained[a].Path < res.Retained[b].Path })

	ref, err := pickReference(res.Retained, opt.Reference)
	if err != nil {
		return res, err
	}
	res.Reference = ref
	return res, nil
}

func cleanOne(src, dst string) (outcome, error) {
	raw, err := fasta.ReadFile(src)
	if err != nil {
		return outcome{}, fmt.Errorf("read %s: %w", src, err)
	}
	canon := fasta.Canonicalize(raw)
	o := outcome{genome: Genome{Source: src, Path: dst}}
	if len(canon) == 0 {
		if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
			return outcome{}, fmt.Errorf("remove stale %s: %w", dst, err)
		}
		o.empty = true
		return o, nil
	}
	if err := writers.WriteFileAtomic(dst, canon, 0o644); err != nil {
		return outcome{}, fmt.Errorf("write %s: %w", dst, err)
	}
	rec := fasta.ParseCanonical(namemap.Stem(dst), canon)
	o.genome.Bases = len(rec.Seq)
	rec.Seq = nil
	o.genome.Record = rec
	return o, nil
}

func pickReference(retained []Genome, want string) (Genome, error) {
	if want == "" {
		return retained[0], nil
	}
	for _, g := range retained {
		if filepath.Base(g.Path) == want || g.Record.ID == want {
			return g, nil
		}
	}
	return Genome{}, fmt.Errorf("%w: %s", ErrReferenceNotRetained, want)
}
