// internal/app/pipeline.go
package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"treeprep/internal/cmdutil"
	"treeprep/internal/config"
	"treeprep/internal/namemap"
	"treeprep/internal/newick"
	"treeprep/internal/parsnp"
	"treeprep/internal/prep"
	"treeprep/internal/version"
	"treeprep/internal/writers"
	"treeprep/pkg/api"
)

// File names written to the output directory.
const (
	NameMapFile  = "name_map.tsv"
	ManifestFile = "treeprep_manifest.yaml"
)

// Pipeline runs one preparation + Parsnp + relabel cycle for a fixed Config.
type Pipeline struct {
	cfg config.Config
	log *cmdutil.Logger

	// dockerAvailable overrides Docker detection in tests.
	dockerAvailable func(context.Context) bool
	now             func() time.Time
}

// NewPipeline binds a resolved, validated Config.
func NewPipeline(cfg config.Config, log *cmdutil.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log, now: time.Now}
}

// Prepared is the state after the cleaning stage.
type Prepared struct {
	Clean    prep.Result
	Mapping  namemap.Mapping
	Manifest *api.ManifestV1
}

// Prepare discovers, canonicalizes and maps the genomes, and persists the
// name map to the output directory.
func (p *Pipeline) Prepare(ctx context.Context) (*Prepared, error) {
	cfg := p.cfg
	p.log.Infof("Preparing...")

	sources, err := prep.Discover(cfg.Source)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	res, err := prep.Clean(ctx, prep.Options{
		WorkDir:   cfg.Work,
		Threads:   cfg.Threads,
		Reference: cfg.Reference,
	}, sources)
	for _, ex := range res.Excluded {
		p.log.Warnf("%s is empty after sanitization; skipping", filepath.Base(ex))
	}
	if err != nil {
		return nil, err
	}
	p.log.Infof("Cleaned %d FASTA files into: %s", len(res.Retained), cfg.Work)
	p.log.Infof("Reference: %s", res.Reference.Path)

	for _, g := range res.Retained {
		if g.Bases == 0 {
			p.log.Warnf("%s has no nucleotide sequence after sanitization", filepath.Base(g.Source))
		}
	}

	mapping := namemap.Build(res.Records())
	for _, id := range mapping.IDs() {
		if name := mapping[id]; newick.NeedsQuoting(name) {
			p.log.Warnf("display name %q for %s contains Newick delimiters; the renamed tree may not parse", name, id)
		}
	}
	var buf bytes.Buffer
	if err := namemap.WriteTSV(&buf, mapping, true); err != nil {
		return nil, err
	}
	mapPath := filepath.Join(cfg.Output, NameMapFile)
	if err := writers.WriteFileAtomic(mapPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write name map: %w", err)
	}

	m := api.NewManifest(version.Version, p.now())
	m.Source, m.WorkDir, m.OutputDir = cfg.Source, cfg.Work, cfg.Output
	m.Reference = res.Reference.Path
	m.Excluded = res.Excluded
	m.NameMap = mapPath
	for _, g := range res.Retained {
		m.Genomes = append(m.Genomes, api.GenomeV1{
			ID:          g.Record.ID,
			Source:      g.Source,
			Canonical:   g.Path,
			Header:      g.Record.Header,
			DisplayName: mapping[g.Record.ID],
		})
	}
	return &Prepared{Clean: res, Mapping: mapping, Manifest: m}, nil
}

// Run executes the whole pipeline and prints the output report.
func (p *Pipeline) Run(ctx context.Context) error {
	cfg := p.cfg
	pr, err := p.Prepare(ctx)
	if err != nil {
		return err
	}

	runner, fellBack, err := parsnp.Selector{
		Kind:            cfg.Runner,
		Image:           cfg.Image,
		Platform:        cfg.Platform,
		Binary:          cfg.ParsnpBin,
		Stdout:          p.log.Out,
		Stderr:          p.log.Err,
		DockerAvailable: p.dockerAvailable,
	}.Select(ctx)
	if fellBack {
		p.log.Warnf("Docker not found; trying local parsnp...")
	}
	if err != nil {
		return err
	}

	job := parsnp.Job{
		Reference: pr.Clean.Reference.Path,
		DataDir:   cfg.Work,
		OutDir:    cfg.Output,
		Threads:   cfg.Threads,
	}
	p.log.Infof("Running Parsnp via %s:\n%s\n", runner.Name(), parsnp.FormatCommand(runner.Command(job)))
	if err := runner.Run(ctx, job); err != nil {
		return err
	}
	pr.Manifest.Runner = runner.Name()

	outs := parsnp.OutputsIn(cfg.Output)
	haveTree := parsnp.Exists(outs.Tree)
	if !haveTree {
		p.log.Warnf("%s not found; Parsnp may have filtered too many genomes or failed late.", parsnp.TreeFile)
	} else {
		p.log.Infof("Tree: %s", outs.Tree)
	}

	renamed := false
	if haveTree && !cfg.NoRename {
		if err := newick.RelabelFile(outs.Tree, outs.Renamed, pr.Mapping); err != nil {
			return err
		}
		renamed = true
		p.log.Infof("Renamed tree (tips prettified): %s", outs.Renamed)
	}

	pr.Manifest.Outputs = manifestOutputs(outs, renamed)
	if err := p.writeManifest(pr.Manifest); err != nil {
		return err
	}
	printReport(p.log, outs, haveTree, renamed)
	return nil
}

func (p *Pipeline) writeManifest(m *api.ManifestV1) error {
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := writers.WriteFileAtomic(filepath.Join(p.cfg.Output, ManifestFile), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func manifestOutputs(o parsnp.Outputs, renamed bool) map[string]string {
	out := map[string]string{}
	for k, v := range map[string]string{"tree": o.Tree, "xmfa": o.XMFA, "vcf": o.VCF, "ggr": o.GGR} {
		if parsnp.Exists(v) {
			out[k] = v
		}
	}
	if renamed {
		out["renamed_tree"] = o.Renamed
	}
	return out
}
