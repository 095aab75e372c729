// internal/app/commands.go
package app

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"treeprep/internal/config"
	"treeprep/internal/namemap"
	"treeprep/internal/newick"
	"treeprep/internal/prep"
	"treeprep/internal/version"
)

// flagValues are the raw flag targets; only flags the user set override the
// config file.
type flagValues struct {
	configPath string
	cfg        config.Config
	noColor    bool
}

func newRootCmd(e *env) *cobra.Command {
	fv := &flagValues{cfg: config.Default()}

	root := &cobra.Command{
		Use:   "treeprep",
		Short: "Clean genome FASTAs, build a Parsnp tree, relabel its tips",
		Long: `treeprep sanitizes a folder of genome FASTA files into strict canonical
FASTA, runs Parsnp on them (Docker first, local binary as fallback) and
rewrites the tips of the resulting Newick tree with readable names taken
from each genome's header.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			l := e.logger()
			l.NoColor = l.NoColor || fv.noColor
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFull(cmd, e, fv)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	root.SetVersionTemplate("treeprep version {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&fv.configPath, "config", "", "YAML config file")
	pf.BoolVarP(&fv.cfg.Quiet, "quiet", "q", false, "suppress progress and warnings")
	pf.BoolVar(&fv.noColor, "no-color", false, "disable colored output")
	addPipelineFlags(root, fv)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Clean inputs, run Parsnp and relabel the tree (default)",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFull(cmd, e, fv)
		},
	}
	addPipelineFlags(runCmd, fv)

	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Only sanitize inputs and write the name map",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, fv)
			if err != nil {
				return err
			}
			e.logger().Quiet = cfg.Quiet
			p := NewPipeline(cfg, e.logger())
			pr, err := p.Prepare(cmd.Context())
			if err != nil {
				return err
			}
			if err := p.writeManifest(pr.Manifest); err != nil {
				return err
			}
			e.logger().Donef("Name map: %s", pr.Manifest.NameMap)
			return nil
		},
	}
	addPipelineFlags(cleanCmd, fv)

	var mapPath, canonDir, outPath string
	renameCmd := &cobra.Command{
		Use:   "rename TREE",
		Short: "Relabel tree tips using a name map or a folder of cleaned genomes",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError{fmt.Errorf("rename takes exactly one tree file, got %d", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e.logger().Quiet = fv.cfg.Quiet
			mapping, err := renameMapping(mapPath, canonDir)
			if err != nil {
				return err
			}
			if outPath != "" && outPath != "-" {
				if err := newick.RelabelFile(args[0], outPath, mapping); err != nil {
					return err
				}
				e.logger().Infof("Renamed tree: %s", outPath)
				return nil
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read tree: %w", err)
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			if _, err := w.Write(newick.Relabel(data, mapping)); err != nil {
				return err
			}
			return w.Flush()
		},
	}
	renameCmd.Flags().StringVarP(&mapPath, "map", "m", "", "name map TSV (id<TAB>display_name)")
	renameCmd.Flags().StringVarP(&canonDir, "canonical-dir", "c", "", "build the map from the first header of each cleaned genome in this folder")
	renameCmd.Flags().StringVarP(&outPath, "output", "o", "-", "output tree file ('-' = stdout)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "treeprep version %s\n", version.Version)
			return err
		},
	}

	root.AddCommand(runCmd, cleanCmd, renameCmd, versionCmd)
	return root
}

// renameMapping loads exactly one of a TSV map or a cleaned-genome folder.
func renameMapping(mapPath, canonDir string) (namemap.Mapping, error) {
	switch {
	case mapPath != "" && canonDir != "":
		return nil, usageError{errors.New("--map and --canonical-dir are mutually exclusive")}
	case mapPath != "":
		return namemap.LoadTSV(mapPath)
	case canonDir != "":
		paths, err := prep.Discover(canonDir)
		if err != nil {
			return nil, err
		}
		return namemap.BuildFromFiles(paths)
	}
	return nil, usageError{errors.New("one of --map or --canonical-dir is required")}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError{fmt.Errorf("%s takes no arguments, got %q", cmd.CommandPath(), args)}
	}
	return nil
}

func addPipelineFlags(cmd *cobra.Command, fv *flagValues) {
	f := cmd.Flags()
	d := config.Default()
	f.StringVar(&fv.cfg.Source, "src", d.Source, "folder of raw genome FASTA files")
	f.StringVar(&fv.cfg.Work, "work", d.Work, "folder for cleaned copies")
	f.StringVar(&fv.cfg.Output, "out", d.Output, "Parsnp output folder")
	f.IntVarP(&fv.cfg.Threads, "threads", "p", d.Threads, "threads for Parsnp and cleaning")
	f.StringVar(&fv.cfg.Image, "image", d.Image, "Parsnp Docker image")
	f.StringVar(&fv.cfg.Platform, "platform", d.Platform, "docker --platform value")
	f.StringVar(&fv.cfg.Runner, "runner", d.Runner, "auto | docker | local")
	f.StringVar(&fv.cfg.ParsnpBin, "parsnp-bin", d.ParsnpBin, "local Parsnp binary")
	f.StringVarP(&fv.cfg.Reference, "reference", "r", "", "reference genome file name (default: first cleaned file)")
	f.BoolVar(&fv.cfg.NoRename, "no-rename", false, "skip relabeling the tree")
}

// resolveConfig layers defaults, the config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command, fv *flagValues) (config.Config, error) {
	cfg, err := config.Load(fv.configPath)
	if err != nil {
		return cfg, usageError{err}
	}
	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("src", func() { cfg.Source = fv.cfg.Source })
	set("work", func() { cfg.Work = fv.cfg.Work })
	set("out", func() { cfg.Output = fv.cfg.Output })
	set("threads", func() { cfg.Threads = fv.cfg.Threads })
	set("image", func() { cfg.Image = fv.cfg.Image })
	set("platform", func() { cfg.Platform = fv.cfg.Platform })
	set("runner", func() { cfg.Runner = fv.cfg.Runner })
	set("parsnp-bin", func() { cfg.ParsnpBin = fv.cfg.ParsnpBin })
	set("reference", func() { cfg.Reference = fv.cfg.Reference })
	set("no-rename", func() { cfg.NoRename = fv.cfg.NoRename })
	set("quiet", func() { cfg.Quiet = fv.cfg.Quiet })

	if err := cfg.Resolve(); err != nil {
		return cfg, usageError{err}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, usageError{err}
	}
	return cfg, nil
}

func runFull(cmd *cobra.Command, e *env, fv *flagValues) error {
	cfg, err := resolveConfig(cmd, fv)
	if err != nil {
		return err
	}
	e.logger().Quiet = cfg.Quiet
	return NewPipeline(cfg, e.logger()).Run(cmd.Context())
}
