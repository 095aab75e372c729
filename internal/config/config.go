// Package config holds the explicit run configuration passed into the
// pipeline. Values come from defaults, an optional YAML file, then flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Runner kinds.
const (
	RunnerAuto   = "auto"
	RunnerDocker = "docker"
	RunnerLocal  = "local"
)

// Config is the full set of knobs for one run.
type Config struct {
	Source    string `yaml:"source"`     // directory holding raw genome files
	Work      string `yaml:"work"`       // canonical copies are written here
	Output    string `yaml:"output"`     // Parsnp results, name map, manifest
	Threads   int    `yaml:"threads"`    // Parsnp -p and cleaning workers
	Image     string `yaml:"image"`      // Docker image for Parsnp
	Platform  string `yaml:"platform"`   // docker --platform
	Runner    string `yaml:"runner"`     // auto | docker | local
	ParsnpBin string `yaml:"parsnp_bin"` // local Parsnp binary
	Reference string `yaml:"reference"`  // canonical file name; "" = first
	NoRename  bool   `yaml:"no_rename"`
	Quiet     bool   `yaml:"quiet"`
}

// Default mirrors the layout the pipeline was first used with.
func Default() Config {
	return Config{
		Source:    "~/Downloads/E.coli project",
		Work:      "~/Downloads/Ecoli_clean",
		Output:    "~/Downloads/parsnp_out",
		Threads:   8,
		Image:     "staphb/parsnp:1.5.6",
		Platform:  "linux/amd64",
		Runner:    RunnerAuto,
		ParsnpBin: "/opt/homebrew/bin/parsnp",
	}
}

// Load returns Default merged with the YAML file at path ("" skips the file).
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := loadAndMerge(&cfg, path); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

func mergeConfigs(base, override *Config, raw map[string]any) {
	if override.Source != "" {
		base.Source = override.Source
	}
	if override.Work != "" {
		base.Work = override.Work
	}
	if override.Output != "" {
		base.Output = override.Output
	}
	if override.Threads != 0 {
		base.Threads = override.Threads
	}
	if override.Image != "" {
		base.Image = override.Image
	}
	if override.Platform != "" {
		base.Platform = override.Platform
	}
	if override.Runner != "" {
		base.Runner = override.Runner
	}
	if override.ParsnpBin != "" {
		base.ParsnpBin = override.ParsnpBin
	}
	if override.Reference != "" {
		base.Reference = override.Reference
	}
	if boolFieldSet(raw, "no_rename") {
		base.NoRename = override.NoRename
	}
	if boolFieldSet(raw, "quiet") {
		base.Quiet = override.Quiet
	}
}

func boolFieldSet(raw map[string]any, key string) bool {
	if raw == nil {
		return false
	}
	_, ok := raw[key].(bool)
	return ok
}

// Resolve expands '~' and cleans every path.
func (c *Config) Resolve() error {
	for _, p := range []*string{&c.Source, &c.Work, &c.Output, &c.ParsnpBin} {
		if *p == "" {
			continue
		}
		expanded, err := ExpandHome(*p)
		if err != nil {
			return err
		}
		*p = filepath.Clean(expanded)
	}
	return nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Source) == "" {
		errs = append(errs, errors.New("source directory is required"))
	}
	if strings.TrimSpace(c.Work) == "" {
		errs = append(errs, errors.New("work directory is required"))
	}
	if strings.TrimSpace(c.Output) == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.Threads < 1 {
		errs = append(errs, fmt.Errorf("threads must be >= 1, got %d", c.Threads))
	}
	switch c.Runner {
	case RunnerAuto, RunnerDocker, RunnerLocal:
	default:
		errs = append(errs, fmt.Errorf("invalid runner %q (auto | docker | local)", c.Runner))
	}
	if c.Runner == RunnerDocker && c.Image == "" {
		errs = append(errs, errors.New("docker runner needs an image"))
	}
	if c.Runner == RunnerLocal && c.ParsnpBin == "" {
		errs = append(errs, errors.New("local runner needs parsnp_bin"))
	}
	if c.Reference != "" && filepath.Base(c.Reference) != c.Reference {
		errs = append(errs, fmt.Errorf("reference %q must be a file name, not a path", c.Reference))
	}
	return errors.Join(errs...)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", p, err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
