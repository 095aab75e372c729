// pkg/api/manifest_v1.go
package api

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ManifestV1 records what one run consumed and produced.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ManifestV1 struct {
	RunID     string    `yaml:"run_id" json:"run_id"`
	Version   string    `yaml:"version" json:"version"`
	StartedAt time.Time `yaml:"started_at" json:"started_at"`

	Source    string `yaml:"source" json:"source"`
	WorkDir   string `yaml:"work_dir" json:"work_dir"`
	OutputDir string `yaml:"output_dir" json:"output_dir"`
	Runner    string `yaml:"runner,omitempty" json:"runner,omitempty"`

	Reference string            `yaml:"reference" json:"reference"`
	Genomes   []GenomeV1        `yaml:"genomes" json:"genomes"`
	Excluded  []string          `yaml:"excluded,omitempty" json:"excluded,omitempty"`
	NameMap   string            `yaml:"name_map,omitempty" json:"name_map,omitempty"`
	Outputs   map[string]string `yaml:"outputs,omitempty" json:"outputs,omitempty"`
}

// GenomeV1 is one retained genome.
type GenomeV1 struct {
	ID          string `yaml:"id" json:"id"`
	Source      string `yaml:"source" json:"source"`
	Canonical   string `yaml:"canonical" json:"canonical"`
	Header      string `yaml:"header" json:"header"`
	DisplayName string `yaml:"display_name" json:"display_name"`
}

// NewManifest stamps a fresh run id and start time.
func NewManifest(version string, now time.Time) *ManifestV1 {
	return &ManifestV1{
		RunID:     uuid.NewString(),
		Version:   version,
		StartedAt: now.UTC(),
	}
}

// Encode writes m as YAML.
func (m *ManifestV1) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}

// ReadManifest parses a YAML manifest file.
func ReadManifest(path string) (*ManifestV1, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m ManifestV1
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}
