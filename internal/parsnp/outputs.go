// internal/parsnp/outputs.go
package parsnp

import (
	"os"
	"path/filepath"
)

// Output file names written by Parsnp (and the relabeled tree).
const (
	TreeFile    = "parsnp.tree"
	XMFAFile    = "parsnp.xmfa"
	VCFFile     = "parsnp.vcf"
	GGRFile     = "parsnp.ggr"
	RenamedFile = "parsnp_renamed.tree"
)

// Outputs are the result paths inside one output directory.
type Outputs struct {
	Tree, XMFA, VCF, GGR, Renamed string
}

// OutputsIn returns the expected output paths under dir.
func OutputsIn(dir string) Outputs {
	return Outputs{
		Tree:    filepath.Join(dir, TreeFile),
		XMFA:    filepath.Join(dir, XMFAFile),
		VCF:     filepath.Join(dir, VCFFile),
		GGR:     filepath.Join(dir, GGRFile),
		Renamed: filepath.Join(dir, RenamedFile),
	}
}

// Exists reports whether path is an existing regular file.
func Exists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}
