// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

// The byte/text transforms stay pure: no orchestration, CLI or process deps.
func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	cmd.Dir = "../.."
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Skipf("go list unavailable: %v", err)
	}
	dec := json.NewDecoder(&out)

	orchestration := []string{
		"treeprep/internal/app", "treeprep/internal/appshell",
		"treeprep/internal/prep", "treeprep/internal/parsnp",
		"treeprep/internal/config", "treeprep/internal/cmdutil",
		"treeprep/cmd/", "github.com/spf13/cobra", "os/exec",
	}
	bans := map[string][]string{
		"treeprep/internal/sanitize": orchestration,
		"treeprep/internal/fasta":    orchestration,
		"treeprep/internal/namemap":  orchestration,
		"treeprep/internal/newick":   append([]string{"treeprep/internal/namemap", "treeprep/internal/fasta"}, orchestration...),
		"treeprep/internal/parsnp": {
			"treeprep/internal/app", "treeprep/internal/prep", "treeprep/internal/config", "treeprep/cmd/",
		},
		"treeprep/internal/prep": {
			"treeprep/internal/app", "treeprep/internal/parsnp", "treeprep/internal/config", "treeprep/cmd/",
		},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "treeprep/") {
			continue
		}
		imp := p.ImportPath
		forbidden, ok := bans[imp]
		if !ok {
			continue
		}
		for _, dep := range p.Imports {
			for _, ban := range forbidden {
				if strings.HasPrefix(dep, ban) {
					violations = append(violations, imp+" → "+dep)
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
