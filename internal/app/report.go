// internal/app/report.go
package app

import (
	"github.com/fatih/color"

	"treeprep/internal/cmdutil"
	"treeprep/internal/parsnp"
)

var missing = color.New(color.Faint).SprintFunc()

func present(l *cmdutil.Logger, path, absent string) string {
	if parsnp.Exists(path) {
		return path
	}
	if l.NoColor {
		return absent
	}
	return missing(absent)
}

func printReport(l *cmdutil.Logger, o parsnp.Outputs, haveTree, renamed bool) {
	l.Printf("\n")
	l.Donef("Outputs:")
	l.Printf("  Alignment (XMFA): %s\n", present(l, o.XMFA, "(missing)"))
	l.Printf("  SNPs (VCF):       %s\n", present(l, o.VCF, "(missing)"))
	l.Printf("  Tree (Newick):    %s\n", present(l, o.Tree, "(missing)"))
	renamedPath := "(n/a)"
	if renamed {
		renamedPath = o.Renamed
	} else if !l.NoColor {
		renamedPath = missing(renamedPath)
	}
	l.Printf("  Tree (renamed):   %s\n", renamedPath)
	if haveTree {
		l.Printf("\nTip: upload the .tree to iTOL for easy viewing.\n")
	}
}
