// Package newick relabels leaf labels inside Newick tree text.
//
// The text is never parsed into a tree. A single left-to-right scan splits
// it on delimiter bytes, '(' ')' ',' ';' ':' and whitespace, and each token
// between delimiters is looked up and possibly replaced. Delimiters and
// unmapped tokens (branch lengths, support values, unknown labels) are copied
// through untouched, so malformed or unbalanced input passes through with its
// structure intact.
package newick
