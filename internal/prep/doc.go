// Package prep is the cleaning stage: it discovers raw genome files,
// canonicalizes each one into the work directory in parallel, drops files
// that end up empty, and picks the reference genome.
//
// Workers share no mutable state; each owns one input and one output file.
// Results are joined and sorted before the reference is chosen, so the
// outcome does not depend on the worker count.
package prep
