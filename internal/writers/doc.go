// Package writers owns the file and stream plumbing shared by the commands:
// atomic file replacement and broken-pipe detection for stdout.
package writers
