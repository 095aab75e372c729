package version

// Version is overridden at build time with -ldflags "-X treeprep/internal/version.Version=...".
var Version = "dev"
