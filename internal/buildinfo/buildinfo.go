// Package buildinfo holds release metadata injected at link time.
package buildinfo

// These values are set via ldflags for release binaries and stay empty for
// local builds, where the module build info fills the gaps.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
