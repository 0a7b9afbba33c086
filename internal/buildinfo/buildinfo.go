// Package buildinfo exposes the release identity stamped into the binary.
package buildinfo

// Set via -ldflags by the release pipeline. They stay empty in dev
// builds, where module metadata from the Go toolchain is used instead.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
