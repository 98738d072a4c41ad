// Package cli carries version values injected by external build scripts.
package cli

// Version and Date should be set at build time using ldflags, e.g.:
//
//	-ldflags "-X 'github.com/flarebyte/arcscan/cli.Version=1.2.3' -X 'github.com/flarebyte/arcscan/cli.Date=2026-10-19'"
var (
	Version string
	Date    string
)
