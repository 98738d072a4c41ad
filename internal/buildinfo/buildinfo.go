// Package buildinfo resolves the version metadata printed by `arcscan
// version`. Values come from -ldflags on this package first, then from the
// cli package, then from the module build info embedded by the Go toolchain.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/flarebyte/arcscan/cli"
)

// Set through -ldflags -X.
var (
	Version string
	Commit  string
	Date    string
	BuiltBy string
)

// Info is the resolved build metadata.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Date    string `json:"date,omitempty"`
	BuiltBy string `json:"builtBy,omitempty"`
	Go      string `json:"go"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// Details resolves the build metadata.
func Details() Info {
	info := Info{
		Version: firstNonEmpty(Version, cli.Version),
		Commit:  Commit,
		Date:    firstNonEmpty(Date, cli.Date),
		BuiltBy: BuiltBy,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
	if info.Version == "" {
		info.Version = moduleVersion()
	}
	return info
}

// Summary is the one-line form: "1.2.3 (0123456, 2026-10-19)".
func Summary() string {
	info := Details()
	commit := info.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	switch {
	case commit != "" && info.Date != "":
		return fmt.Sprintf("%s (%s, %s)", info.Version, commit, info.Date)
	case commit != "":
		return fmt.Sprintf("%s (%s)", info.Version, commit)
	case info.Date != "":
		return fmt.Sprintf("%s (%s)", info.Version, info.Date)
	}
	return info.Version
}

// moduleVersion reports the main module version when installed with
// `go install`, and "dev" for local builds.
func moduleVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" || bi.Main.Version == "(devel)" {
		return "dev"
	}
	return bi.Main.Version
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
