package buildinfo

import (
	"testing"

	"github.com/flarebyte/arcscan/cli"
)

func resetVars(t *testing.T) {
	t.Helper()
	v, c, d, b := Version, Commit, Date, BuiltBy
	cv, cd := cli.Version, cli.Date
	t.Cleanup(func() {
		Version, Commit, Date, BuiltBy = v, c, d, b
		cli.Version, cli.Date = cv, cd
	})
	Version, Commit, Date, BuiltBy = "", "", "", ""
	cli.Version, cli.Date = "", ""
}

func TestSummary(t *testing.T) {
	resetVars(t)
	if got := Summary(); got != "dev" {
		t.Fatalf("unexpected summary: %q", got)
	}

	Version, Commit, Date = "1.2.3", "0123456789abcdef", "2026-10-19"
	if got, want := Summary(), "1.2.3 (0123456, 2026-10-19)"; got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}

	Commit = ""
	if got, want := Summary(), "1.2.3 (2026-10-19)"; got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
}

func TestDetailsFallsBackToCLI(t *testing.T) {
	resetVars(t)
	cli.Version, cli.Date = "0.9.0", "2026-01-02"
	info := Details()
	if info.Version != "0.9.0" || info.Date != "2026-01-02" {
		t.Fatalf("unexpected details: %+v", info)
	}
	if info.Go == "" || info.OS == "" || info.Arch == "" {
		t.Fatalf("runtime fields missing: %+v", info)
	}
}
