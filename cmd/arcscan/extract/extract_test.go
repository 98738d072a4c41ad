package extract

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/flarebyte/arcscan/internal/pipeline"
	"github.com/flarebyte/arcscan/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

type runResult struct {
	err    error
	stderr string
}

func runExtract(t *testing.T, args ...string) runResult {
	t.Helper()
	cmd := NewCmd()
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetOut(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return runResult{err: err, stderr: stderr.String()}
}

func readLines(t *testing.T, p string) []string {
	t.Helper()
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read %s: %v", p, err)
	}
	s := strings.TrimSuffix(string(b), "\r\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\r\n")
	sort.Strings(lines)
	return lines
}

func TestExtract_Scenario(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	testutil.WriteZip(t, src, "0.zip", testutil.Entry{Name: "data.xml", Body: testutil.Doc("a1", "42", "x", "y")})
	lp, op := filepath.Join(out, "levels.csv"), filepath.Join(out, "objects.csv")

	res := runExtract(t, src, lp, op, "--processes", "2")
	if res.err != nil {
		t.Fatalf("extract: %v\n%s", res.err, res.stderr)
	}
	if b, _ := os.ReadFile(lp); string(b) != "a1,42\r\n" {
		t.Fatalf("unexpected level table: %q", b)
	}
	if b, _ := os.ReadFile(op); string(b) != "a1,x\r\na1,y\r\n" {
		t.Fatalf("unexpected object table: %q", b)
	}
}

func TestExtract_IgnoreFileOnlyWhenNamed(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	testutil.WriteZip(t, src, "a.zip", testutil.Entry{Name: "data.xml", Body: testutil.Doc("a", "1")})
	testutil.WriteZip(t, src, "b.zip", testutil.Entry{Name: "data.xml", Body: testutil.Doc("b", "2")})
	ignore := testutil.WriteFile(t, src, ".arcscanignore", "b.zip\n")
	lp, op := filepath.Join(out, "levels.csv"), filepath.Join(out, "objects.csv")

	res := runExtract(t, src, lp, op, "--fail-on-error")
	var ec interface{ ExitCode() int }
	if !errors.As(res.err, &ec) || ec.ExitCode() != exitCodeFailures {
		t.Fatalf("an unnamed ignore file is an unreadable archive, got %v", res.err)
	}
	if diff := cmp.Diff([]string{"a,1", "b,2"}, readLines(t, lp)); diff != "" {
		t.Fatalf("level table (-want +got):\n%s", diff)
	}

	res = runExtract(t, src, lp, op, "--fail-on-error", "--ignore-file", ignore)
	if res.err != nil {
		t.Fatalf("extract: %v\n%s", res.err, res.stderr)
	}
	if diff := cmp.Diff([]string{"a,1"}, readLines(t, lp)); diff != "" {
		t.Fatalf("level table (-want +got):\n%s", diff)
	}
}

func TestExtract_MissingDocumentExitsZero(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	testutil.WriteZip(t, src, "0.zip", testutil.Entry{Name: "0.xml", Body: testutil.Doc("a1", "42")})
	lp, op := filepath.Join(out, "levels.csv"), filepath.Join(out, "objects.csv")

	res := runExtract(t, src, lp, op)
	if res.err != nil {
		t.Fatalf("per-archive failure must not fail the command: %v", res.err)
	}
	if n := len(readLines(t, lp)) + len(readLines(t, op)); n != 0 {
		t.Fatalf("expected no rows, got %d", n)
	}
	if strings.Count(res.stderr, "archive skipped") != 1 || !strings.Contains(res.stderr, "kind=document-missing") {
		t.Fatalf("expected one diagnostic, got:\n%s", res.stderr)
	}

	res = runExtract(t, src, lp, op, "--fail-on-error")
	assertExitError(t, res.err, "archive failures: 1", exitCodeFailures)
}

func TestExtract_MissingSourceLeavesOutputsUntouched(t *testing.T) {
	out := t.TempDir()
	lp, op := filepath.Join(out, "levels.csv"), filepath.Join(out, "objects.csv")
	if err := os.WriteFile(lp, []byte("keep,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res := runExtract(t, filepath.Join(out, "nope"), lp, op)
	if !errors.Is(res.err, pipeline.ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", res.err)
	}
	if b, _ := os.ReadFile(lp); string(b) != "keep,1\n" {
		t.Fatalf("level table modified: %q", b)
	}
	if _, err := os.Stat(op); !os.IsNotExist(err) {
		t.Fatalf("object table created: %v", err)
	}
}

func TestExtract_ArgsRequired(t *testing.T) {
	if res := runExtract(t, "only-one"); res.err == nil {
		t.Fatalf("expected argument error")
	}
}

func TestExtract_ConfigAndSummary(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	testutil.WriteZip(t, src, "0.zip", testutil.Entry{Name: "data.xml", Body: testutil.Doc("low", "1", "a")})
	testutil.WriteZip(t, src, "1.zip", testutil.Entry{Name: "data.xml", Body: testutil.Doc("high", "90", "b")})
	testutil.WriteFile(t, src, "skip.tmp", "not an archive")
	cfgPath := testutil.WriteFile(t, out, "arcscan.cue", `
configVersion: "1"
log: level: "warn"
extract: {
	processes: 3
	exclude: ["*.tmp"]
	filter: "level > 50"
}
`)
	sumPath := filepath.Join(out, "reports", "summary.yaml")
	lp, op := filepath.Join(out, "levels.csv"), filepath.Join(out, "objects.csv")

	res := runExtract(t, src, lp, op, "--config", cfgPath, "--summary", sumPath, "--lf")
	if res.err != nil {
		t.Fatalf("extract: %v\n%s", res.err, res.stderr)
	}
	b, err := os.ReadFile(lp)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "high,90\n" {
		t.Fatalf("unexpected level table: %q", b)
	}
	sum, err := os.ReadFile(sumPath)
	if err != nil {
		t.Fatalf("summary not written: %v", err)
	}
	for _, want := range []string{"archives: 2\n", "records: 1\n", "filtered: 1\n", "workers: 3\n", "failures: []\n"} {
		if !strings.Contains(string(sum), want) {
			t.Fatalf("summary lacks %q:\n%s", want, sum)
		}
	}
	if strings.Contains(res.stderr, "extraction finished") {
		t.Fatalf("info log emitted at warn level:\n%s", res.stderr)
	}
}

func TestExtract_BadLayout(t *testing.T) {
	out := t.TempDir()
	res := runExtract(t, t.TempDir(), filepath.Join(out, "l.csv"), filepath.Join(out, "o.csv"), "--layout", "both")
	if res.err == nil || !strings.Contains(res.err.Error(), "unknown archive layout") {
		t.Fatalf("expected layout error, got %v", res.err)
	}
}
