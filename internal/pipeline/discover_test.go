package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/flarebyte/arcscan/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestDiscover_ListsEveryEntry(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.zip", "a.zip", "notes.txt"} {
		testutil.WriteFile(t, dir, n, "x")
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := Discover(dir, nil, "")
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.zip"),
		filepath.Join(dir, "b.zip"),
		filepath.Join(dir, "nested"),
		filepath.Join(dir, "notes.txt"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_SetupErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Discover(filepath.Join(dir, "missing"), nil, ""); !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
	f := testutil.WriteFile(t, dir, "file.zip", "x")
	if _, err := Discover(f, nil, ""); !errors.Is(err, ErrSourceNotADirectory) {
		t.Fatalf("expected ErrSourceNotADirectory, got %v", err)
	}
}

func TestDiscover_ExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"0.zip", "1.zip", "keep.tmp", "skip.tmp", "README.md"} {
		testutil.WriteFile(t, dir, n, "x")
	}
	ignore := testutil.WriteFile(t, dir, ".arcscanignore", "# local\nREADME.md\n\n!keep.tmp\n")
	got, err := Discover(dir, []string{"*.tmp"}, ignore)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	want := []string{
		filepath.Join(dir, "0.zip"),
		filepath.Join(dir, "1.zip"),
		filepath.Join(dir, "keep.tmp"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_IgnoreFileOnlyWhenNamed(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a.zip", "x")
	testutil.WriteFile(t, dir, "b.zip", "x")
	testutil.WriteFile(t, dir, ".arcscanignore", "*.zip\n")

	got, err := Discover(dir, nil, "")
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	want := []string{
		filepath.Join(dir, ".arcscanignore"),
		filepath.Join(dir, "a.zip"),
		filepath.Join(dir, "b.zip"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unnamed ignore file must not filter (-want +got):\n%s", diff)
	}
}

func TestDiscover_IgnoreFileOutsideSource(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a.zip", "x")
	testutil.WriteFile(t, dir, "b.tmp", "x")
	ignore := testutil.WriteFile(t, t.TempDir(), "patterns", "*.tmp\n")

	got, err := Discover(dir, nil, ignore)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if diff := cmp.Diff([]string{filepath.Join(dir, "a.zip")}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if _, err := Discover(dir, nil, filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for a missing ignore file")
	}
}
