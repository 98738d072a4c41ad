// Package testutil builds archive fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
)

// Entry is one named file inside a fixture archive.
type Entry struct {
	Name string
	Body string
}

// WriteZip writes a zip archive holding entries, in order, to dir/name and
// returns its path.
func WriteZip(t testing.TB, dir, name string, entries ...Entry) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create %s: %v", p, err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			t.Fatalf("zip create %s: %v", e.Name, err)
		}
		if _, err := w.Write([]byte(e.Body)); err != nil {
			t.Fatalf("zip write %s: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return p
}

// WriteFile writes raw bytes to dir/name and returns its path.
func WriteFile(t testing.TB, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

// Doc renders a well-formed record document.
func Doc(id, level string, objects ...string) string {
	s := `<root><var name="id" value="` + id + `"/><var name="level" value="` + level + `"/><objects>`
	for _, o := range objects {
		s += `<object name="` + o + `"/>`
	}
	return s + `</objects></root>`
}
