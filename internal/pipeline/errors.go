package pipeline

import (
	"errors"
	"sort"
	"strings"

	"github.com/flarebyte/arcscan/internal/archive"
)

var (
	// ErrSourceNotFound is returned when the source directory does not exist.
	ErrSourceNotFound = errors.New("source directory does not exist")
	// ErrSourceNotADirectory is returned when the source path is not a directory.
	ErrSourceNotADirectory = errors.New("source path is not a directory")
)

// KindFilterFailed marks a record whose filter evaluation failed.
const KindFilterFailed archive.Kind = "filter-failed"

// Diagnostic is a per-archive problem recorded in the run report.
type Diagnostic struct {
	Locator string       `yaml:"locator"`
	Entry   string       `yaml:"entry,omitempty"`
	Kind    archive.Kind `yaml:"kind"`
	Message string       `yaml:"message"`
}

func diagnosticFrom(f *archive.Failure) Diagnostic {
	msg := ""
	if f.Err != nil {
		msg = f.Err.Error()
	}
	return Diagnostic{Locator: f.Path, Entry: f.Entry, Kind: f.Kind, Message: sanitizeMessage(msg)}
}

func sanitizeMessage(msg string) string {
	s := strings.Join(strings.Fields(msg), " ")
	if s == "" {
		return "error"
	}
	return s
}

// SortDiagnostics orders diagnostics by (locator, entry, kind, message).
func SortDiagnostics(ds []Diagnostic) {
	sort.Slice(ds, func(i, j int) bool {
		a, b := ds[i], ds[j]
		if a.Locator != b.Locator {
			return a.Locator < b.Locator
		}
		if a.Entry != b.Entry {
			return a.Entry < b.Entry
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Message < b.Message
	})
}
