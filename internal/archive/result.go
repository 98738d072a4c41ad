package archive

import (
	"fmt"

	"github.com/flarebyte/arcscan/internal/record"
)

// Kind classifies a per-archive failure.
type Kind string

const (
	KindContainerUnreadable Kind = "container-unreadable"
	KindDocumentMissing     Kind = "document-missing"
	KindDocumentTooLarge    Kind = "document-too-large"
	KindDocumentUnparsable  Kind = "document-unparsable"
	KindMalformedDocument   Kind = "malformed-document"
)

// Failure describes why one archive (or one document in it) produced no
// record.
type Failure struct {
	Path  string
	Entry string
	Kind  Kind
	Err   error
}

func (f *Failure) Error() string {
	if f.Entry != "" {
		return fmt.Sprintf("%s: %s!%s: %v", f.Kind, f.Path, f.Entry, f.Err)
	}
	return fmt.Sprintf("%s: %s: %v", f.Kind, f.Path, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Result is the outcome for one document: a Record when Err is nil.
type Result struct {
	Path   string
	Entry  string
	Record record.Record
	Err    *Failure
}

// OK reports whether the result carries a record.
func (r Result) OK() bool { return r.Err == nil }

// HasDocument reports whether a document entry was reached, whatever its
// outcome. Unreadable containers and missing entries have none.
func (r Result) HasDocument() bool {
	if r.Err == nil {
		return true
	}
	return r.Err.Entry != "" && r.Err.Kind != KindDocumentMissing
}

func failed(path, entry string, kind Kind, err error) Result {
	return Result{Path: path, Entry: entry, Err: &Failure{Path: path, Entry: entry, Kind: kind, Err: err}}
}
