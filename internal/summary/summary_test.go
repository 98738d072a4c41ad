package summary

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/flarebyte/arcscan/internal/pipeline"
)

func sampleReport() pipeline.Report {
	return pipeline.Report{
		Source:    "in",
		Layout:    "single",
		Workers:   4,
		Archives:  3,
		Documents: 3,
		Records:   1,
		Filtered:  1,
		Failures: []pipeline.Diagnostic{
			{Locator: "in/1.zip", Entry: "data.xml", Kind: "document-unparsable", Message: "no root element"},
		},
	}
}

func TestMarshal_Stable(t *testing.T) {
	b1, err := Marshal(sampleReport())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b2, err := Marshal(sampleReport())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(b1, b2) {
		t.Fatalf("not stable\nfirst:\n%s\nsecond:\n%s", b1, b2)
	}
	want := "source: in\nlayout: single\nworkers: 4\narchives: 3\ndocuments: 3\nrecords: 1\nfiltered: 1\n" +
		"failures:\n  - locator: in/1.zip\n    entry: data.xml\n    kind: document-unparsable\n" +
		"    message: no root element\n"
	if string(b1) != want {
		t.Fatalf("unexpected yaml\nwant:\n%s\ngot:\n%s", want, b1)
	}
}

func TestMarshal_NoFailures(t *testing.T) {
	b, err := Marshal(pipeline.Report{Source: "s", Layout: "multi"})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(b, []byte("failures: []\n")) {
		t.Fatalf("expected empty failures list, got:\n%s", b)
	}
}

func TestWrite_CreatesParents(t *testing.T) {
	p := filepath.Join(t.TempDir(), "reports", "run.yaml")
	if err := Write(p, sampleReport()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("stat: %v", err)
	}
}
