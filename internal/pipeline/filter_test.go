package pipeline

import (
	"testing"

	"github.com/flarebyte/arcscan/internal/record"
)

func TestFilter_Keep(t *testing.T) {
	rec := record.Record{ID: "a1", Level: 42, ObjectNames: []string{"x", "y"}}
	cases := []struct {
		code string
		want bool
	}{
		{"level > 10", true},
		{"level > 50", false},
		{"id == 'a1' and #objects == 2", true},
		{"return objects[2] == 'y'", true},
		{"string.sub(id, 1, 1) == 'b'", false},
		{"local n = 0\nfor _, o in ipairs(objects) do n = n + #o end\nreturn n == 2", true},
	}
	for _, tc := range cases {
		f, err := CompileFilter(tc.code)
		if err != nil {
			t.Fatalf("compile %q: %v", tc.code, err)
		}
		got, err := f.Keep(rec)
		if err != nil {
			t.Fatalf("keep %q: %v", tc.code, err)
		}
		if got != tc.want {
			t.Fatalf("%q = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestFilter_Errors(t *testing.T) {
	if _, err := CompileFilter("level >"); err == nil {
		t.Fatalf("expected compile error")
	}
	if _, err := CompileFilter("   "); err == nil {
		t.Fatalf("expected error for empty filter")
	}
	rec := record.Record{ID: "a", Level: 1}
	for _, code := range []string{"level + 1", "error('boom')", "dofile('/etc/passwd')"} {
		f, err := CompileFilter(code)
		if err != nil {
			t.Fatalf("compile %q: %v", code, err)
		}
		if _, err := f.Keep(rec); err == nil {
			t.Fatalf("%q: expected runtime error", code)
		}
	}
}

func TestFilter_Timeout(t *testing.T) {
	f, err := CompileFilter("while true do end return true")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Keep(record.Record{ID: "a"}); err == nil || err.Error() != "filter timeout" {
		t.Fatalf("expected timeout, got %v", err)
	}
}
