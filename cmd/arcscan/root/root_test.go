package root

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootListsSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, name := range []string{"extract", "generate", "version"} {
		if !strings.Contains(out.String(), name) {
			t.Fatalf("help does not mention %q:\n%s", name, out.String())
		}
	}
}

func TestUnknownSubcommand(t *testing.T) {
	if err := Execute([]string{"explode"}); err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
}
