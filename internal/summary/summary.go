// Package summary renders an extraction report as a YAML document.
package summary

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/flarebyte/arcscan/internal/pipeline"
	"gopkg.in/yaml.v3"
)

// Marshal returns the YAML form of rep. Field order follows the Report
// struct and failures keep the report's sorted order, so equal reports give
// equal bytes.
func Marshal(rep pipeline.Report) ([]byte, error) {
	if rep.Failures == nil {
		rep.Failures = []pipeline.Diagnostic{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	out = append(out, '\n')
	return out, nil
}

// Write writes the YAML report to path, creating parent directories.
func Write(path string, rep pipeline.Report) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	b, err := Marshal(rep)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
