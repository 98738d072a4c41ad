// Package config loads the optional arcscan configuration file. Files are
// written in CUE and validated against a closed schema; every field except
// configVersion has a default.
//
//	configVersion: "1"
//	layout:        "single"
//	log: level: "debug"
//	extract: {
//		processes: 8
//		exclude: ["*.tmp"]
//		ignoreFile: "arcscan.ignore"
//		filter: "level > 10"
//		summary: "out/summary.yaml"
//	}
//	generate: seed: 42
package config

import (
	"fmt"

	"cuelang.org/go/cue"
)

// Config is the decoded configuration.
type Config struct {
	ConfigVersion string   `json:"configVersion"`
	Layout        string   `json:"layout"`
	Log           Log      `json:"log"`
	Extract       Extract  `json:"extract"`
	Generate      Generate `json:"generate"`
}

// Log selects the slog level and handler format.
type Log struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// Extract holds extraction settings. Zero Processes and MaxDocumentBytes mean
// "use the built-in default".
type Extract struct {
	Processes        int      `json:"processes"`
	Exclude          []string `json:"exclude"`
	IgnoreFile       string   `json:"ignoreFile"`
	Filter           string   `json:"filter"`
	MaxDocumentBytes int64    `json:"maxDocumentBytes"`
	Summary          string   `json:"summary"`
	LF               bool     `json:"lf"`
	FailOnError      bool     `json:"failOnError"`
}

// Generate holds generator settings. A nil Seed draws a random one.
type Generate struct {
	ArchiveCount int     `json:"archiveCount"`
	XMLCount     int     `json:"xmlCount"`
	Processes    int     `json:"processes"`
	Seed         *uint64 `json:"seed,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	ctx := newContext()
	v := ctx.CompileString(fmt.Sprintf("configVersion: %q", CurrentConfigVersion))
	cfg, err := decodeWithSchema(ctx, v)
	if err != nil {
		panic(fmt.Sprintf("config: default does not satisfy schema: %v", err))
	}
	return cfg
}

// Load reads, validates and decodes the CUE file at path.
func Load(path string) (Config, error) {
	ctx := newContext()
	v, err := compileCUE(ctx, path)
	if err != nil {
		return Config{}, err
	}
	if err := requireStringField(v, "configVersion"); err != nil {
		return Config{}, err
	}
	var version string
	if err := v.LookupPath(cue.ParsePath("configVersion")).Decode(&version); err != nil {
		return Config{}, fmt.Errorf("invalid value for configVersion: %v", err)
	}
	if err := checkConfigVersion(version); err != nil {
		return Config{}, err
	}
	return decodeWithSchema(ctx, v)
}
