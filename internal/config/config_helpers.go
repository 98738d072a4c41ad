package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// compileCUE loads and compiles a CUE file at the given path.
func compileCUE(ctx *cue.Context, path string) (cue.Value, error) {
	if filepath.Ext(path) != ".cue" {
		return cue.Value{}, errors.New("unsupported config format: expected .cue")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read config: %w", err)
	}
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("invalid config: %v", err)
	}
	return v, nil
}

func requireStringField(v cue.Value, name string) error {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return fmt.Errorf("missing required field: %s", name)
	}
	if f.Kind() != cue.StringKind {
		return fmt.Errorf("invalid type for field: %s (expected string)", name)
	}
	return nil
}

// decodeWithSchema unifies v with the #Config schema, fills defaults and
// decodes the result.
func decodeWithSchema(ctx *cue.Context, v cue.Value) (Config, error) {
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("config schema: %v", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	u := def.Unify(v)
	if err := u.Validate(cue.Concrete(true)); err != nil {
		return Config{}, fmt.Errorf("invalid config: %v", err)
	}
	var cfg Config
	if err := u.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %v", err)
	}
	return cfg, nil
}

func newContext() *cue.Context { return cuecontext.New() }
