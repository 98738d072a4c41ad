package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flarebyte/arcscan/internal/record"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

const defaultFilterTimeout = 200 * time.Millisecond

var errFilterResult = errors.New("filter must return a boolean")

// Filter is a compiled Lua predicate over decoded records. The script sees
// the globals id (string), level (number) and objects (array of strings).
// A bare expression is wrapped as `return (<expr>)`.
type Filter struct {
	proto   *lua.FunctionProto
	timeout time.Duration
}

// CompileFilter compiles code once; every Keep call runs it in a fresh
// sandboxed state so a Filter is safe for concurrent use.
func CompileFilter(code string) (*Filter, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.New("empty filter")
	}
	if !containsReturn(code) {
		code = "return (" + code + ")"
	}
	chunk, err := parse.Parse(strings.NewReader(code), "<filter>")
	if err != nil {
		return nil, fmt.Errorf("filter: %v", err)
	}
	proto, err := lua.Compile(chunk, "<filter>")
	if err != nil {
		return nil, fmt.Errorf("filter: %v", err)
	}
	return &Filter{proto: proto, timeout: defaultFilterTimeout}, nil
}

// Keep evaluates the predicate for rec.
func (f *Filter) Keep(rec record.Record) (bool, error) {
	L := newSandboxState()
	defer L.Close()
	if f.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
		defer cancel()
		L.SetContext(ctx)
	}

	L.SetGlobal("id", lua.LString(rec.ID))
	L.SetGlobal("level", lua.LNumber(rec.Level))
	objects := L.CreateTable(len(rec.ObjectNames), 0)
	for i, name := range rec.ObjectNames {
		objects.RawSetInt(i+1, lua.LString(name))
	}
	L.SetGlobal("objects", objects)

	L.Push(L.NewFunctionFromProto(f.proto))
	if err := L.PCall(0, 1, nil); err != nil {
		if isTimeoutError(err) {
			return false, errors.New("filter timeout")
		}
		return false, err
	}
	ret := L.Get(-1)
	L.Pop(1)
	b, ok := ret.(lua.LBool)
	if !ok {
		return false, fmt.Errorf("%w, got %s", errFilterResult, ret.Type())
	}
	return bool(b), nil
}

func newSandboxState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true, RegistrySize: 256})
	openLib := func(name string, fn lua.LGFunction) {
		L.Push(L.NewFunction(fn))
		L.Push(lua.LString(name))
		L.Call(1, 0)
	}
	openLib("base", lua.OpenBase)
	openLib("string", lua.OpenString)
	openLib("table", lua.OpenTable)
	openLib("math", lua.OpenMath)
	// base pulls in loaders that reach the filesystem.
	for _, name := range []string{"dofile", "loadfile", "require", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// containsReturn reports whether the code has a return statement.
func containsReturn(s string) bool {
	for _, tok := range strings.FieldsFunc(s, func(r rune) bool {
		return !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) {
		if tok == "return" {
			return true
		}
	}
	return false
}

func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "deadline")
}
