package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/l1jgo/blueprint/internal/property"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

var (
	ErrCompile  = errors.New("compile expression")
	ErrEvaluate = errors.New("evaluate expression")
)

// Engine wraps a single gopher-lua VM that backs declarative property values.
// Single-goroutine access only: expressions are evaluated on the caller's
// goroutine, the same one that runs reconciliation and presentation.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script in scriptsDir.
// An empty scriptsDir skips script loading.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if scriptsDir != "" {
		if err := e.loadDir(scriptsDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts: %w", err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory, in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DoString runs a chunk, typically to define helper functions.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// SetGlobal exposes a Go value to expressions under name.
func (e *Engine) SetGlobal(name string, v any) error {
	lv, err := toLua(e.vm, v)
	if err != nil {
		return fmt.Errorf("set global %s: %w", name, err)
	}
	e.vm.SetGlobal(name, lv)
	return nil
}

// Global reads a global back as a Go value.
func (e *Engine) Global(name string) any {
	return fromLua(e.vm.GetGlobal(name))
}

// Register exposes a Go function to expressions. Arguments and the result are
// converted with the same rules as globals.
func (e *Engine) Register(name string, fn func(args ...any) (any, error)) {
	e.vm.SetGlobal(name, e.vm.NewFunction(func(L *lua.LState) int {
		args := make([]any, L.GetTop())
		for i := range args {
			args[i] = fromLua(L.Get(i + 1))
		}
		out, err := fn(args...)
		if err != nil {
			L.RaiseError("%s: %v", name, err)
			return 0
		}
		lv, err := toLua(L, out)
		if err != nil {
			L.RaiseError("%s: %v", name, err)
			return 0
		}
		L.Push(lv)
		return 1
	}))
}

// Compile turns src into a declarative property expression. src is first
// tried as an expression ("return " + src), then as a chunk with its own
// return statement.
func (e *Engine) Compile(src string) (property.Expression, error) {
	fn, err := e.vm.LoadString("return " + src)
	if err != nil {
		var chunkErr error
		if fn, chunkErr = e.vm.LoadString(src); chunkErr != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrCompile, src, err)
		}
	}
	return &Expression{engine: e, fn: fn, src: src}, nil
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// Expression is a compiled Lua chunk evaluated on every read.
type Expression struct {
	engine *Engine
	fn     *lua.LFunction
	src    string
}

func (x *Expression) Source() string { return x.src }

func (x *Expression) Evaluate() (any, error) {
	vm := x.engine.vm
	if err := vm.CallByParam(lua.P{
		Fn:      x.fn,
		NRet:    1,
		Protect: true,
	}); err != nil {
		x.engine.log.Warn("lua expression error", zap.String("src", x.src), zap.Error(err))
		return nil, fmt.Errorf("%w %q: %v", ErrEvaluate, x.src, err)
	}
	result := vm.Get(-1)
	vm.Pop(1)
	return fromLua(result), nil
}
