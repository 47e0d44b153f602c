// Package script runs the user's init.lua in a sandboxed Lua state.
// The script configures the editor through the markpeek module:
//
//	markpeek.setup{ popup = { width = 40 } }
//	markpeek.format_line(function(name, content) ... end)
//
// A missing init file is not an error. Script failures surface as
// warnings and never stop the editor.
package script

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/markpeek/internal/config/layer"
)

// DefaultFileName is the init script name under the config directory.
const DefaultFileName = "init.lua"

// ErrRuntimeClosed indicates use after Close.
var ErrRuntimeClosed = errors.New("script runtime is closed")

// WarnFunc receives non-fatal script problems.
type WarnFunc func(msg string)

// Runtime owns the Lua state for the init script.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes all
// access from Go code.
type Runtime struct {
	mu sync.Mutex
	L  *lua.LState

	warn     WarnFunc
	settings map[string]any
	formatFn *lua.LFunction

	// formatBroken latches after the first hook failure so a buggy
	// hook warns once instead of once per popup line.
	formatBroken bool
	closed       bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithWarnFunc sets the sink for script warnings.
func WithWarnFunc(fn WarnFunc) Option {
	return func(r *Runtime) {
		if fn != nil {
			r.warn = fn
		}
	}
}

// New creates a sandboxed runtime with the markpeek module installed.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		warn: func(string) {},
	}
	for _, opt := range opts {
		opt(r)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	removeUnsafeGlobals(L)
	r.L = L

	mod := L.NewTable()
	L.SetField(mod, "setup", L.NewFunction(r.luaSetup))
	L.SetField(mod, "format_line", L.NewFunction(r.luaFormatLine))
	L.SetGlobal("markpeek", mod)

	return r
}

// openSafeLibraries opens base, table, string, and math. io, os,
// debug, and package stay closed so scripts cannot reach the system.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// removeUnsafeGlobals drops the code-loading entry points the base
// library carries.
func removeUnsafeGlobals(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// luaSetup captures the settings table. Repeated calls deep-merge,
// later calls winning, matching the config file merge semantics.
func (r *Runtime) luaSetup(L *lua.LState) int {
	tbl := L.CheckTable(1)

	converted := tableToGo(tbl)
	m, ok := converted.(map[string]any)
	if !ok {
		L.ArgError(1, "setup expects a table of settings sections")
		return 0
	}

	if r.settings == nil {
		r.settings = m
	} else {
		r.settings = layer.DeepMerge(r.settings, m)
	}
	return 0
}

// luaFormatLine registers the popup line formatter hook.
func (r *Runtime) luaFormatLine(L *lua.LState) int {
	r.formatFn = L.CheckFunction(1)
	r.formatBroken = false
	return 0
}

// LoadFile executes the init script at path. A missing file is a
// no-op. Compile and runtime errors are returned for the caller to
// surface as a warning.
func (r *Runtime) LoadFile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRuntimeClosed
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("checking init script %s: %w", path, err)
	}

	return r.doWithRecovery(func() error {
		return r.L.DoFile(path)
	})
}

// DoString executes Lua source directly.
func (r *Runtime) DoString(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRuntimeClosed
	}

	return r.doWithRecovery(func() error {
		return r.L.DoString(code)
	})
}

func (r *Runtime) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()
	return fn()
}

// Settings returns a copy of the table passed to markpeek.setup, or
// nil when setup was never called.
func (r *Runtime) Settings() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.settings == nil {
		return nil
	}
	return layer.DeepMerge(nil, r.settings)
}

// HasFormatter reports whether a usable format_line hook is
// registered.
func (r *Runtime) HasFormatter() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.formatFn != nil && !r.formatBroken && !r.closed
}

// FormatLine runs the format_line hook for one popup line. ok is
// false when no hook is registered or the hook failed; callers then
// use the default format. The first failure disables the hook and
// warns once.
func (r *Runtime) FormatLine(name rune, content string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.formatFn == nil || r.formatBroken {
		return "", false
	}

	var result lua.LValue
	err := r.doWithRecovery(func() error {
		r.L.Push(r.formatFn)
		r.L.Push(lua.LString(string(name)))
		r.L.Push(lua.LString(content))
		if err := r.L.PCall(2, 1, nil); err != nil {
			return err
		}
		result = r.L.Get(-1)
		r.L.Pop(1)
		return nil
	})
	if err != nil {
		r.disableFormatter(fmt.Sprintf("format_line hook failed: %v", err))
		return "", false
	}

	s, ok := result.(lua.LString)
	if !ok {
		r.disableFormatter(fmt.Sprintf("format_line hook returned %s, want string", result.Type()))
		return "", false
	}
	return string(s), true
}

// disableFormatter latches the broken state. Called with the mutex
// held.
func (r *Runtime) disableFormatter(msg string) {
	r.formatBroken = true
	r.warn(msg)
}

// Close releases the Lua state. Closing twice is safe.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.L.Close()
	r.closed = true
	return nil
}
