package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newRuntime(t *testing.T, opts ...Option) *Runtime {
	t.Helper()
	r := New(opts...)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSetupCapturesSettings(t *testing.T) {
	r := newRuntime(t)

	err := r.DoString(`
		markpeek.setup{
			popup = { width = 40, position = "topleft" },
			editor = { tabstop = 2 },
		}
	`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}

	s := r.Settings()
	popup, ok := s["popup"].(map[string]any)
	if !ok {
		t.Fatalf("popup section = %T, want map", s["popup"])
	}
	if popup["width"] != int64(40) {
		t.Errorf("width = %v (%T), want int64 40", popup["width"], popup["width"])
	}
	if popup["position"] != "topleft" {
		t.Errorf("position = %v, want topleft", popup["position"])
	}
	editor := s["editor"].(map[string]any)
	if editor["tabstop"] != int64(2) {
		t.Errorf("tabstop = %v, want 2", editor["tabstop"])
	}
}

func TestSetupMergesRepeatedCalls(t *testing.T) {
	r := newRuntime(t)

	err := r.DoString(`
		markpeek.setup{ popup = { width = 40, offset_x = 2 } }
		markpeek.setup{ popup = { width = 50 } }
	`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}

	popup := r.Settings()["popup"].(map[string]any)
	if popup["width"] != int64(50) {
		t.Errorf("width = %v, want later call to win", popup["width"])
	}
	if popup["offset_x"] != int64(2) {
		t.Errorf("offset_x = %v, want 2 preserved from first call", popup["offset_x"])
	}
}

func TestSettingsNilWithoutSetup(t *testing.T) {
	r := newRuntime(t)
	if s := r.Settings(); s != nil {
		t.Errorf("Settings = %v, want nil before setup", s)
	}
}

func TestSettingsReturnsCopy(t *testing.T) {
	r := newRuntime(t)
	if err := r.DoString(`markpeek.setup{ popup = { width = 40 } }`); err != nil {
		t.Fatalf("DoString: %v", err)
	}

	first := r.Settings()
	first["popup"].(map[string]any)["width"] = int64(99)

	second := r.Settings()
	if second["popup"].(map[string]any)["width"] != int64(40) {
		t.Errorf("mutation of returned settings leaked into runtime")
	}
}

func TestFormatLineHook(t *testing.T) {
	r := newRuntime(t)

	err := r.DoString(`
		markpeek.format_line(function(name, content)
			return "[" .. name .. "] " .. content
		end)
	`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}

	if !r.HasFormatter() {
		t.Fatalf("HasFormatter = false after registration")
	}

	got, ok := r.FormatLine('a', "package main")
	if !ok {
		t.Fatalf("FormatLine ok = false")
	}
	if got != "[a] package main" {
		t.Errorf("FormatLine = %q, want %q", got, "[a] package main")
	}
}

func TestFormatLineHookErrorDisablesAndWarnsOnce(t *testing.T) {
	var warnings []string
	r := newRuntime(t, WithWarnFunc(func(msg string) {
		warnings = append(warnings, msg)
	}))

	err := r.DoString(`
		markpeek.format_line(function(name, content)
			error("boom")
		end)
	`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}

	if _, ok := r.FormatLine('a', "one"); ok {
		t.Fatalf("FormatLine ok = true from failing hook")
	}
	if _, ok := r.FormatLine('b', "two"); ok {
		t.Fatalf("FormatLine ok = true after hook was disabled")
	}

	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	if !strings.Contains(warnings[0], "format_line") {
		t.Errorf("warning %q does not name the hook", warnings[0])
	}
	if r.HasFormatter() {
		t.Errorf("HasFormatter = true after failure")
	}
}

func TestFormatLineHookNonStringDisables(t *testing.T) {
	var warnings []string
	r := newRuntime(t, WithWarnFunc(func(msg string) {
		warnings = append(warnings, msg)
	}))

	if err := r.DoString(`markpeek.format_line(function() return 7 end)`); err != nil {
		t.Fatalf("DoString: %v", err)
	}

	if _, ok := r.FormatLine('a', "one"); ok {
		t.Fatalf("FormatLine ok = true for non-string return")
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one", warnings)
	}
}

func TestReregisteringHookClearsBrokenState(t *testing.T) {
	r := newRuntime(t)

	if err := r.DoString(`markpeek.format_line(function() error("x") end)`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	r.FormatLine('a', "one")
	if r.HasFormatter() {
		t.Fatalf("hook still enabled after failure")
	}

	if err := r.DoString(`markpeek.format_line(function(n, c) return n end)`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	got, ok := r.FormatLine('a', "one")
	if !ok || got != "a" {
		t.Errorf("FormatLine = %q, %v after re-registration, want \"a\", true", got, ok)
	}
}

func TestLoadFileMissingIsNoOp(t *testing.T) {
	r := newRuntime(t)
	if err := r.LoadFile(filepath.Join(t.TempDir(), "absent.lua")); err != nil {
		t.Errorf("LoadFile on missing file: %v", err)
	}
}

func TestLoadFileRunsScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "init.lua")
	content := `markpeek.setup{ popup = { max_height = 5 } }`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}

	r := newRuntime(t)
	if err := r.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	popup := r.Settings()["popup"].(map[string]any)
	if popup["max_height"] != int64(5) {
		t.Errorf("max_height = %v, want 5", popup["max_height"])
	}
}

func TestLoadFileReportsSyntaxError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "init.lua")
	if err := os.WriteFile(path, []byte("markpeek.setup{"), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}

	r := newRuntime(t)
	if err := r.LoadFile(path); err == nil {
		t.Errorf("LoadFile on malformed script succeeded")
	}
}

func TestSandboxBlocksSystemAccess(t *testing.T) {
	r := newRuntime(t)

	for _, global := range []string{"os", "io", "dofile", "loadfile", "load", "loadstring"} {
		err := r.DoString(`if ` + global + ` ~= nil then error("leaked") end`)
		if err != nil {
			t.Errorf("global %s is reachable from scripts: %v", global, err)
		}
	}
}

func TestClosedRuntime(t *testing.T) {
	r := New()
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := r.DoString("return 1"); !errors.Is(err, ErrRuntimeClosed) {
		t.Errorf("DoString after Close: %v, want ErrRuntimeClosed", err)
	}
	if _, ok := r.FormatLine('a', "x"); ok {
		t.Errorf("FormatLine ok = true after Close")
	}
}
