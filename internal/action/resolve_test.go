package action

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeExecutable creates an executable file and returns its path.
func writeExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatalf("failed to write executable: %v", err)
	}
	return path
}

func TestResolver_AbsolutePath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	tmpDir := t.TempDir()
	exe := writeExecutable(t, tmpDir, "myprog")

	resolver := NewResolver(nil)
	path, ok := resolver.Resolve(exe)
	if !ok {
		t.Fatal("expected absolute path to resolve")
	}
	if path != exe {
		t.Errorf("expected %q, got %q", exe, path)
	}
}

func TestResolver_PathSearch(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	tmpDir := t.TempDir()
	writeExecutable(t, tmpDir, "mudra-test-prog")
	t.Setenv("PATH", tmpDir)

	resolver := NewResolver(nil)
	path, ok := resolver.Resolve("mudra-test-prog")
	if !ok {
		t.Fatal("expected PATH search to resolve")
	}
	if filepath.Dir(path) != tmpDir {
		t.Errorf("expected resolution inside %q, got %q", tmpDir, path)
	}
}

func TestResolver_TableCurrentPlatformFirst(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	tmpDir := t.TempDir()
	native := writeExecutable(t, tmpDir, "native-browser")
	other := writeExecutable(t, tmpDir, "other-browser")
	t.Setenv("PATH", "")

	table := LookupTable{
		"browser": {
			runtime.GOOS: {native},
			"plan9":      {other},
		},
	}

	resolver := NewResolver(table)
	path, ok := resolver.Resolve("browser")
	if !ok {
		t.Fatal("expected table lookup to resolve")
	}
	if path != native {
		t.Errorf("expected current platform candidate %q, got %q", native, path)
	}
}

func TestResolver_TableCrossPlatformFallback(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	tmpDir := t.TempDir()
	fallback := writeExecutable(t, tmpDir, "fallback-browser")
	t.Setenv("PATH", "")

	// No candidate group for the current platform: all groups are tried.
	table := LookupTable{
		"browser": {
			"plan9": {filepath.Join(tmpDir, "missing"), fallback},
		},
	}

	resolver := NewResolver(table)
	path, ok := resolver.Resolve("browser")
	if !ok {
		t.Fatal("expected cross-platform fallback to resolve")
	}
	if path != fallback {
		t.Errorf("expected %q, got %q", fallback, path)
	}
}

func TestResolver_NoCandidateResolves(t *testing.T) {
	t.Setenv("PATH", "")

	resolver := NewResolver(LookupTable{
		"ghost": {
			"linux": {"/nonexistent/ghost"},
		},
	})

	if _, ok := resolver.Resolve("ghost"); ok {
		t.Error("expected resolution failure for nonexistent candidates")
	}
	if _, ok := resolver.Resolve("never-heard-of-it"); ok {
		t.Error("expected resolution failure for unknown name")
	}
}

func TestResolver_EmptyName(t *testing.T) {
	resolver := NewResolver(DefaultLookupTable())
	if _, ok := resolver.Resolve(""); ok {
		t.Error("expected resolution failure for empty name")
	}
}
