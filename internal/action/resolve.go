package action

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// LookupTable maps a logical program name to per-platform executable
// candidates, keyed by GOOS ("darwin", "linux", "windows").
type LookupTable map[string]map[string][]string

// DefaultLookupTable returns the built-in program lookup table.
func DefaultLookupTable() LookupTable {
	return LookupTable{
		"chrome": {
			"windows": {
				"chrome",
				`C:\Program Files\Google\Chrome\Application\chrome.exe`,
				`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
			},
			"darwin": {"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"},
			"linux":  {"google-chrome", "chrome", "chromium", "chromium-browser"},
		},
		"code": {
			"windows": {"code"},
			"darwin":  {"code", "/Applications/Visual Studio Code.app/Contents/Resources/app/bin/code"},
			"linux":   {"code"},
		},
		"files": {
			"windows": {"explorer"},
			"darwin":  {"open"},
			"linux":   {"xdg-open", "nautilus", "nemo"},
		},
	}
}

// Resolver turns a program parameter into a launchable executable path.
// Resolution tries an ordered list of strategies and short-circuits on the
// first hit: the parameter as an absolute path, the parameter on PATH, then
// the lookup table (the current platform's candidates first, every other
// platform's as a fallback).
type Resolver struct {
	table LookupTable
	goos  string
}

// NewResolver creates a Resolver over the given lookup table.
// A nil table resolves through absolute paths and PATH search only.
func NewResolver(table LookupTable) *Resolver {
	return &Resolver{table: table, goos: runtime.GOOS}
}

// Resolve returns the executable path for name and whether one was found.
func (r *Resolver) Resolve(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	strategies := []func(string) (string, bool){
		resolveAbsolute,
		resolvePath,
		r.resolveTable,
	}
	for _, strategy := range strategies {
		if path, ok := strategy(name); ok {
			return path, true
		}
	}
	return "", false
}

// resolveAbsolute accepts the name as-is when it is an existing absolute path.
func resolveAbsolute(name string) (string, bool) {
	if !filepath.IsAbs(name) {
		return "", false
	}
	if _, err := os.Stat(name); err != nil {
		return "", false
	}
	return name, true
}

// resolvePath searches the process PATH for an executable named name.
func resolvePath(name string) (string, bool) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}

// resolveTable consults the lookup table for name, trying the current
// platform's candidate group first and all other groups afterwards.
func (r *Resolver) resolveTable(name string) (string, bool) {
	lookup, ok := r.table[name]
	if !ok {
		return "", false
	}

	if candidates, ok := lookup[r.goos]; ok {
		if path, ok := tryCandidates(candidates); ok {
			return path, true
		}
	}

	for platform, candidates := range lookup {
		if platform == r.goos {
			continue
		}
		if path, ok := tryCandidates(candidates); ok {
			return path, true
		}
	}

	return "", false
}

func tryCandidates(candidates []string) (string, bool) {
	for _, candidate := range candidates {
		if path, ok := resolveAbsolute(candidate); ok {
			return path, true
		}
		if path, ok := resolvePath(candidate); ok {
			return path, true
		}
	}
	return "", false
}
