// Package pathresolve implements the shell's search-path lookup (spec
// component 4.A): given a bare command name, find the first matching
// entry on the colon-separated search path.
package pathresolve

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolver resolves command names against $PATH, with an optional list
// of directories searched before it.
type Resolver struct {
	// Overrides is searched, in order, before $PATH.
	Overrides []string
	// Getenv defaults to os.Getenv; tests substitute a stub.
	Getenv func(string) string
}

func New(overrides []string) *Resolver {
	return &Resolver{Overrides: overrides, Getenv: os.Getenv}
}

// Resolve returns the first existing entry for name, or ("", false) if
// none is found. A name containing a path separator is checked directly
// rather than searched for.
func (r *Resolver) Resolve(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	if strings.ContainsRune(name, filepath.Separator) {
		if _, err := os.Stat(name); err == nil {
			return name, true
		}
		return "", false
	}

	for _, dir := range r.Overrides {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if exists(candidate) {
			return candidate, true
		}
	}

	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	pathVar := getenv("PATH")
	if pathVar == "" {
		return "", false
	}

	for _, dir := range strings.Split(pathVar, string(os.PathListSeparator)) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if exists(candidate) {
			return candidate, true
		}
	}

	return "", false
}

// exists reports whether path names an existing regular file. It does
// not check executability: spec.md §4.A requires only existence.
func exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
