// Package gomod locates the enclosing Go module of a directory and maps
// directories to import paths.
package gomod

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

var (
	// ErrNotFound is returned when no go.mod exists in a directory or any parent.
	ErrNotFound = errors.New("could not find go.mod")

	// ErrNoModulePath is returned when go.mod has no usable module directive.
	ErrNoModulePath = errors.New("go.mod missing module directive")

	// ErrOutsideModule is returned when a directory is not below the module root.
	ErrOutsideModule = errors.New("directory is outside module root")
)

// Module is a Go module on disk.
type Module struct {
	// Root is the directory holding go.mod.
	Root string
	// Path is the module path from the module directive.
	Path string
}

// Find walks up from startDir to the nearest go.mod.
func Find(startDir string) (Module, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return Module{}, err
	}

	for {
		gomod := filepath.Join(dir, "go.mod")
		if fileExists(gomod) {
			b, err := os.ReadFile(gomod)
			if err != nil {
				return Module{}, err
			}
			mod := modfile.ModulePath(b)
			if strings.TrimSpace(mod) == "" {
				return Module{}, &PathError{Err: ErrNoModulePath, Path: gomod}
			}
			return Module{Root: dir, Path: mod}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return Module{}, &PathError{Err: ErrNotFound, Path: startDir}
}

// ImportPath returns the import path of dir inside m.
func (m Module) ImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(m.Root, abs)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)

	if rel == "." {
		return m.Path, nil
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", &PathError{Err: ErrOutsideModule, Path: dir}
	}
	return m.Path + "/" + rel, nil
}

// Rel returns path relative to the module root with forward slashes.
func (m Module) Rel(path string) (string, error) {
	rel, err := filepath.Rel(m.Root, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// PathError attaches the offending path to a sentinel error.
type PathError struct {
	Err  error
	Path string
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return e.Err.Error() + ": " + filepath.ToSlash(e.Path)
}

// Unwrap returns the sentinel error.
func (e *PathError) Unwrap() error { return e.Err }

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
