package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sghaida/autoinject/inject"
	"github.com/sghaida/autoinject/internal/config"
	"github.com/sghaida/autoinject/internal/gomod"
)

// discovery is the set of directories a generate run looks at.
type discovery struct {
	// packages hold at least one scannable Go file, sorted.
	packages []string
	// covered holds every directory visited, including packages.
	covered map[string]bool
	// failed holds packages whose outputs this run could not determine.
	failed map[string]bool
}

// fail marks dir as a package whose outputs are unknown for this run.
func (d *discovery) fail(dir string) {
	if d.failed == nil {
		d.failed = map[string]bool{}
	}
	d.failed[dir] = true
}

// settled reports whether this run decided every output of dir, so outputs it
// did not produce are stale.
func (d *discovery) settled(dir string) bool {
	return d.covered[dir] && !d.failed[dir]
}

// discover expands roots into package directories. A root ending in "/..."
// recurses; any other root names a single directory. Relative roots are
// resolved against base.
func discover(mod gomod.Module, cfg config.Config, base string, roots []string) (*discovery, error) {
	if len(roots) == 0 {
		roots = []string{"./..."}
	}

	d := &discovery{covered: map[string]bool{}}
	pkgs := map[string]bool{}

	for _, root := range roots {
		dir, recursive := strings.CutSuffix(filepath.ToSlash(root), "/...")
		if root == "..." {
			dir, recursive = ".", true
		}
		dir = filepath.FromSlash(dir)
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(base, dir)
		}
		dir = filepath.Clean(dir)

		if _, err := mod.ImportPath(dir); err != nil {
			return nil, err
		}
		st, err := os.Stat(dir)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			return nil, &fs.PathError{Op: "generate", Path: dir, Err: fs.ErrInvalid}
		}

		if !recursive {
			d.visit(dir, pkgs)
			continue
		}

		err = filepath.WalkDir(dir, func(p string, e fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !e.IsDir() {
				return nil
			}
			if p != dir && skipDir(mod, cfg, p, e.Name()) {
				return filepath.SkipDir
			}
			d.visit(p, pkgs)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	for p := range pkgs {
		d.packages = append(d.packages, p)
	}
	sort.Strings(d.packages)
	return d, nil
}

func (d *discovery) visit(dir string, pkgs map[string]bool) {
	d.covered[dir] = true
	if hasSourceFiles(dir) {
		pkgs[dir] = true
	}
}

// skipDir reports whether a walked directory is left out together with its subtree.
func skipDir(mod gomod.Module, cfg config.Config, path, name string) bool {
	switch {
	case name == "vendor" || name == "testdata":
		return true
	case strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_"):
		return true
	}

	// nested modules are generated on their own
	if st, err := os.Stat(filepath.Join(path, "go.mod")); err == nil && !st.IsDir() {
		return true
	}

	rel, err := mod.Rel(path)
	return err == nil && cfg.Excluded(rel)
}

func hasSourceFiles(dir string) bool {
	names, err := inject.SourceFiles(dir)
	return err == nil && len(names) > 0
}
