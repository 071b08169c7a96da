package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/autoinject/internal/config"
	"github.com/sghaida/autoinject/internal/gomod"
)

func discoveryModule(t *testing.T) (*testModule, gomod.Module) {
	t.Helper()
	m := newTestModule(t)
	m.write("a/a.go", "package a\n")
	m.write("a/b/b.go", "package b\n")
	m.write("c/README.md", "docs\n")
	m.write("d/d_test.go", "package d\n")
	m.write("g/Foo.g.go", "package g\n")
	m.write("vendor/v/v.go", "package v\n")
	m.write("testdata/td/td.go", "package td\n")
	m.write(".hidden/h.go", "package h\n")
	m.write("_skip/s.go", "package s\n")
	m.write("nested/go.mod", "module example.com/nested\n")
	m.write("nested/n.go", "package n\n")
	m.write("examples/e/e.go", "package e\n")

	mod, err := gomod.Find(m.dir)
	require.NoError(t, err)
	return m, mod
}

// TestDiscover_Recursive verifies skipped directories and the covered set.
func TestDiscover_Recursive(t *testing.T) {
	t.Parallel()

	m, mod := discoveryModule(t)
	cfg := config.Config{Exclude: []string{"examples/..."}}

	d, err := discover(mod, cfg, m.dir, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{m.path("a"), m.path("a/b")}, d.packages)

	for _, rel := range []string{".", "a", "a/b", "c", "d", "g"} {
		assert.True(t, d.covered[filepath.Clean(m.path(rel))], rel)
	}
	for _, rel := range []string{"vendor", "vendor/v", "testdata", ".hidden", "_skip", "nested", "examples", "examples/e"} {
		assert.False(t, d.covered[m.path(rel)], rel)
	}
}

// TestDiscover_Roots verifies single-directory and recursive roots relative to base.
func TestDiscover_Roots(t *testing.T) {
	t.Parallel()

	m, mod := discoveryModule(t)

	d, err := discover(mod, config.Config{}, m.dir, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{m.path("a")}, d.packages)
	assert.False(t, d.covered[m.path("a/b")])

	d, err = discover(mod, config.Config{}, m.path("a"), []string{"./..."})
	require.NoError(t, err)
	assert.Equal(t, []string{m.path("a"), m.path("a/b")}, d.packages)

	d, err = discover(mod, config.Config{}, m.dir, []string{"examples/...", "a/b", "a/b"})
	require.NoError(t, err)
	assert.Equal(t, []string{m.path("a/b"), m.path("examples/e")}, d.packages)
}

// TestDiscover_Errors verifies bad roots are rejected.
func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	m, mod := discoveryModule(t)

	_, err := discover(mod, config.Config{}, m.dir, []string{"missing/..."})
	assert.Error(t, err)

	_, err = discover(mod, config.Config{}, m.dir, []string{"a/a.go"})
	assert.Error(t, err)

	_, err = discover(mod, config.Config{}, m.dir, []string{t.TempDir()})
	assert.ErrorIs(t, err, gomod.ErrOutsideModule)
}
