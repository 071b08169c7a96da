package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

const testModulePath = "example.com/shop"

// checkoutSource declares one qualifying type, one plain type and one local type.
const checkoutSource = `package checkout

import (
	"log/slog"

	_ "example.com/shop/internal/autoinject"
)

type Store interface{ Save() error }

// Service runs checkouts.
//
// @autoinject.AutoInjection
type Service struct {
	// @autoinject.AutoInject
	Store Store
	// @autoinject.AutoInject
	Log *slog.Logger

	retries int
}

type plain struct {
	// @autoinject.AutoInject
	Store Store
}

func run() {
	// @autoinject.AutoInjection
	type job struct {
		// @autoinject.AutoInject
		Store Store
	}
	_ = job{}
}
`

// wantService is the generated constructor file for checkoutSource's Service.
const wantService = `// Code generated by autoinject. DO NOT EDIT.

package checkout

import (
	"log/slog"
)

// NewService returns a new Service with its injected members assigned.
func NewService(store Store, log *slog.Logger) *Service {
	s := &Service{}
	s.Store = store
	s.Log = log
	return s
}
`

// testModule is a throwaway Go module on disk.
type testModule struct {
	t   *testing.T
	dir string
}

func newTestModule(t *testing.T) *testModule {
	t.Helper()
	m := &testModule{t: t, dir: t.TempDir()}
	m.write("go.mod", "module "+testModulePath+"\n\ngo 1.25\n")
	return m
}

// write creates rel (slash-separated) with content and returns its absolute path.
func (m *testModule) write(rel, content string) string {
	m.t.Helper()
	p := m.path(rel)
	require.NoError(m.t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(m.t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func (m *testModule) read(rel string) string {
	m.t.Helper()
	b, err := os.ReadFile(m.path(rel))
	require.NoError(m.t, err)
	return string(b)
}

func (m *testModule) exists(rel string) bool {
	_, err := os.Stat(m.path(rel))
	return err == nil
}

func (m *testModule) path(rel string) string {
	return filepath.Join(m.dir, filepath.FromSlash(rel))
}

// run executes the CLI inside the module and returns exit code, stdout and stderr.
func (m *testModule) run(args ...string) (int, string, string) {
	m.t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append(args, "-C", m.dir), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}
