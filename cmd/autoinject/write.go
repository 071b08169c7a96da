package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// outputPerm is the mode of every file autoinject writes.
const outputPerm os.FileMode = 0o644

// tempFile is the part of *os.File staging needs.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
	mkdirAll       = os.MkdirAll
)

// writeIfChanged replaces path with data unless it already holds exactly data,
// and reports whether it wrote. The content is staged next to path and renamed
// into place, so an interrupted run never leaves a truncated output.
func writeIfChanged(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, data):
		return false, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return false, err
	}

	dir := filepath.Dir(path)
	if err := mkdirAll(dir, 0o755); err != nil {
		return false, err
	}

	staged, err := stage(dir, filepath.Base(path), data)
	if err != nil {
		return false, err
	}
	if err := renameFile(staged, path); err != nil {
		_ = removeFile(staged)
		return false, fmt.Errorf("replacing %s: %w", path, err)
	}
	return true, nil
}

// stage writes data to a hidden temporary file in dir and returns its path.
// Nothing is left behind on failure.
func stage(dir, base string, data []byte) (string, error) {
	f, err := createTempFile(dir, "."+base+".tmp-*")
	if err != nil {
		return "", err
	}
	name := f.Name()

	_, werr := f.Write(data)
	err = errors.Join(werr, f.Close())
	if err == nil {
		err = chmodFile(name, outputPerm)
	}
	if err != nil {
		_ = removeFile(name)
		return "", fmt.Errorf("staging %s: %w", base, err)
	}
	return name, nil
}
