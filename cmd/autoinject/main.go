package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// errFailed marks a run that completed but hit per-package failures.
// The details have already been logged.
var errFailed = errors.New("generation failed")

// run executes the CLI and returns the process exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(stderr, "autoinject:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
