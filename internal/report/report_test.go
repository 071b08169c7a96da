package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/autoinject/inject"
)

// TestReport_Summary verifies counts per status, diagnostics and collisions.
func TestReport_Summary(t *testing.T) {
	t.Parallel()

	var r Report
	assert.Equal(t, "no outputs", r.Summary())

	r.Add(File{Path: "a/A.g.go", Type: "A", Members: 1, Status: StatusWritten})
	r.Add(File{Path: "b/B.g.go", Type: "B", Members: 2, Status: StatusWritten})
	r.Add(File{Path: "c/C.g.go", Type: "C", Members: 1, Status: StatusUnchanged})
	r.Add(File{Path: "old/Old.g.go", Status: StatusPruned})
	r.Diagnostics = append(r.Diagnostics, inject.Diagnostic{Code: inject.CodeNotExtensible})
	r.Collisions = []string{"A.g"}

	assert.Equal(t, 2, r.Count(StatusWritten))
	assert.Equal(t, "2 written, 1 unchanged, 1 pruned, 1 diagnostic(s), 1 key collision(s)", r.Summary())
}

// TestReport_Render verifies rows are sorted by path and diagnostics get their own table.
func TestReport_Render(t *testing.T) {
	t.Parallel()

	r := Report{}
	r.Add(File{Path: "z/Zed.g.go", Type: "Zed", Members: 3, Status: StatusWritten})
	r.Add(File{Path: "a/Alpha.g.go", Type: "Alpha", Members: 1, Status: StatusUnchanged})
	r.Add(File{Path: "internal/autoinject/markers.g.go", Status: StatusUnchanged})
	r.Diagnostics = []inject.Diagnostic{{
		Code:     inject.CodeNotExtensible,
		Severity: inject.SeverityWarning,
		Message:  "type local must be a package-level struct",
		Location: inject.Location{File: "a/a.go", Line: 4, Column: 7},
	}}

	var buf bytes.Buffer
	r.Render(&buf)
	out := buf.String()

	for _, want := range []string{"OUTPUT", "TYPE", "MEMBERS", "STATUS", "LOCATION", "INJ001", "a/a.go:4:7", "warning"} {
		assert.Contains(t, out, want)
	}

	alpha := strings.Index(out, "a/Alpha.g.go")
	markers := strings.Index(out, "internal/autoinject/markers.g.go")
	zed := strings.Index(out, "z/Zed.g.go")
	require.True(t, alpha >= 0 && markers >= 0 && zed >= 0)
	assert.Less(t, alpha, markers)
	assert.Less(t, markers, zed)

	assert.True(t, strings.HasSuffix(out, "1 written, 2 unchanged, 1 diagnostic(s)\n"))
}

// TestReport_RenderEmpty verifies an empty run prints only the summary.
func TestReport_RenderEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	(&Report{}).Render(&buf)
	assert.Equal(t, "no outputs\n", buf.String())
}
