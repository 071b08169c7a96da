// Package report renders the outcome of a generate run as tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sghaida/autoinject/inject"
)

// Status is what a run did with one output file.
type Status string

const (
	StatusWritten   Status = "written"
	StatusUnchanged Status = "unchanged"
	StatusPruned    Status = "pruned"
	StatusKept      Status = "kept"
	StatusDryRun    Status = "dry-run"
)

// File is one row of the outputs table.
type File struct {
	// Path is module-relative and slash-separated.
	Path    string
	Type    string
	Members int
	Status  Status
}

// Report collects the results of a run. It is not safe for concurrent use.
type Report struct {
	Files       []File
	Diagnostics []inject.Diagnostic
	Collisions  []string
}

// Add appends a file row.
func (r *Report) Add(f File) { r.Files = append(r.Files, f) }

// Count returns the number of files with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == s {
			n++
		}
	}
	return n
}

// Summary returns a one-line description of the run.
func (r *Report) Summary() string {
	parts := []string{}
	for _, s := range []Status{StatusWritten, StatusUnchanged, StatusDryRun, StatusPruned, StatusKept} {
		if n := r.Count(s); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "no outputs")
	}
	if n := len(r.Diagnostics); n > 0 {
		parts = append(parts, fmt.Sprintf("%d diagnostic(s)", n))
	}
	if n := len(r.Collisions); n > 0 {
		parts = append(parts, fmt.Sprintf("%d key collision(s)", n))
	}
	return strings.Join(parts, ", ")
}

// Render writes the outputs table, the diagnostics table when there are
// diagnostics, and the summary line.
func (r *Report) Render(w io.Writer) {
	files := append([]File(nil), r.Files...)
	sort.SliceStable(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	if len(files) > 0 {
		t := newTable(w)
		t.AppendHeader(table.Row{"Output", "Type", "Members", "Status"})
		for _, f := range files {
			members := ""
			if f.Type != "" {
				members = fmt.Sprint(f.Members)
			}
			t.AppendRow(table.Row{f.Path, f.Type, members, f.Status})
		}
		t.Render()
	}

	if len(r.Diagnostics) > 0 {
		_, _ = fmt.Fprintln(w)
		t := newTable(w)
		t.AppendHeader(table.Row{"Location", "Severity", "Code", "Message"})
		for _, d := range r.Diagnostics {
			t.AppendRow(table.Row{d.Location.String(), d.Severity, d.Code, d.Message})
		}
		t.SetColumnConfigs([]table.ColumnConfig{{Number: 4, WidthMax: 80}})
		t.Render()
	}

	_, _ = fmt.Fprintln(w, r.Summary())
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	return t
}
