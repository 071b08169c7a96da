package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sghaida/autoinject/inject"
	"github.com/sghaida/autoinject/internal/enum"
	"github.com/sghaida/autoinject/internal/manifest"
	"github.com/sghaida/autoinject/internal/report"
)

const (
	dryRunFlag      = "dry-run"
	reportFlag      = "report"
	concurrencyFlag = "concurrency"
	noPruneFlag     = "no-prune"

	reportTable = "table"
	reportNone  = "none"
)

type generateOptions struct {
	*options
	dryRun      bool
	concurrency int
	noPrune     bool
}

func newGenerateCmd(opts *options) *cobra.Command {
	g := &generateOptions{options: opts}

	cmd := &cobra.Command{
		Use:   "generate [dir | dir/...]...",
		Short: "Generate constructors for the marked types of the given packages",
		Long: `generate parses every package below the given roots (default ./...), writes one
<Type>.g.go per qualifying type, refreshes internal/autoinject/markers.g.go and
removes outputs of earlier runs that are no longer produced, as long as they
were not edited by hand.`,
		Example: `  autoinject generate
  autoinject generate --dry-run ./internal/...
  autoinject generate --report none --loglevel warn ./...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := enum.Get(cmd.Flags(), reportFlag)
			if err != nil {
				return err
			}
			rep, err := g.run(cmd.Context(), args)
			if rep != nil && format == reportTable {
				rep.Render(cmd.OutOrStdout())
			}
			return err
		},
	}

	f := cmd.Flags()
	f.BoolVar(&g.dryRun, dryRunFlag, false, "run the pipeline and report, but write and remove nothing")
	f.IntVar(&g.concurrency, concurrencyFlag, 0, "packages processed in parallel (default from config)")
	f.BoolVar(&g.noPrune, noPruneFlag, false, "keep outputs of earlier runs that are no longer produced")
	enum.Var(f, reportFlag, []string{reportTable, reportNone}, "report printed after the run")
	return cmd
}

// packageResult is the outcome of one package directory.
type packageResult struct {
	dir    string
	result inject.Result
	err    error
}

func (g *generateOptions) run(ctx context.Context, roots []string) (*report.Report, error) {
	ws, err := g.load()
	if err != nil {
		return nil, err
	}

	d, err := discover(ws.mod, ws.cfg, ws.dir, roots)
	if err != nil {
		return nil, err
	}

	limit := ws.cfg.Concurrency
	if g.concurrency > 0 {
		limit = g.concurrency
	}

	sink := inject.NewSink()
	sink.AddMarkers(ws.markersDir(), inject.MarkersFragment(ws.markers))

	results := make([]packageResult, len(d.packages))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i, dir := range d.packages {
		i, dir := i, dir
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			results[i] = g.generatePackage(ws, dir, sink)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	rep := &report.Report{}
	var failures []error

	for _, r := range results {
		if r.err != nil {
			g.logger.Error("failed to parse package", slog.String("dir", ws.rel(r.dir)), slog.Any("error", r.err))
			failures = append(failures, r.err)
			d.fail(r.dir)
			continue
		}
		for _, diag := range r.result.Diagnostics {
			diag.Location.File = ws.rel(diag.Location.File)
			g.logger.Warn(diag.Message,
				slog.String("code", diag.Code),
				slog.String("location", diag.Location.String()))
			rep.Diagnostics = append(rep.Diagnostics, diag)
		}
		for _, fault := range r.result.Faults {
			g.logger.Error("internal consistency fault", slog.String("dir", ws.rel(r.dir)), slog.Any("error", fault))
			failures = append(failures, fault)
			d.fail(r.dir)
		}
	}

	rep.Collisions = sink.Collisions()
	for _, key := range rep.Collisions {
		g.logger.Warn("output key produced by more than one type", slog.String("key", key))
	}

	cachePath := filepath.Join(ws.mod.Root, filepath.FromSlash(ws.cfg.Cache))
	prev, err := manifest.Load(cachePath)
	if err != nil {
		g.logger.Warn("ignoring unreadable manifest", slog.String("path", ws.rel(cachePath)), slog.Any("error", err))
		prev = manifest.New("")
	}
	next := manifest.New(toolVersion())

	outputs := sink.Outputs()
	sort.SliceStable(outputs, func(i, j int) bool { return outputs[i].Path < outputs[j].Path })
	for _, o := range outputs {
		if err := g.emit(ws, o, next, rep); err != nil {
			g.logger.Error("failed to write output", slog.String("path", ws.rel(o.Path)), slog.Any("error", err))
			failures = append(failures, err)
		}
	}

	for _, rel := range prev.Stale(next) {
		if err := g.prune(ws, d, rel, prev, next, rep); err != nil {
			g.logger.Error("failed to prune output", slog.String("path", rel), slog.Any("error", err))
			failures = append(failures, err)
		}
	}

	if !g.dryRun {
		b, err := next.Marshal()
		if err == nil {
			_, err = writeIfChanged(cachePath, b)
		}
		if err != nil {
			g.logger.Error("failed to save manifest", slog.String("path", ws.rel(cachePath)), slog.Any("error", err))
			failures = append(failures, err)
		}
	}

	g.logger.Info(rep.Summary(), slog.Int("packages", len(d.packages)))

	if len(failures) > 0 {
		return rep, fmt.Errorf("%w: %w", errFailed, errors.Join(failures...))
	}
	return rep, nil
}

// generatePackage runs the pipeline for one directory and registers its units.
func (g *generateOptions) generatePackage(ws *workspace, dir string, sink *inject.Sink) packageResult {
	res := packageResult{dir: dir}

	pkgPath, err := ws.mod.ImportPath(dir)
	if err != nil {
		res.err = err
		return res
	}

	p, err := inject.ParseDir(dir, pkgPath)
	if errors.Is(err, inject.ErrNoGoFiles) {
		return res
	}
	if err != nil {
		res.err = err
		return res
	}

	res.result = inject.GenerateParsed(ws.markers, p)
	for _, u := range res.result.Units {
		sink.AddUnit(u)
	}

	g.logger.Debug("scanned package",
		slog.String("package", pkgPath),
		slog.Int("types", len(p.Decls)),
		slog.Int("units", len(res.result.Units)))
	return res
}

// emit writes one output unless it is unchanged and records it in next.
func (g *generateOptions) emit(ws *workspace, o inject.Output, next *manifest.Manifest, rep *report.Report) error {
	rel := ws.rel(o.Path)
	data := []byte(o.Text)

	file := report.File{Path: rel}
	if o.Unit != nil {
		file.Type = o.Unit.TypeName
		file.Members = len(o.Unit.Members)
	}

	if g.dryRun {
		file.Status = report.StatusDryRun
		if existing, err := os.ReadFile(o.Path); err == nil && string(existing) == o.Text {
			file.Status = report.StatusUnchanged
		}
		next.Record(rel, data)
		rep.Add(file)
		return nil
	}

	written, err := writeIfChanged(o.Path, data)
	if err != nil {
		return err
	}
	next.Record(rel, data)

	file.Status = report.StatusUnchanged
	if written {
		file.Status = report.StatusWritten
		g.logger.Info("wrote", slog.String("path", rel))
	} else {
		g.logger.Debug("unchanged", slog.String("path", rel))
	}
	rep.Add(file)
	return nil
}

// prune handles an output recorded by an earlier run but not produced by this one.
// Outputs outside the scanned directories, or in packages that failed this run,
// are carried over untouched.
func (g *generateOptions) prune(ws *workspace, d *discovery, rel string, prev, next *manifest.Manifest, rep *report.Report) error {
	abs := filepath.Join(ws.mod.Root, filepath.FromSlash(rel))

	content, err := os.ReadFile(abs)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	if !d.settled(filepath.Dir(abs)) || g.noPrune || !ws.cfg.PruneEnabled() {
		next.Files[rel] = prev.Files[rel]
		return nil
	}

	if !prev.Untouched(rel, content) {
		g.logger.Warn("keeping stale output that was edited by hand", slog.String("path", rel))
		rep.Add(report.File{Path: rel, Status: report.StatusKept})
		return nil
	}

	rep.Add(report.File{Path: rel, Status: report.StatusPruned})
	if g.dryRun {
		return nil
	}
	if err := removeFile(abs); err != nil {
		return err
	}
	g.logger.Info("pruned", slog.String("path", rel))
	return nil
}

// rel returns path relative to the module root, or path itself when that fails.
func (w *workspace) rel(path string) string {
	if path == "" {
		return path
	}
	rel, err := w.mod.Rel(path)
	if err != nil {
		return path
	}
	return rel
}
