package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sghaida/autoinject/inject"
	"github.com/sghaida/autoinject/internal/config"
	"github.com/sghaida/autoinject/internal/gomod"
	ailog "github.com/sghaida/autoinject/internal/log"
)

const (
	workdirFlag = "workdir"
	configFlag  = "config"
)

// options are shared by every sub-command.
type options struct {
	workdir    string
	configPath string
	logger     *slog.Logger
}

// workspace is the module a command operates on.
type workspace struct {
	dir     string
	mod     gomod.Module
	cfg     config.Config
	markers inject.MarkerSet
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{logger: ailog.Discard()}

	cmd := &cobra.Command{
		Use:   "autoinject",
		Short: "Generate constructors for structs marked for injection",
		Long: `autoinject scans the packages of a Go module for struct types annotated with
// @autoinject.AutoInjection and writes a <Type>.g.go file next to each of them,
holding a constructor that takes every field annotated with // @autoinject.AutoInject.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := ailog.GetBaseLogger(cmd)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVarP(&opts.workdir, workdirFlag, "C", "", "run as if started in this directory")
	cmd.PersistentFlags().StringVar(&opts.configPath, configFlag, "", "config file (default <module root>/"+config.FileName+")")
	ailog.RegisterLoggingFlags(cmd.PersistentFlags())

	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newMarkersCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// load resolves the working directory, its module and the module config.
func (o *options) load() (*workspace, error) {
	dir := o.workdir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	mod, err := gomod.Find(dir)
	if err != nil {
		return nil, err
	}

	cfgPath := o.configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(mod.Root, config.FileName)
	} else if !filepath.IsAbs(cfgPath) {
		cfgPath = filepath.Join(dir, cfgPath)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.CheckVersion(toolVersion()); err != nil {
		return nil, fmt.Errorf("%s: %w", config.FileName, err)
	}

	o.logger.Debug("loaded module",
		slog.String("module", mod.Path),
		slog.String("root", mod.Root),
		slog.Int("concurrency", cfg.Concurrency))

	return &workspace{
		dir:     dir,
		mod:     mod,
		cfg:     cfg,
		markers: inject.NewMarkerSet(mod.Path),
	}, nil
}

// markersDir is the directory of the generated marker package.
func (w *workspace) markersDir() string {
	return filepath.Join(w.mod.Root, filepath.FromSlash(inject.MarkerPackageDir))
}
