package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sghaida/autoinject/inject"
)

func newMarkersCmd(opts *options) *cobra.Command {
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "markers",
		Short: "Write the marker package " + inject.MarkerPackageDir + "/" + inject.MarkersKey + ".go",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := opts.load()
			if err != nil {
				return err
			}

			sink := inject.NewSink()
			sink.AddMarkers(ws.markersDir(), inject.MarkersFragment(ws.markers))

			for _, o := range sink.Outputs() {
				if toStdout {
					if _, err := fmt.Fprint(cmd.OutOrStdout(), o.Text); err != nil {
						return err
					}
					continue
				}
				written, err := writeIfChanged(o.Path, []byte(o.Text))
				if err != nil {
					return err
				}
				opts.logger.Info("marker package", slog.String("path", ws.rel(o.Path)), slog.Bool("written", written))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the marker package instead of writing it")
	return cmd
}
