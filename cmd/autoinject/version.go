package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// BuildVersion can be set at build time to override the reported version:
//
//	go build -ldflags "-X main.BuildVersion=1.2.3" ./cmd/autoinject
var BuildVersion = "n/a"

// toolVersion returns BuildVersion, the module version from the build info,
// or "dev" for local builds.
func toolVersion() string {
	if BuildVersion != "n/a" {
		return BuildVersion
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "dev"
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the autoinject version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "autoinject %s %s %s/%s\n",
				toolVersion(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return err
		},
	}
}
