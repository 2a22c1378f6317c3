package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// buildVersion is stamped with -ldflags "-X .../cmd.buildVersion=v1.2.3".
var buildVersion = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the learnpad build version",
	Run: func(cmd *cobra.Command, args []string) {
		v := resolveVersion(buildVersion, debug.ReadBuildInfo)
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "learnpad %s (%s, %s/%s)\n", v, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print only the version number")
}

// resolveVersion prefers the stamped version, then the module version
// recorded by `go install`, then "(devel)".
func resolveVersion(stamped string, info func() (*debug.BuildInfo, bool)) string {
	if stamped != "" {
		return stamped
	}
	if bi, ok := info(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}
