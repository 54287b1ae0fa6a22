package plano

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/assetcache"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/db"
)

// Set with -ldflags "-X .../cmd/plano.version=..." at release time.
var (
	version = "dev"
	commit  = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version/build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd)
	},
}

func printVersion(cmd *cobra.Command) {
	rev := commit
	if rev == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					rev = s.Value
				}
			}
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "plano %s\n", version)
	if rev != "" {
		fmt.Fprintf(out, "commit: %s\n", rev)
	}
	fmt.Fprintf(out, "go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "schema: %d\n", db.LatestSchemaVersion)
	fmt.Fprintf(out, "asset cache: %s\n", assetcache.DefaultVersion)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
