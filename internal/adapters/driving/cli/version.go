package cli

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the qsc version",
	Long:  "Print the qsc version. With --verbose, also print the Go toolchain and VCS revision the binary was built from.",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("qsc version %s\n", version)
		if !verbose {
			return
		}
		cmd.Printf("  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		if rev := buildRevision(); rev != "" {
			cmd.Printf("  revision: %s\n", rev)
		}
	},
}

// buildRevision returns the VCS revision stamped by the go tool, if any.
func buildRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var rev, modified string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value
		}
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if rev != "" && modified == "true" {
		rev += "-dirty"
	}
	return rev
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
