package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/NoobyNull/workshop-setup/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print version information",
	Example: "workshop-setup version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "workshop-setup %s (commit %s, built %s) %s/%s\n",
			version.Version, version.Commit, version.BuildTime, runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
