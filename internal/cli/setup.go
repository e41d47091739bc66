package cli

import (
	"github.com/spf13/cobra"

	"github.com/NoobyNull/workshop-setup/internal/setup"
)

var setupSkipCLICheck bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run the full first-run provisioning sequence",
	Long: `Discovers service account credentials, verifies Google auth and admin SDK
access, writes the local project scaffold (including the login page),
downloads published security rules, reports the Google sign-in provider
state and records a completion sentinel.`,
	Example: "workshop-setup setup",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := &setup.Runner{
			Config:       cfg,
			SkipCLICheck: setupSkipCLICheck,
			Out:          cmd.OutOrStdout(),
		}
		return runner.Run(cmd.Context())
	},
}

func init() {
	setupCmd.Flags().BoolVar(&setupSkipCLICheck, "skip-cli-check", false, "Skip the Firebase CLI presence check")
	rootCmd.AddCommand(setupCmd)
}
