package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NoobyNull/workshop-setup/internal/apperrors"
	"github.com/NoobyNull/workshop-setup/internal/verify"
)

var verifySkipCLICheck bool

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run read-only diagnostics against the project configuration",
	Long: `Checks credentials, token minting, admin SDK reachability, the Google
sign-in provider state and OIDC discovery without changing anything.
The exit status reflects only the core credential checks.`,
	Example: "workshop-setup verify",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := &verify.Runner{
			Config:       cfg,
			SkipCLICheck: verifySkipCLICheck,
		}
		result := runner.Run(cmd.Context())

		out := cmd.OutOrStdout()
		for _, check := range result.Checks {
			fmt.Fprintln(out, check)
		}

		if !result.CoreOK {
			return apperrors.InvalidCredentials("core credential checks failed")
		}
		fmt.Fprintln(out, "\nCore checks passed")
		return nil
	},
}

func init() {
	verifyCmd.Flags().BoolVar(&verifySkipCLICheck, "skip-cli-check", false, "Skip the Firebase CLI presence check")
	rootCmd.AddCommand(verifyCmd)
}
