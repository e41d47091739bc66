// Package cli wires the cobra command tree for the workshop-setup binary.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/NoobyNull/workshop-setup/internal/config"
	"github.com/NoobyNull/workshop-setup/pkg/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "workshop-setup",
	Short: "Provision Firebase authentication for the digital workshop hub",
	Long: `workshop-setup provisions a Firebase project's authentication configuration:
it discovers service account credentials, verifies API access, enables the
Google sign-in provider and writes the local project scaffold.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if err := logger.Initialize(cfg.LogLevel); err != nil {
			return err
		}
		logger.Debug("configuration loaded (project %s, dir %s)", cfg.ProjectID, cfg.ProjectDir)
		return nil
	},
}

// Execute runs the command tree and returns any fatal error.
func Execute() error {
	return rootCmd.Execute()
}
