package cli

import (
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NoobyNull/workshop-setup/internal/preview"
)

var serveAddress string

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Preview the generated hosting directory locally",
	Long:    `Serves <project-dir>/public on a local port so the generated login page can be inspected before deploying.`,
	Example: "workshop-setup serve --address :5000",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		addr := serveAddress
		if addr == "" {
			addr = cfg.Preview.Address
		}

		server := &preview.Server{
			Addr: addr,
			Dir:  filepath.Join(cfg.ProjectDir, "public"),
		}
		return server.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "Listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
