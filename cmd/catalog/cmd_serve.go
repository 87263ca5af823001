package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/consumethetangible/music-2025/internal/server"
)

var servePort int

// serveCmd runs the admin HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site and the admin API",
	Long: `Serve the site directory and the admin API used by admin.html.

The API mirrors the CLI: scrape a Bandcamp page, download its artwork, add,
list, edit, delete and sort albums.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			settings.Server.Port = servePort
		}

		mgr, err := newManager(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		srv := server.New(mgr, server.Options{
			SiteDir:   settings.SiteDir,
			RateLimit: settings.Server.RateLimit,
			Burst:     settings.Server.Burst,
		}, logger)

		fmt.Fprintf(cmd.OutOrStdout(), "Admin interface: http://localhost:%d/admin\n", settings.Server.Port)
		return srv.Run(ctx, fmt.Sprintf(":%d", settings.Server.Port))
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 3000, "Port to listen on (overrides config)")
}
