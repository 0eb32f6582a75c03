// internal/commands/serve.go
package spacexdash

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/spacexdash/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd implements 'serve', which runs the web dashboard until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the launch dashboard over HTTP",
	Long:  `Loads the launch records once and serves the dashboard page, its callbacks and PNG chart renderings until SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command) error {
	cfg := configOrDefault()
	ctrl, err := loadController(cfg)
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(ctrl, server.Options{
		Addr:              cfg.Addr(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeoutDuration(),
	})
	return srv.Run(ctx)
}
