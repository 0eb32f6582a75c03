// internal/commands/tui.go
package spacexdash

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/spacexdash/internal/logging"
	"github.com/mwiater/spacexdash/internal/tui"
	"github.com/spf13/cobra"
)

// tuiCmd implements 'tui', the terminal version of the dashboard.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Explore launch records in the terminal",
	Long:  `Opens a full-screen terminal dashboard with the same site selector, payload range and charts as the web page. Logs go to the log file only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configOrDefault()
		if err := logging.InitFileOnly(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
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

		return tui.Run(ctx, ctrl)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
