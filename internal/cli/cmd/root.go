// Package cmd provides Cobra CLI commands for timeout-override.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jebstuart/TimeoutOverride/internal/cli"
)

var (
	app    *cli.App
	appCtx context.Context

	rootCmd = &cobra.Command{
		Use:   "timeout-override",
		Short: "Keep a surface awake while it is being touched",
		Long: `timeout-override holds a keep-awake inhibit on the system while activity
keeps arriving, and releases it a fixed time after the last touch.

It works the way a well-behaved kiosk does: every touch resets a countdown,
and when the countdown runs out the normal idle timeout takes over again.

Use 'timeout-override run' for the interactive countdown screen, or the
subcommands to inspect past wake sessions and configuration.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			var err error
			app, appCtx, err = cli.NewApp(cmd.Context())
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command with a signal-aware context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
