package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jebstuart/TimeoutOverride/internal/cli"
	"github.com/jebstuart/TimeoutOverride/internal/cli/model"
	"github.com/jebstuart/TimeoutOverride/internal/config"
	"github.com/jebstuart/TimeoutOverride/internal/infrastructure/idle"
	"github.com/jebstuart/TimeoutOverride/internal/infrastructure/surface"
	"github.com/jebstuart/TimeoutOverride/internal/logging"
	"github.com/jebstuart/TimeoutOverride/pkg/mainloop"
	"github.com/jebstuart/TimeoutOverride/pkg/watchdog"
)

var (
	runTimeout time.Duration
	runBackend string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Hold the system awake with an interactive countdown",
	Long: `Installs the timeout override and shows a live countdown. Any click (or
't') counts as a touch and resets the countdown to the full timeout; when it
expires the keep-awake hold is released and the system may idle again.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "countdown duration (default from config)")
	runCmd.Flags().StringVar(&runBackend, "backend", "", "keep-awake backend: auto, portal, or none (default from config)")
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg := app.Config

	timeout := cfg.Watchdog.Timeout
	if cmd.Flags().Changed("timeout") {
		timeout = runTimeout
	}
	if timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", timeout)
	}

	backend := cfg.KeepAwake.Backend
	if cmd.Flags().Changed("backend") {
		switch config.KeepAwakeBackend(runBackend) {
		case config.KeepAwakeAuto, config.KeepAwakePortal, config.KeepAwakeNone:
			backend = config.KeepAwakeBackend(runBackend)
		default:
			return fmt.Errorf("unknown backend %q (want auto, portal, or none)", runBackend)
		}
	}

	ctx, cancel := context.WithCancel(appCtx)
	defer cancel()

	// Config edits while running only take effect on the next run.
	app.Manager.OnConfigChange(func(c *config.Config) {
		app.Log.Info().
			Dur("timeout", c.Watchdog.Timeout).
			Msg("config changed on disk, restart to apply")
	})
	if err := app.Manager.Watch(); err != nil {
		app.Log.Warn().Err(err).Msg("config watch unavailable")
	}

	inhibitor := idle.NewInhibitor(logging.WithComponent(ctx, "idle"), backend)
	defer func() { _ = inhibitor.Close() }()

	loop := mainloop.New()
	sched := surface.NewLoopScheduler(loop)
	win := surface.NewInhibitedWindow(logging.WithComponent(ctx, "surface"), inhibitor, "touch activity on timeout-override")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := loop.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	// The override must be constructed on the loop goroutine.
	type installed struct {
		ov  *watchdog.Override
		err error
	}
	installCh := make(chan installed, 1)
	loop.Post(func() {
		ov, err := watchdog.New(timeout, win, sched, watchdog.WithLogger(app.Log))
		installCh <- installed{ov: ov, err: err}
	})
	res := <-installCh
	if res.err != nil {
		loop.Quit()
		_ = g.Wait()
		return fmt.Errorf("install override: %w", res.err)
	}
	app.Recorder.Armed(ctx)

	ctrl := cli.NewWatchController(ctx, loop, win, res.ov, app.Recorder)
	p := tea.NewProgram(model.NewWatchModel(ctrl),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	ctrl.AttachProgram(p)

	g.Go(func() error {
		_, err := p.Run()
		ctrl.Shutdown()
		cancel()
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		p.Quit()
		return nil
	})

	return g.Wait()
}
