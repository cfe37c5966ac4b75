package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clipscrub/clipscrub/internal/clipboard"
	"github.com/clipscrub/clipscrub/internal/config"
	"github.com/clipscrub/clipscrub/internal/detect"
	"github.com/clipscrub/clipscrub/internal/redact"
	"github.com/clipscrub/clipscrub/internal/report"
	"github.com/clipscrub/clipscrub/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the clipboard and sanitize on change (experimental)",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	if flagStdin || flagFile != "" {
		return fmt.Errorf("watch cannot be used with --stdin or --file")
	}
	if flagInterval != 0 && flagInterval < 100*time.Millisecond {
		return fmt.Errorf("--interval must be >= 100ms")
	}

	app, ok := newApp()
	if !ok {
		return nil
	}
	defer app.log.Sync()

	if flagInterval != 0 {
		app.cfg.Watch.Interval = flagInterval
	}

	writer, err := report.NewWriter(app.cfg.Report.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clipscrub error: %v\n", err)
		exitCode = ExitUsageError
		return nil
	}

	board, err := clipboard.NewSystem()
	if err != nil {
		fmt.Fprintf(os.Stderr, "clipscrub error: %v\n", err)
		exitCode = ExitInputError
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.log.Info("Watching clipboard",
		zap.Duration("interval", app.cfg.Watch.Interval),
		zap.String("backend", board.Backend().String()),
	)

	watcher := watch.New(board, app.engine, watch.Options{
		Interval: app.cfg.Watch.Interval,
		Redact:   app.redactOptions(),
	}, app.log.WithComponent("watch"), func(result redact.Result) {
		if err := writer.Write(os.Stdout, report.FromResult(result)); err != nil {
			app.log.Warn("Failed to write report", zap.Error(err))
		}
	})

	// Hot-reload redaction rules when an explicit config file changes.
	if flagConfig != "" {
		err := config.Watch(flagConfig, func(cfg *config.Config) {
			detector, err := detect.New(cfg.Redaction, app.log.WithComponent("detect"))
			if err != nil {
				app.log.Warn("Ignoring config change", zap.Error(err))
				return
			}
			watcher.SetEngine(
				redact.NewEngine(detector, app.log.WithComponent("redact")),
				redact.Options{StablePlaceholders: cfg.Redaction.StablePlaceholders},
			)
			app.log.Info("Reloaded redaction rules", zap.String("config", flagConfig))
		})
		if err != nil {
			app.log.Warn("Config watch disabled", zap.Error(err))
		}
	}

	return watcher.Run(ctx)
}
