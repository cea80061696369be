package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fleawatch/fleawatch/internal/config"
	"github.com/fleawatch/fleawatch/internal/notify"
	"github.com/fleawatch/fleawatch/internal/ops"
	"github.com/fleawatch/fleawatch/internal/scan"
	"github.com/fleawatch/fleawatch/internal/source"
	"github.com/fleawatch/fleawatch/pkg/logger"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the watcher loop until interrupted",
	RunE:  runRun,
}

var dryRun bool

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log matches instead of sending them")
}

func runRun(_ *cobra.Command, _ []string) error {
	// .env is a local-dev convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.Setup(logLevel(cfg.Logging.Level), logFormat(cfg.Logging.Format))

	notifier, err := buildNotifier(cfg, log)
	if err != nil {
		return err
	}

	loop, err := buildLoop(cfg, notifier, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Notify.StartupMessage && !dryRun {
		sendCtx, cancel := context.WithTimeout(ctx, cfg.Notify.Timeout)
		if err := notifier.Send(sendCtx, notify.StatusMessage("fleawatch started")); err != nil {
			log.Warn("startup notification failed", "error", err)
		}
		cancel()
	}

	heartbeat, err := scan.NewHeartbeat(
		loop, notifier, cfg.Heartbeat.Interval, log, cfg.Heartbeat.ToChat && !dryRun,
	)
	if err != nil {
		return fmt.Errorf("creating heartbeat: %w", err)
	}
	heartbeat.Start()
	defer func() { <-heartbeat.Stop().Done() }()

	if cfg.Server.Enabled {
		srv := ops.New(cfg.Server.Addr(), loop, log)
		go func() {
			if err := srv.Start(); err != nil {
				log.Error("ops server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("ops server shutdown failed", "error", err)
			}
		}()
	}

	log.Info("watcher starting",
		"interval", cfg.Watch.Interval(),
		"source", cfg.Source.URL,
		"dry_run", dryRun,
	)

	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("watcher stopped")
	return nil
}

// buildNotifier wires the Telegram notifier with its rate limiter, or a
// log-only notifier for dry runs. Missing credentials are a fatal startup
// error unless --dry-run is set.
func buildNotifier(cfg *config.Config, log *slog.Logger) (notify.Notifier, error) {
	if dryRun {
		return notify.NewNoOpNotifier(log), nil
	}

	secrets, err := config.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("loading secrets: %w", err)
	}

	limiter := notify.NewRateLimiter(
		cfg.Notify.RateLimit.PerSecond,
		cfg.Notify.RateLimit.Burst,
		cfg.Notify.RateLimit.DailyLimit,
	)

	return notify.NewTelegramNotifier(
		secrets.BotToken,
		secrets.ChatID,
		notify.WithRateLimiter(limiter),
		notify.WithHTTPClient(&http.Client{Timeout: cfg.Notify.Timeout}),
	), nil
}

func buildLoop(cfg *config.Config, notifier notify.Notifier, log *slog.Logger) (*scan.Loop, error) {
	if cfg.Source.URL == "" {
		return nil, fmt.Errorf("source.url is required to fetch listings")
	}

	srcOpts := []source.HTTPSourceOption{
		source.WithSourceHTTPClient(&http.Client{Timeout: cfg.Source.Timeout}),
		source.WithMaxRetries(cfg.Source.MaxRetries),
		source.WithSourceLogger(log),
	}
	if cfg.Source.UserAgent != "" {
		srcOpts = append(srcOpts, source.WithUserAgent(cfg.Source.UserAgent))
	}
	src := source.NewHTTPSource(cfg.Source.URL, srcOpts...)

	return scan.NewLoop(
		src,
		notifier,
		cfg.Watch.Profile(),
		scan.NewDedupStore(),
		cfg.Watch.Interval(),
		scan.WithLogger(log),
		scan.WithFetchTimeout(cfg.Source.Timeout),
		scan.WithNotifyTimeout(cfg.Notify.Timeout),
	), nil
}
