package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fleawatch/fleawatch/internal/config"
	"github.com/fleawatch/fleawatch/pkg/logger"
)

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run a single scan cycle and exit",
	Long: "Runs one fetch-evaluate-notify pass and exits. Useful for smoke\n" +
		"testing a profile or driving the watcher from an external scheduler.\n" +
		"Note that dedup state does not persist between invocations.",
	RunE: runOnce,
}

var onceJSON bool

func init() {
	rootCmd.AddCommand(onceCmd)
	onceCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log matches instead of sending them")
	onceCmd.Flags().BoolVar(&onceJSON, "json", false, "print the cycle report as JSON")
}

func runOnce(_ *cobra.Command, _ []string) error {
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
	rep := loop.RunCycle(context.Background())

	if onceJSON {
		return json.NewEncoder(os.Stdout).Encode(rep)
	}

	log.Info("cycle complete",
		"fetched", rep.Fetched,
		"matched", rep.Matched,
		"notified", rep.Notified,
		"duration", rep.Duration,
	)
	if rep.FetchErr != "" {
		return fmt.Errorf("fetch failed: %s", rep.FetchErr)
	}
	return nil
}
