package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleawatch/fleawatch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the config file and report problems",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		fmt.Printf("%s: OK (%d term groups, interval %s)\n",
			cfgFile, len(cfg.Watch.TermsAny), cfg.Watch.Interval())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)
}
