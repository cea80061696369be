// Package cmd implements the CLI commands for fleawatch.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "fleawatch",
	Short: "Watch a listings feed and forward matches to a chat",
	Long: "fleawatch polls a marketplace listings feed at a configurable interval,\n" +
		"evaluates each listing against a filter profile (models, price band,\n" +
		"term groups, shipping hints), and forwards new matches to a Telegram chat.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().String("log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "override log format (text, json)")

	cobra.CheckErr(viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format")))

	viper.SetEnvPrefix("FLEAWATCH")
	viper.AutomaticEnv()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Root exposes the root command for tooling such as doc generation.
func Root() *cobra.Command {
	return rootCmd
}

// logLevel resolves the effective log level: flag/env override wins over
// the config file.
func logLevel(fromConfig string) string {
	if v := viper.GetString("log_level"); v != "" {
		return v
	}
	return fromConfig
}

func logFormat(fromConfig string) string {
	if v := viper.GetString("log_format"); v != "" {
		return v
	}
	return fromConfig
}
