package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fleawatch/fleawatch/internal/config"
	"github.com/fleawatch/fleawatch/internal/match"
	domain "github.com/fleawatch/fleawatch/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate a single listing against the configured profile",
	Long: "Builds a listing from flags, runs it through the matcher, and prints\n" +
		"the result. Handy for debugging why a listing did or did not match.",
	RunE: runCheck,
}

var (
	checkTitle string
	checkDesc  string
	checkPrice float64
	checkURL   string
	checkJSON  bool
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkTitle, "title", "", "listing title (required)")
	checkCmd.Flags().StringVar(&checkDesc, "description", "", "listing description")
	checkCmd.Flags().Float64Var(&checkPrice, "price", -1, "listing price (omit for unknown)")
	checkCmd.Flags().StringVar(&checkURL, "url", "", "listing URL")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the result as JSON")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if checkTitle == "" {
		return fmt.Errorf("--title is required")
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	l := domain.Listing{
		ID:          "check",
		Title:       checkTitle,
		Description: checkDesc,
		URL:         checkURL,
	}
	if cmd.Flags().Changed("price") {
		l.Price = &checkPrice
	}

	res := match.Evaluate(l, cfg.Watch.Profile())

	if checkJSON {
		return json.NewEncoder(os.Stdout).Encode(res)
	}

	if res.Matched {
		fmt.Println("matched")
		for _, tag := range res.Tags {
			fmt.Printf("  tag: %s\n", tag)
		}
		return nil
	}

	fmt.Printf("no match: %s\n", res.Reason)
	return nil
}
