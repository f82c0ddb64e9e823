package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for sitegrade.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitegrade",
		Short: "Heuristic quality scoring for websites",
		Long: `sitegrade fetches web pages and scores them from 0 to 10 across
performance, design, SEO and accessibility using static markup heuristics,
then aggregates the scores across the whole batch.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "config file path (yaml, json or toml)")
	cmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(NewAnalyzeCmd())

	return cmd
}
