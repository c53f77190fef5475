// Package main provides the entry point for the playcrawl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for playcrawl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playcrawl",
		Short: "Google Play catalog crawler",
		Long: `playcrawl walks the Google Play catalog and collects one detail record
per discovered app. It traverses every category and its clusters, then
repeatedly expands the similar-apps relation until no new apps appear.

Progress is durable: every discovered id is recorded before more work is
dispatched, so an interrupted crawl resumes from where it stopped.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
