package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/soheilrt/play-scraper/internal/config"
	"github.com/soheilrt/play-scraper/internal/ledger"
	"github.com/soheilrt/play-scraper/internal/log"
	"github.com/soheilrt/play-scraper/internal/model"
	"github.com/soheilrt/play-scraper/internal/report"
	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show crawl progress",
		Long: `Status reads the ledger and prints the per-set progress counts: how
many detail records are collected and how many ids still await expansion.

The ledger is opened read-only; running status never creates or modifies
crawl state.

Examples:
  # Show progress for the default data directory
  playcrawl status

  # Show progress for a custom data directory as Markdown
  playcrawl status --data-dir ./data --markdown`,
		Args: cobra.NoArgs,
		RunE: runStatusCmd,
	}

	cmd.Flags().StringP("data-dir", "d", "",
		"Directory holding the ledger database (default: XDG data directory)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write output to specified file path (creates directories if needed)")

	return cmd
}

// runStatusCmd executes the status command.
func runStatusCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()

	var err error
	if cmd.Flags().Changed("data-dir") {
		if cfg.DataDir, err = cmd.Flags().GetString("data-dir"); err != nil {
			return err
		}
	}
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return err
	}
	if cfg.JSONReport && cfg.MarkdownReport {
		return config.ErrConflictingReportFormats
	}

	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))

	ldg, err := ledger.Open(cfg.DataDir, ledger.Options{
		CreateIfNotExists: false,
		Logger:            logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open ledger (has a crawl run yet?): %w", err)
	}
	defer ldg.Close()

	return outputStats(cfg, statsFromLedger(ldg))
}

// statsFromLedger builds a progress snapshot from a loaded ledger.
func statsFromLedger(ldg *ledger.Ledger) *model.CrawlStats {
	counts := ldg.Counts()
	return &model.CrawlStats{
		DetailsKnown:      counts[ledger.DetailsKnown],
		SimilarPending:    counts[ledger.SimilarPending],
		SimilarDone:       counts[ledger.SimilarDone],
		DevelopersPending: counts[ledger.DevelopersPending],
		DevelopersDone:    counts[ledger.DevelopersDone],
		CategoriesDone:    counts[ledger.CategoriesDone],
		CollectedAt:       time.Now(),
	}
}

// outputStats writes the progress summary in the requested format.
func outputStats(cfg *config.Config, stats *model.CrawlStats) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output)
	}

	_, err := writer.Write(stats)
	return err
}
