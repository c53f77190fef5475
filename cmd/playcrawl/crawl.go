package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/soheilrt/play-scraper/internal/catalog"
	"github.com/soheilrt/play-scraper/internal/config"
	"github.com/soheilrt/play-scraper/internal/crawler"
	"github.com/soheilrt/play-scraper/internal/ledger"
	"github.com/soheilrt/play-scraper/internal/log"
	"github.com/soheilrt/play-scraper/internal/pipeline"
	"github.com/soheilrt/play-scraper/internal/store"
	"github.com/spf13/cobra"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl the Google Play catalog",
		Long: `Crawl walks the Google Play catalog and collects one detail record per
discovered app.

The crawl proceeds in stages:
- categories: every category page and its clusters are traversed
- similar: the similar-apps relation is expanded until no new apps appear
- developers: every known developer's other apps are fetched (optional)

Every discovered id is recorded durably before more work is dispatched.
Interrupt the crawl at any time; the next run resumes from where it
stopped.

Examples:
  # Crawl with the default market (en/us)
  playcrawl crawl

  # Crawl the Japanese market into a custom directory
  playcrawl crawl --language ja --country jp --data-dir ./data

  # Include the developer expansion stage
  playcrawl crawl --developers

  # Skip specific categories
  playcrawl crawl --exclude FAMILY --exclude ANDROID_WEAR

  # Use a custom configuration file
  playcrawl crawl -c myconfig.yaml

Configuration file (.playcrawl) example:
  language: ja
  country: jp
  similarWorkers: 30
  expandDevelopers: true
  excludeCategories:
    - FAMILY`,
		Args: cobra.NoArgs,
		RunE: runCrawlCmd,
	}

	// Market flags
	cmd.Flags().StringP("language", "l", config.DefaultLanguage,
		"Store language (BCP 47 code, e.g. en, ja)")
	cmd.Flags().StringP("country", "g", config.DefaultCountry,
		"Store country (ISO 3166-1 code, e.g. us, jp)")

	// Storage flags
	cmd.Flags().StringP("data-dir", "d", "",
		"Directory for the ledger database and detail records (default: XDG data directory)")

	// Crawl behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"HTTP timeout for each request")
	cmd.Flags().Int("category-workers", config.DefaultCategoryWorkers,
		"Number of concurrent category traversals")
	cmd.Flags().Int("similar-workers", config.DefaultSimilarWorkers,
		"Number of concurrent similar-apps expansions")
	cmd.Flags().Int("developer-workers", config.DefaultDeveloperWorkers,
		"Number of concurrent developer expansions")
	cmd.Flags().Int("fetch-concurrency", config.DefaultFetchConcurrency,
		"Number of parallel detail fetches inside one batch")
	cmd.Flags().Bool("developers", false,
		"Enable the developer expansion stage")
	cmd.Flags().Int("max-developer-results", config.DefaultMaxDeveloperResults,
		"Maximum apps fetched per developer")
	cmd.Flags().StringSlice("exclude", nil,
		"Category ids to skip (repeatable)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .playcrawl in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON progress summary (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown progress summary (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write progress summary to specified file path (creates directories if needed)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	verbose := getVerboseFlag(cmd)
	logger := log.NewLogger(os.Stderr, verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCrawl(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
// Precedence: defaults < config file < explicitly set flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load crawl settings from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently skip when no file is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Explicitly set flags override the config file.
	if cmd.Flags().Changed("language") {
		if cfg.Language, err = cmd.Flags().GetString("language"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("country") {
		if cfg.Country, err = cmd.Flags().GetString("country"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("data-dir") {
		if cfg.DataDir, err = cmd.Flags().GetString("data-dir"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("category-workers") {
		if cfg.CategoryWorkers, err = cmd.Flags().GetInt("category-workers"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("similar-workers") {
		if cfg.SimilarWorkers, err = cmd.Flags().GetInt("similar-workers"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("developer-workers") {
		if cfg.DeveloperWorkers, err = cmd.Flags().GetInt("developer-workers"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("fetch-concurrency") {
		if cfg.FetchConcurrency, err = cmd.Flags().GetInt("fetch-concurrency"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("developers") {
		if cfg.ExpandDevelopers, err = cmd.Flags().GetBool("developers"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-developer-results") {
		if cfg.MaxDeveloperResults, err = cmd.Flags().GetInt("max-developer-results"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("exclude") {
		if cfg.ExcludeCategories, err = cmd.Flags().GetStringSlice("exclude"); err != nil {
			return nil, err
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// runCrawl executes the crawl.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting crawl",
		"language", cfg.Language,
		"country", cfg.Country,
		"dataDir", cfg.DataDir,
		"expandDevelopers", cfg.ExpandDevelopers,
	)

	ldg, err := ledger.Open(cfg.DataDir, ledger.Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
		Logger:            logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer ldg.Close()

	sink, err := store.New(filepath.Join(cfg.DataDir, "apps"))
	if err != nil {
		return fmt.Errorf("failed to create detail store: %w", err)
	}

	source, err := catalog.New(
		&http.Client{Timeout: cfg.Timeout},
		catalog.WithLanguage(cfg.Language),
		catalog.WithCountry(cfg.Country),
		catalog.WithUserAgent(cfg.UserAgent),
		catalog.WithMaxBodySize(cfg.MaxBodySize),
		catalog.WithFetchConcurrency(cfg.FetchConcurrency),
		catalog.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	crwl := crawler.New(source, ldg, sink,
		crawler.WithLogger(logger),
		crawler.WithCategoryWorkers(cfg.CategoryWorkers),
		crawler.WithSimilarWorkers(cfg.SimilarWorkers),
		crawler.WithDeveloperWorkers(cfg.DeveloperWorkers),
		crawler.WithMaxDeveloperResults(cfg.MaxDeveloperResults),
		crawler.WithExcludedCategories(cfg.ExcludeCategories),
	)

	runner := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(true),
	)
	runner.AddStages(crwl.CategoryStage(), crwl.SimilarStage())
	if cfg.ExpandDevelopers {
		runner.AddStage(crwl.DeveloperStage())
	}

	startTime := time.Now()
	runErr := runner.Execute(ctx)

	fmt.Printf("\nCrawl finished in %s\n", time.Since(startTime).Round(time.Millisecond))

	if err := outputStats(cfg, crwl.Stats()); err != nil {
		logger.Error("progress summary failed", "error", err)
	}

	return runErr
}
