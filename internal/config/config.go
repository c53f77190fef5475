package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The worker counts follow the defaults the store tolerates well in
// practice; everything else is a conservative general-purpose choice.
const (
	// DefaultLanguage is the store language passed as the hl query
	// parameter. English is the most widely populated locale.
	DefaultLanguage = "en"

	// DefaultCountry is the store country passed as the gl query
	// parameter. Listings differ per country; "us" is the broadest market.
	DefaultCountry = "us"

	// DefaultTimeout is the per-request HTTP timeout. Store pages are
	// served from a CDN and normally answer well under this; a generous
	// value avoids false failures on slow links.
	DefaultTimeout = 30 * time.Second

	// DefaultCategoryWorkers is the number of concurrent category
	// traversals. Categories are few, so this usually covers all of them.
	DefaultCategoryWorkers = 15

	// DefaultSimilarWorkers is the number of concurrent similar-apps
	// expansions. Higher values increase throughput but risk rate limiting.
	DefaultSimilarWorkers = 15

	// DefaultDeveloperWorkers is the number of concurrent developer
	// expansions. Developer pages return large result sets, so this is
	// kept lower than the other stages.
	DefaultDeveloperWorkers = 4

	// DefaultFetchConcurrency bounds parallel detail-page fetches inside
	// one batch.
	DefaultFetchConcurrency = 15

	// DefaultMaxDeveloperResults caps the apps fetched per developer.
	// Large publishers list thousands of apps; the cap keeps a single
	// developer from dominating a crawl.
	DefaultMaxDeveloperResults = 120

	// AppName is the application name used for XDG directory paths.
	AppName = "playcrawl"

	// DefaultUserAgent identifies the crawler in HTTP requests.
	// A descriptive User-Agent is good practice and allows operators
	// to identify crawler traffic in their logs.
	DefaultUserAgent = "playcrawl/1.0 (+https://github.com/soheilrt/play-scraper)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 5MB is sufficient for store pages while preventing memory exhaustion
	// from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// Config holds all configuration options for the crawler.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CrawlConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
// If the configuration grows significantly, consider refactoring into sub-structs.
type Config struct {
	// Language is the store language for fetched pages (hl parameter).
	Language string

	// Country is the store country for fetched pages (gl parameter).
	Country string

	// DataDir is the directory holding the ledger database and the detail
	// records. Defaults to the XDG data directory
	// (~/.local/share/playcrawl on Linux).
	DataDir string

	// Timeout is the per-request HTTP timeout.
	// This applies to individual requests, not the overall crawl duration.
	Timeout time.Duration

	// CategoryWorkers bounds concurrent category traversals.
	CategoryWorkers int

	// SimilarWorkers bounds concurrent similar-apps expansions.
	SimilarWorkers int

	// DeveloperWorkers bounds concurrent developer expansions.
	DeveloperWorkers int

	// FetchConcurrency bounds parallel detail fetches inside one batch.
	FetchConcurrency int

	// ExpandDevelopers enables the developer expansion stage.
	// Disabled by default: developer pages multiply the crawl volume and
	// most runs only need the category and similar relations.
	ExpandDevelopers bool

	// MaxDeveloperResults caps the apps fetched per developer.
	MaxDeveloperResults int

	// ExcludeCategories lists category ids skipped during traversal.
	ExcludeCategories []string

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .playcrawl in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// JSONReport enables JSON progress output instead of human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown progress output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the progress report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated to prevent memory exhaustion.
	// Set to 0 to use the default (5MB).
	MaxBodySize int64
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, worker
// counts). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Language:            DefaultLanguage,
		Country:             DefaultCountry,
		DataDir:             XDGDataDir(),
		Timeout:             DefaultTimeout,
		CategoryWorkers:     DefaultCategoryWorkers,
		SimilarWorkers:      DefaultSimilarWorkers,
		DeveloperWorkers:    DefaultDeveloperWorkers,
		FetchConcurrency:    DefaultFetchConcurrency,
		MaxDeveloperResults: DefaultMaxDeveloperResults,
		UserAgent:           DefaultUserAgent,
		MaxBodySize:         DefaultMaxBodySize,
	}
}

// XDGDataDir returns the XDG data directory for the crawler.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/playcrawl
// On macOS: ~/Library/Application Support/playcrawl
// On Windows: %LOCALAPPDATA%\playcrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the crawler.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/playcrawl
// On macOS: ~/Library/Application Support/playcrawl
// On Windows: %APPDATA%\playcrawl
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any crawling begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// Language and country codes are checked syntactically here; full
	// BCP 47 validation happens when the catalog client is constructed.
	if c.Language == "" {
		return ErrEmptyLanguage
	}
	if c.Country == "" {
		return ErrEmptyCountry
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// Worker counts must be positive; zero would mean no crawling
	if c.CategoryWorkers <= 0 || c.SimilarWorkers <= 0 ||
		c.DeveloperWorkers <= 0 || c.FetchConcurrency <= 0 {
		return ErrInvalidWorkerCount
	}

	if c.MaxDeveloperResults <= 0 {
		return ErrInvalidMaxDeveloperResults
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// MaxBodySize must be non-negative; 0 selects the default
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
