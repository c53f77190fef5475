package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrEmptyLanguage is returned when no store language is configured.
	ErrEmptyLanguage = errors.New("empty language: provide a BCP 47 language code such as \"en\"")

	// ErrEmptyCountry is returned when no store country is configured.
	ErrEmptyCountry = errors.New("empty country: provide an ISO 3166-1 country code such as \"us\"")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidWorkerCount is returned when any worker count is not positive.
	// A worker count of zero would stall the corresponding crawl stage.
	ErrInvalidWorkerCount = errors.New("invalid worker count: must be positive")

	// ErrInvalidMaxDeveloperResults is returned when the per-developer
	// result cap is not positive.
	ErrInvalidMaxDeveloperResults = errors.New("invalid max developer results: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// A negative body size is invalid; use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
