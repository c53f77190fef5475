package config

// File represents the structure of the .playcrawl configuration file.
// Every field is optional; unset fields leave the corresponding Config
// value untouched so CLI flags and defaults still apply.
type File struct {
	// Language is the store language (hl parameter).
	Language string `yaml:"language,omitempty"`

	// Country is the store country (gl parameter).
	Country string `yaml:"country,omitempty"`

	// DataDir is the directory for the ledger database and detail records.
	DataDir string `yaml:"dataDir,omitempty"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `yaml:"userAgent,omitempty"`

	// CategoryWorkers bounds concurrent category traversals.
	CategoryWorkers int `yaml:"categoryWorkers,omitempty"`

	// SimilarWorkers bounds concurrent similar-apps expansions.
	SimilarWorkers int `yaml:"similarWorkers,omitempty"`

	// DeveloperWorkers bounds concurrent developer expansions.
	DeveloperWorkers int `yaml:"developerWorkers,omitempty"`

	// FetchConcurrency bounds parallel detail fetches inside one batch.
	FetchConcurrency int `yaml:"fetchConcurrency,omitempty"`

	// ExpandDevelopers enables the developer expansion stage.
	// A pointer distinguishes "unset" from an explicit false.
	ExpandDevelopers *bool `yaml:"expandDevelopers,omitempty"`

	// MaxDeveloperResults caps the apps fetched per developer.
	MaxDeveloperResults int `yaml:"maxDeveloperResults,omitempty"`

	// ExcludeCategories lists category ids skipped during traversal.
	ExcludeCategories []string `yaml:"excludeCategories,omitempty"`
}

// Apply merges the file values into the config.
// Only set fields override; zero values are ignored so the file can be
// sparse.
func (f *File) Apply(c *Config) {
	if f.Language != "" {
		c.Language = f.Language
	}
	if f.Country != "" {
		c.Country = f.Country
	}
	if f.DataDir != "" {
		c.DataDir = f.DataDir
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.CategoryWorkers > 0 {
		c.CategoryWorkers = f.CategoryWorkers
	}
	if f.SimilarWorkers > 0 {
		c.SimilarWorkers = f.SimilarWorkers
	}
	if f.DeveloperWorkers > 0 {
		c.DeveloperWorkers = f.DeveloperWorkers
	}
	if f.FetchConcurrency > 0 {
		c.FetchConcurrency = f.FetchConcurrency
	}
	if f.ExpandDevelopers != nil {
		c.ExpandDevelopers = *f.ExpandDevelopers
	}
	if f.MaxDeveloperResults > 0 {
		c.MaxDeveloperResults = f.MaxDeveloperResults
	}
	if len(f.ExcludeCategories) > 0 {
		c.ExcludeCategories = f.ExcludeCategories
	}
}
