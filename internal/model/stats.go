package model

import "time"

// CrawlStats holds per-set ledger counts at a point in time.
// It backs the periodic progress summary and the status command output.
type CrawlStats struct {
	// DetailsKnown is the number of apps with a persisted detail record.
	DetailsKnown int `json:"details_known"`

	// SimilarPending is the number of apps awaiting similar-apps expansion.
	SimilarPending int `json:"similar_pending"`

	// SimilarDone is the number of apps whose similar list has been expanded.
	SimilarDone int `json:"similar_done"`

	// DevelopersPending is the number of developers awaiting expansion.
	DevelopersPending int `json:"developers_pending"`

	// DevelopersDone is the number of developers already expanded.
	DevelopersDone int `json:"developers_done"`

	// CategoriesDone is the number of fully traversed categories.
	CategoriesDone int `json:"categories_done"`

	// CollectedAt is when the counts were read from the ledger.
	CollectedAt time.Time `json:"collected_at"`
}

// TotalPending returns the number of ids still awaiting expansion.
func (s *CrawlStats) TotalPending() int {
	return s.SimilarPending + s.DevelopersPending
}

// Exhausted reports whether every known frontier has been drained.
func (s *CrawlStats) Exhausted() bool {
	return s.TotalPending() == 0
}
