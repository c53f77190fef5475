// Package model defines the core data structures used throughout playcrawl.
//
// This package contains the following main types:
//   - AppDetail: A fully fetched catalog entry for a single application
//   - Category: A top-level store category and its listing URL
//   - Cluster: A named app collection inside a category
//   - CrawlStats: Per-set ledger counts used for progress reporting
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (catalog, crawler, report, store) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for on-disk detail
// records and status output.
package model
