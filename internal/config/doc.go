// Package config provides configuration structures and utilities for the
// crawler. It defines the main configuration options for catalog traversal,
// concurrency limits, and report generation preferences.
package config
