package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/soheilrt/play-scraper/internal/config"
)

// TestNewCrawlCmd tests the crawl command creation.
func TestNewCrawlCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCrawlCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "crawl" {
			t.Errorf("expected use 'crawl', got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{
			"language", "country", "data-dir", "timeout",
			"category-workers", "similar-workers", "developer-workers",
			"fetch-concurrency", "developers", "max-developer-results",
			"exclude", "config", "json", "markdown", "output",
		} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %q", name)
			}
		}
	})

	t.Run("flag defaults match config defaults", func(t *testing.T) {
		t.Parallel()

		if got := cmd.Flags().Lookup("language").DefValue; got != config.DefaultLanguage {
			t.Errorf("expected default language %q, got %q", config.DefaultLanguage, got)
		}
		if got := cmd.Flags().Lookup("developers").DefValue; got != "false" {
			t.Errorf("expected developers disabled by default, got %q", got)
		}
	})
}

// TestBuildConfig tests flag and config file resolution.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults without flags", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Language != config.DefaultLanguage {
			t.Errorf("expected default language, got %q", cfg.Language)
		}
		if cfg.ExpandDevelopers {
			t.Error("expected developer expansion to be disabled by default")
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected valid config, got %v", err)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		args := []string{
			"--language", "ja",
			"--country", "jp",
			"--timeout", "90s",
			"--similar-workers", "42",
			"--developers",
			"--exclude", "FAMILY",
		}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Language != "ja" || cfg.Country != "jp" {
			t.Errorf("expected ja/jp market, got %s/%s", cfg.Language, cfg.Country)
		}
		if cfg.Timeout != 90*time.Second {
			t.Errorf("expected 90s timeout, got %v", cfg.Timeout)
		}
		if cfg.SimilarWorkers != 42 {
			t.Errorf("expected 42 similar workers, got %d", cfg.SimilarWorkers)
		}
		if !cfg.ExpandDevelopers {
			t.Error("expected developer expansion to be enabled")
		}
		if len(cfg.ExcludeCategories) != 1 || cfg.ExcludeCategories[0] != "FAMILY" {
			t.Errorf("expected FAMILY exclusion, got %v", cfg.ExcludeCategories)
		}
	})

	t.Run("config file applies under flags", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yml")
		content := "language: de\ncountry: de\nsimilarWorkers: 7\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cmd := NewCrawlCmd()
		// The explicit flag must win over the file value.
		if err := cmd.ParseFlags([]string{"-c", path, "--language", "fr"}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Language != "fr" {
			t.Errorf("expected flag to win over file, got %q", cfg.Language)
		}
		if cfg.Country != "de" {
			t.Errorf("expected file country, got %q", cfg.Country)
		}
		if cfg.SimilarWorkers != 7 {
			t.Errorf("expected file similar workers, got %d", cfg.SimilarWorkers)
		}
	})

	t.Run("missing explicit config file errors", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		if err := cmd.ParseFlags([]string{"-c", filepath.Join(t.TempDir(), "nope.yml")}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		if _, err := buildConfig(cmd); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("conflicting report formats fail validation", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		if err := cmd.ParseFlags([]string{"--json", "--markdown"}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := cfg.Validate(); !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})
}
