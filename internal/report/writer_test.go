package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/soheilrt/play-scraper/internal/model"
)

// createTestStats creates statistics with sample counts for testing.
func createTestStats() *model.CrawlStats {
	return &model.CrawlStats{
		DetailsKnown:      120,
		SimilarPending:    8,
		SimilarDone:       112,
		DevelopersPending: 3,
		DevelopersDone:    40,
		CategoriesDone:    57,
		CollectedAt:       time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC),
	}
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createTestStats())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "CRAWL PROGRESS") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "2026-08-01") {
			t.Error("expected output to contain collection date")
		}
		if !strings.Contains(output, "11 id(s) pending") {
			t.Error("expected output to contain pending summary")
		}
	})

	t.Run("writes set counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createTestStats())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, set := range []string{
			"details-known", "similar-pending", "similar-done",
			"developers-pending", "developers-done", "categories-done",
		} {
			if !strings.Contains(output, set) {
				t.Errorf("expected output to contain set %q", set)
			}
		}
	})

	t.Run("hides zero counts when configured", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithShowEmpty(false))

		stats := createTestStats()
		stats.DevelopersPending = 0
		stats.DevelopersDone = 0

		_, err := w.Write(stats)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(buf.String(), "developers-pending") {
			t.Error("expected zero-count set to be hidden")
		}
	})

	t.Run("reports exhausted frontier", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		stats := createTestStats()
		stats.SimilarPending = 0
		stats.DevelopersPending = 0

		_, err := w.Write(stats)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "frontier exhausted") {
			t.Error("expected exhausted status line")
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes markdown structure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createTestStats())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Crawl Progress Report") {
			t.Error("expected markdown H1 header")
		}
		if !strings.Contains(output, "## Set Counts") {
			t.Error("expected set counts section")
		}
		if !strings.Contains(output, "details-known") || !strings.Contains(output, "120") {
			t.Errorf("expected counts table row, got:\n%s", output)
		}
	})

	t.Run("writes completion tip when exhausted", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		stats := createTestStats()
		stats.SimilarPending = 0
		stats.DevelopersPending = 0

		_, err := w.Write(stats)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "[!TIP]") {
			t.Error("expected TIP alert for a complete crawl")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		_, err := w.Write(createTestStats())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.CrawlStats
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.DetailsKnown != 120 {
			t.Errorf("expected 120 details-known, got %d", decoded.DetailsKnown)
		}
	})

	t.Run("pretty prints when configured", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		_, err := w.Write(createTestStats())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "\n  \"details_known\"") {
			t.Error("expected indented JSON output")
		}
	})
}

// TestMultiWriter tests fan-out report writing.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var text, md bytes.Buffer
		w := NewMultiWriter(NewSimpleWriter(&text), NewMarkdownWriter(&md))

		_, err := w.Write(createTestStats())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if text.Len() == 0 {
			t.Error("expected text writer output")
		}
		if md.Len() == 0 {
			t.Error("expected markdown writer output")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var after bytes.Buffer
		w := NewMultiWriter(failingWriter{}, NewSimpleWriter(&after))

		if _, err := w.Write(createTestStats()); err == nil {
			t.Fatal("expected error from failing writer")
		}
		if after.Len() != 0 {
			t.Error("expected subsequent writers to be skipped")
		}
	})
}

// failingWriter always returns an error.
type failingWriter struct{}

func (failingWriter) Write(_ *model.CrawlStats) (int, error) {
	return 0, errors.New("write failed")
}
